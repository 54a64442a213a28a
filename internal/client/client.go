// Package client logs in to simulated routers and reads their traffic,
// hiding which firmware generation each router runs.
package client

//go:generate mockgen -destination=mocks/mock_requester.go -package=mocks tutor-router/internal/client Requester

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
	appErrors "tutor-router/pkg/errors"
)

// Requester sends HTTP-like calls to a router by hostname.
// *scenario.Scenario satisfies it.
type Requester interface {
	Get(hostname, path string, headers model.Headers) (model.Response, error)
	Post(hostname, path string, headers model.Headers) (model.Response, error)
}

// Client talks to one router in its own firmware dialect.
type Client interface {
	Hostname() string
	Version() model.Version
	Login(ctx context.Context) error
	// Interfaces returns raw counters per interface, logging in first if
	// needed.
	Interfaces(ctx context.Context) (map[string]model.Traffic, error)
}

type options struct {
	limiter *rate.Limiter
}

type Option func(*options)

// WithRateLimit paces every call through limiter. Share one limiter to
// pace a whole fleet.
func WithRateLimit(limiter *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = limiter
	}
}

// Detect asks host for its healthcheck and returns the client matching the
// firmware version it reports.
func Detect(ctx context.Context, req Requester, host string, creds model.Credentials, opts ...Option) (Client, error) {
	s := newSession(req, host, creds, opts...)

	resp, err := s.get(ctx, model.PathHealthcheck, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, unexpectedStatus(host, model.PathHealthcheck, resp)
	}

	var body model.HealthcheckBody
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		return nil, appErrors.NewAppError("MALFORMED_BODY", fmt.Sprintf("healthcheck from %s", host), appErrors.ErrMalformedBody)
	}

	logger.Debug("Firmware detected",
		zap.String("host", host),
		zap.Int("version", int(body.Version)),
		zap.String("health", string(body.Health)),
	)

	switch body.Version {
	case model.VersionV1:
		return &V1Client{session: s}, nil
	case model.VersionV2:
		return &V2Client{session: s}, nil
	default:
		return nil, appErrors.NewAppError(
			"UNSUPPORTED_FIRMWARE",
			fmt.Sprintf("host %s reports version %d", host, body.Version),
			appErrors.ErrUnsupportedFirmware,
		)
	}
}

// session is the state every firmware client shares.
type session struct {
	req     Requester
	host    string
	creds   model.Credentials
	token   string
	limiter *rate.Limiter
}

func newSession(req Requester, host string, creds model.Credentials, opts ...Option) *session {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &session{
		req:     req,
		host:    host,
		creds:   creds,
		limiter: o.limiter,
	}
}

func (s *session) Hostname() string { return s.host }

func (s *session) wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx)
}

func (s *session) get(ctx context.Context, path string, headers model.Headers) (model.Response, error) {
	if err := s.wait(ctx); err != nil {
		return model.Response{}, err
	}
	return s.req.Get(s.host, path, headers)
}

func (s *session) post(ctx context.Context, path string, headers model.Headers) (model.Response, error) {
	if err := s.wait(ctx); err != nil {
		return model.Response{}, err
	}
	return s.req.Post(s.host, path, headers)
}

func (s *session) login(ctx context.Context, path string, headers model.Headers) error {
	resp, err := s.post(ctx, path, headers)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return appErrors.NewAppError(
			"LOGIN_FAILED",
			fmt.Sprintf("host %s answered %d", s.host, resp.StatusCode),
			appErrors.ErrLoginFailed,
		)
	}
	s.token = resp.Body
	return nil
}

// fetchInterfaces logs in when needed, then decodes the interfaces body
// into out.
func (s *session) fetchInterfaces(ctx context.Context, c Client, auth func() model.Headers, out any) error {
	if s.token == "" {
		if err := c.Login(ctx); err != nil {
			return err
		}
	}

	resp, err := s.get(ctx, model.PathInterfaces, auth())
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return unexpectedStatus(s.host, model.PathInterfaces, resp)
	}
	if err := json.Unmarshal([]byte(resp.Body), out); err != nil {
		return appErrors.NewAppError("MALFORMED_BODY", fmt.Sprintf("interfaces from %s", s.host), appErrors.ErrMalformedBody)
	}
	return nil
}

func unexpectedStatus(host, path string, resp model.Response) error {
	return appErrors.NewAppError(
		"UNEXPECTED_STATUS",
		fmt.Sprintf("%s %s answered %d", host, path, resp.StatusCode),
		appErrors.ErrUnexpectedStatus,
	)
}
