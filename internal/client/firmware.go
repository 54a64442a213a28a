package client

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"tutor-router/internal/device/model"
	appErrors "tutor-router/pkg/errors"
)

// V1Client speaks the original firmware API.
type V1Client struct {
	*session
}

var _ Client = (*V1Client)(nil)

func (c *V1Client) Version() model.Version { return model.VersionV1 }

func (c *V1Client) Login(ctx context.Context) error {
	return c.login(ctx, "login", model.Headers{
		model.HeaderUsername: c.creds.Username,
		model.HeaderPassword: c.creds.Password,
	})
}

func (c *V1Client) authHeaders() model.Headers {
	return model.Headers{model.HeaderToken: c.token}
}

func (c *V1Client) Interfaces(ctx context.Context) (map[string]model.Traffic, error) {
	var body map[string]model.Traffic
	if err := c.fetchInterfaces(ctx, c, c.authHeaders, &body); err != nil {
		return nil, err
	}
	return body, nil
}

// V2Client speaks the hardened firmware API. Counters come back as Kbps
// strings and are scaled back to raw counts, losing the sub-kilobit part.
type V2Client struct {
	*session
}

var _ Client = (*V2Client)(nil)

func (c *V2Client) Version() model.Version { return model.VersionV2 }

// Login sends the admin password as the login token; V2 has no username.
func (c *V2Client) Login(ctx context.Context) error {
	return c.login(ctx, "authenticate/admin", model.Headers{
		model.HeaderLoginToken: c.creds.Password,
	})
}

func (c *V2Client) authHeaders() model.Headers {
	return model.Headers{model.HeaderAuthentication: "TOKEN " + c.token}
}

func (c *V2Client) Interfaces(ctx context.Context) (map[string]model.Traffic, error) {
	var body map[string]struct {
		Up   string `json:"up"`
		Down string `json:"down"`
	}
	if err := c.fetchInterfaces(ctx, c, c.authHeaders, &body); err != nil {
		return nil, err
	}

	out := make(map[string]model.Traffic, len(body))
	for name, t := range body {
		up, err := ParseKbps(t.Up)
		if err != nil {
			return nil, err
		}
		down, err := ParseKbps(t.Down)
		if err != nil {
			return nil, err
		}
		out[name] = model.Traffic{Up: up, Down: down}
	}
	return out, nil
}

// ParseKbps turns "<n> Kbps" into n*1000.
func ParseKbps(s string) (int, error) {
	num, ok := strings.CutSuffix(strings.TrimSpace(s), " Kbps")
	if !ok {
		return 0, appErrors.NewAppError("MALFORMED_BODY", fmt.Sprintf("counter %q", s), appErrors.ErrMalformedBody)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return 0, appErrors.NewAppError("MALFORMED_BODY", fmt.Sprintf("counter %q", s), appErrors.ErrMalformedBody)
	}
	return n * 1000, nil
}
