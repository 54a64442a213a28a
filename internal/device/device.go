package device

import (
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
	appErrors "tutor-router/pkg/errors"
)

// Device is a simulated router answering HTTP-like calls in process.
//
// Authorization failures and unknown paths are reported as status codes.
// A returned error means the device could not be reached at all; today
// that only happens for a healthcheck against an unhealthy device.
type Device interface {
	Hostname() string
	Version() model.Version
	Healthy() bool
	Get(target string, headers model.Headers) (model.Response, error)
	Post(target string, headers model.Headers) (model.Response, error)
}

// Router is the Device shared by every firmware generation. Its state is a
// snapshot fixed at construction.
type Router struct {
	hostname   string
	authToken  string
	healthy    bool
	interfaces map[string]model.Traffic
	firmware   Firmware
}

var _ Device = (*Router)(nil)

func (r *Router) Hostname() string       { return r.hostname }
func (r *Router) Version() model.Version { return r.firmware.Version() }
func (r *Router) Healthy() bool          { return r.healthy }

// Interfaces returns a copy of the raw counters.
func (r *Router) Interfaces() map[string]model.Traffic {
	out := make(map[string]model.Traffic, len(r.interfaces))
	for name, t := range r.interfaces {
		out[name] = t
	}
	return out
}

func (r *Router) Post(target string, headers model.Headers) (model.Response, error) {
	if target != r.firmware.LoginPath() || !r.firmware.Login(headers) {
		logger.WithHost(r.hostname).Debug("Login rejected", zap.String("path", target))
		return model.Forbidden(), nil
	}
	return model.Response{StatusCode: http.StatusOK, Body: r.authToken}, nil
}

// Get serves healthcheck without authentication. Only the healthcheck
// looks at the health flag; an unhealthy device still answers login and
// interfaces calls.
func (r *Router) Get(target string, headers model.Headers) (model.Response, error) {
	path := requestPath(target)

	if path == model.PathHealthcheck {
		if !r.healthy {
			return model.Response{}, appErrors.ConnectionError(r.hostname)
		}
		return model.JSON(model.HealthcheckBody{
			Host:    r.hostname,
			Version: r.firmware.Version(),
			Health:  r.firmware.Health(r.healthy),
		})
	}

	if !r.firmware.CheckAuth(headers, r.authToken) {
		return model.Forbidden(), nil
	}

	if path == model.PathInterfaces {
		return model.JSON(r.renderedInterfaces())
	}

	return model.NotFound(), nil
}

type renderedTraffic struct {
	Up   any `json:"up"`
	Down any `json:"down"`
}

func (r *Router) renderedInterfaces() map[string]renderedTraffic {
	out := make(map[string]renderedTraffic, len(r.interfaces))
	for name, t := range r.interfaces {
		out[name] = renderedTraffic{
			Up:   r.firmware.RenderCount(t.Up),
			Down: r.firmware.RenderCount(t.Down),
		}
	}
	return out
}

// requestPath drops any query or fragment from target.
func requestPath(target string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	return u.Path
}
