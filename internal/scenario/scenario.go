package scenario

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"tutor-router/internal/device"
	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
	appErrors "tutor-router/pkg/errors"
)

// Scenario is a named fleet of devices addressable by hostname. It owns
// its devices; none are added or removed after construction.
type Scenario struct {
	name    string
	routers map[string]device.Device
	order   []string
}

// New builds a scenario over devices. A later device with an already used
// hostname replaces the earlier one.
func New(name string, devices []device.Device) *Scenario {
	s := &Scenario{
		name:    name,
		routers: make(map[string]device.Device, len(devices)),
		order:   make([]string, 0, len(devices)),
	}
	for _, d := range devices {
		if _, exists := s.routers[d.Hostname()]; !exists {
			s.order = append(s.order, d.Hostname())
		}
		s.routers[d.Hostname()] = d
	}
	return s
}

func (s *Scenario) Name() string { return s.name }
func (s *Scenario) Len() int     { return len(s.order) }

// Hosts returns hostnames in creation order.
func (s *Scenario) Hosts() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Device looks up a device without going through a request.
func (s *Scenario) Device(hostname string) (device.Device, bool) {
	d, ok := s.routers[hostname]
	return d, ok
}

// Request forwards one call to hostname. An unknown hostname is a
// connection error; method is matched case-insensitively.
func (s *Scenario) Request(hostname, method, path string, headers model.Headers) (model.Response, error) {
	router, ok := s.routers[hostname]
	if !ok {
		logger.Debug("Request to unknown host",
			zap.String("scenario", s.name),
			zap.String("host", hostname),
		)
		return model.Response{}, appErrors.ConnectionError(hostname)
	}

	var (
		resp model.Response
		err  error
	)
	switch strings.ToUpper(method) {
	case model.MethodGet:
		resp, err = router.Get(path, headers)
	case model.MethodPost:
		resp, err = router.Post(path, headers)
	default:
		return model.Response{}, appErrors.NewAppError(
			"METHOD_NOT_ALLOWED",
			fmt.Sprintf("method %q", method),
			appErrors.ErrMethodNotAllowed,
		)
	}

	if err != nil {
		logger.Debug("Request failed",
			zap.String("host", hostname),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return resp, err
	}

	logger.Debug("Request served",
		zap.String("host", hostname),
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode),
	)
	return resp, nil
}

func (s *Scenario) Get(hostname, path string, headers model.Headers) (model.Response, error) {
	return s.Request(hostname, model.MethodGet, path, headers)
}

func (s *Scenario) Post(hostname, path string, headers model.Headers) (model.Response, error) {
	return s.Request(hostname, model.MethodPost, path, headers)
}
