package scenario

import (
	"errors"
	"net/http"
	"testing"

	"tutor-router/internal/device"
	"tutor-router/internal/device/model"
	appErrors "tutor-router/pkg/errors"
)

func TestScenarioOne_AllV1(t *testing.T) {
	s := ScenarioOne(device.NewFactory(), DefaultFleetSize)

	if s.Name() != "Scenario 1" {
		t.Errorf("name = %q", s.Name())
	}
	hosts := s.Hosts()
	if len(hosts) != 20 {
		t.Fatalf("hosts = %d, want 20", len(hosts))
	}
	for _, h := range hosts {
		d, ok := s.Device(h)
		if !ok {
			t.Fatalf("host %s not registered", h)
		}
		if d.Version() != model.VersionV1 {
			t.Errorf("%s version = %d, want 1", h, d.Version())
		}
	}
	if hosts[0] != "TutorRouter-1" || hosts[19] != "TutorRouter-20" {
		t.Errorf("hosts not in creation order: %v", hosts)
	}
}

func TestScenarioTwo_Mixed(t *testing.T) {
	s := ScenarioTwo(device.NewFactory(device.WithSeed(5)), 200)

	counts := map[model.Version]int{}
	for _, h := range s.Hosts() {
		d, _ := s.Device(h)
		counts[d.Version()]++
	}
	if counts[model.VersionV1] == 0 || counts[model.VersionV2] == 0 {
		t.Errorf("expected both firmware versions, got %v", counts)
	}
	if counts[model.VersionV1]+counts[model.VersionV2] != 200 {
		t.Errorf("counts = %v", counts)
	}
}

func TestBuild(t *testing.T) {
	f := device.NewFactory()

	s, err := Build(NameMixed, f, 3)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if s.Len() != 3 || s.Name() != "Scenario 2" {
		t.Errorf("got %s with %d routers", s.Name(), s.Len())
	}

	if _, err := Build("scenario-9", f, 3); !errors.Is(err, appErrors.ErrUnknownScenario) {
		t.Errorf("err = %v, want ErrUnknownScenario", err)
	}
	if _, err := Build(NameAllV1, f, -1); !errors.Is(err, appErrors.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	if got := Names(); len(got) != 2 || got[0] != NameAllV1 {
		t.Errorf("names = %v", got)
	}
}

func TestScenario_RequestUnknownHost(t *testing.T) {
	s := ScenarioOne(device.NewFactory(), 2)

	_, err := s.Request("no-such-host", "GET", "healthcheck", nil)
	if !errors.Is(err, appErrors.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestScenario_RequestMethods(t *testing.T) {
	f := device.NewFactory()
	r := f.NewV1(device.WithHealth(true))
	s := New("test", []device.Device{r})
	host := r.Hostname()

	tests := []struct {
		name    string
		method  string
		path    string
		headers model.Headers
		status  int
		err     error
	}{
		{"lower get", "get", "healthcheck", nil, http.StatusOK, nil},
		{"upper get", "GET", "healthcheck", nil, http.StatusOK, nil},
		{"mixed post", "PoSt", "login", model.Headers{"username": "admin", "password": "Password123"}, http.StatusOK, nil},
		{"post forbidden", "POST", "login", nil, http.StatusForbidden, nil},
		{"delete", "DELETE", "healthcheck", nil, 0, appErrors.ErrMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.Request(host, tt.method, tt.path, tt.headers)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("err = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
		})
	}
}

func TestScenario_GetPostRoundTrip(t *testing.T) {
	f := device.NewFactory()
	r := f.NewV2(device.WithHealth(false))
	s := New("test", []device.Device{r})
	host := r.Hostname()

	if _, err := s.Get(host, "healthcheck", nil); !errors.Is(err, appErrors.ErrNotFound) {
		t.Fatalf("unhealthy healthcheck err = %v", err)
	}

	resp, err := s.Post(host, "authenticate/admin", model.Headers{"token": "Password123"})
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("login = (%v, %v)", resp, err)
	}

	resp, err = s.Get(host, "interfaces", model.Headers{"Authentication": "TOKEN " + resp.Body})
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("interfaces = (%v, %v)", resp, err)
	}
}

func TestNew_DuplicateHostnameKeepsOrder(t *testing.T) {
	a := device.NewFactory()
	b := device.NewFactory()
	first, second := a.NewV1(), b.NewV2()

	s := New("dup", []device.Device{first, second})
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	d, _ := s.Device(first.Hostname())
	if d.Version() != model.VersionV2 {
		t.Errorf("later device should win, got version %d", d.Version())
	}
}
