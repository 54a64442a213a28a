package survey

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/mock/gomock"

	"tutor-router/internal/client/mocks"
	"tutor-router/internal/device"
	"tutor-router/internal/device/model"
	"tutor-router/internal/scenario"
	appErrors "tutor-router/pkg/errors"
)

var admin = model.Credentials{Username: "admin", Password: "Password123"}

func TestRun_MixedFleet(t *testing.T) {
	f := device.NewFactory()
	healthyV1 := f.NewV1(device.WithHealth(true))
	healthyV2 := f.NewV2(device.WithHealth(true))
	down := f.NewV2(device.WithHealth(false))
	s := scenario.New("test", []device.Device{healthyV1, down, healthyV2})

	tracker := NewProgressTracker()
	var seen []Progress
	tracker.OnChange(func(p Progress) { seen = append(seen, p) })

	report, err := Run(context.Background(), s, s.Hosts(), admin, WithProgress(tracker))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(report.Routers) != 2 {
		t.Fatalf("routers = %+v", report.Routers)
	}
	if len(report.Unreachable) != 1 || report.Unreachable[0] != down.Hostname() {
		t.Errorf("unreachable = %v", report.Unreachable)
	}
	if len(report.Failed) != 0 {
		t.Errorf("failed = %v", report.Failed)
	}

	sum := model.Totals(healthyV1.Interfaces())
	got := report.Routers[0]
	if got.Host != healthyV1.Hostname() || got.Ingress != sum.Down || got.Egress != sum.Up || got.Version != model.VersionV1 {
		t.Errorf("v1 totals = %+v, want ingress %d egress %d", got, sum.Down, sum.Up)
	}
	if report.Routers[1].Version != model.VersionV2 {
		t.Errorf("second router = %+v", report.Routers[1])
	}

	p := tracker.Snapshot()
	if p.Total != 3 || p.Polled != 3 || p.Reachable != 2 || p.Unreachable != 1 || p.LastHost != healthyV2.Hostname() || !p.Done() {
		t.Errorf("progress = %+v", p)
	}
	if len(seen) != 3 {
		t.Fatalf("updates = %d, want one per host", len(seen))
	}
	wantOutcomes := []Outcome{OutcomeOK, OutcomeUnreachable, OutcomeOK}
	for i, got := range seen {
		if got.Polled != i+1 || got.LastOutcome != wantOutcomes[i] || got.LastHost != s.Hosts()[i] {
			t.Errorf("update %d = %+v", i, got)
		}
	}
}

func TestRun_WrongCredentialsRecorded(t *testing.T) {
	s := scenario.ScenarioOne(device.NewFactory(device.WithHealthyRatio(1)), 3)
	tracker := NewProgressTracker()

	report, err := Run(context.Background(), s, s.Hosts(), model.Credentials{Username: "admin", Password: "nope"}, WithProgress(tracker))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Routers) != 0 || len(report.Failed) != 3 {
		t.Errorf("report = %+v", report)
	}
	if _, ok := report.Busiest(); ok {
		t.Error("busiest should be empty")
	}
	if p := tracker.Snapshot(); p.LoginFailures != 3 || p.Failed != 3 || p.LastOutcome != OutcomeLoginFailed {
		t.Errorf("progress = %+v", p)
	}
}

func TestRun_UnknownHost(t *testing.T) {
	s := scenario.ScenarioOne(device.NewFactory(), 1)

	report, err := Run(context.Background(), s, []string{"ghost"}, admin)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(report.Unreachable) != 1 || report.Unreachable[0] != "ghost" {
		t.Errorf("unreachable = %v", report.Unreachable)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	req := mocks.NewMockRequester(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	req.EXPECT().
		Get("r1", model.PathHealthcheck, gomock.Any()).
		DoAndReturn(func(string, string, model.Headers) (model.Response, error) {
			cancel()
			return model.Response{}, appErrors.ConnectionError("r1")
		})

	_, err := Run(ctx, req, []string{"r1", "r2"}, admin)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRun_FirmwareErrorsAreNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	req := mocks.NewMockRequester(ctrl)

	req.EXPECT().
		Get("odd", model.PathHealthcheck, gomock.Any()).
		Return(model.Response{StatusCode: http.StatusOK, Body: `{"host":"odd","version":3,"health":"ok"}`}, nil)

	report, err := Run(context.Background(), req, []string{"odd"}, admin)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, ok := report.Failed["odd"]; !ok {
		t.Errorf("failed = %v", report.Failed)
	}
}

func TestReport_BusiestAndRanked(t *testing.T) {
	r := &Report{Routers: []RouterTraffic{
		{Host: "a", Ingress: 10, Egress: 10},
		{Host: "b", Ingress: 50, Egress: 1},
		{Host: "c", Ingress: 1, Egress: 50},
		{Host: "d", Ingress: 5, Egress: 5},
	}}

	best, ok := r.Busiest()
	if !ok || best.Host != "b" {
		t.Errorf("busiest = %+v", best)
	}

	ranked := r.Ranked()
	want := []string{"b", "c", "a", "d"}
	for i, h := range want {
		if ranked[i].Host != h {
			t.Fatalf("ranked = %+v", ranked)
		}
	}
	if r.Routers[0].Host != "a" {
		t.Error("Ranked mutated the report")
	}
}

func TestProgressTracker_ListenerMaySnapshot(t *testing.T) {
	tracker := NewProgressTracker()
	var inner []Progress
	tracker.OnChange(func(Progress) { inner = append(inner, tracker.Snapshot()) })
	tracker.OnChange(nil)

	tracker.begin(2)
	tracker.record("a", OutcomeFailed)
	tracker.record("b", OutcomeUnreachable)

	if len(inner) != 2 || inner[1].Polled != 2 || inner[1].Failed != 1 || inner[1].Unreachable != 1 {
		t.Errorf("snapshots = %+v", inner)
	}

	tracker.begin(1)
	if p := tracker.Snapshot(); p.Polled != 0 || p.Total != 1 || p.Done() {
		t.Errorf("after begin = %+v", p)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Outcome
	}{
		{"nil", nil, OutcomeOK},
		{"connection", appErrors.ConnectionError("r1"), OutcomeUnreachable},
		{"login", appErrors.NewAppError("LOGIN_FAILED", "r1", appErrors.ErrLoginFailed), OutcomeLoginFailed},
		{"other", appErrors.ErrUnsupportedFirmware, OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Errorf("classify(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}
