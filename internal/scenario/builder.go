package scenario

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"tutor-router/internal/device"
	"tutor-router/internal/logger"
	appErrors "tutor-router/pkg/errors"
)

const DefaultFleetSize = 20

// MixedV2Share is the chance that a router in the mixed fleet has been
// upgraded to V2.
const MixedV2Share = 0.5

// Builder creates a fleet of n routers from f.
type Builder func(f *device.Factory, n int) *Scenario

const (
	NameAllV1 = "scenario-1"
	NameMixed = "scenario-2"
)

var builders = map[string]Builder{
	NameAllV1: ScenarioOne,
	NameMixed: ScenarioTwo,
}

// ScenarioOne is the fleet before the rollout: every router runs V1.
func ScenarioOne(f *device.Factory, n int) *Scenario {
	devices := make([]device.Device, 0, n)
	for i := 0; i < n; i++ {
		devices = append(devices, f.NewV1())
	}
	return logBuilt(New("Scenario 1", devices))
}

// ScenarioTwo is the fleet mid-rollout: each router is V1 or V2 at random.
func ScenarioTwo(f *device.Factory, n int) *Scenario {
	devices := make([]device.Device, 0, n)
	for i := 0; i < n; i++ {
		devices = append(devices, f.NewMixed(MixedV2Share))
	}
	return logBuilt(New("Scenario 2", devices))
}

// Build picks a builder by name.
func Build(name string, f *device.Factory, n int) (*Scenario, error) {
	b, ok := builders[name]
	if !ok {
		return nil, appErrors.NewAppError("UNKNOWN_SCENARIO", fmt.Sprintf("scenario %q", name), appErrors.ErrUnknownScenario)
	}
	if n < 0 {
		return nil, appErrors.NewAppError("INVALID_FLEET_SIZE", fmt.Sprintf("fleet size %d", n), appErrors.ErrInvalidConfig)
	}
	return b(f, n), nil
}

// Names lists the registered builders.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func logBuilt(s *Scenario) *Scenario {
	logger.Info("Scenario built",
		zap.String("scenario", s.name),
		zap.Int("routers", s.Len()),
	)
	return s
}
