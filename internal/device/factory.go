package device

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
	appErrors "tutor-router/pkg/errors"
)

const (
	DefaultHostnamePrefix = "TutorRouter"
	DefaultHealthyRatio   = 0.75
)

// Factory builds routers. It owns the hostname counter, so hostnames are
// unique per factory. A Factory is not safe for concurrent use.
type Factory struct {
	prefix       string
	next         int
	healthyRatio float64
	source       *rand.ChaCha8
	rng          *rand.Rand
	firmware     map[model.Version]Firmware
}

type FactoryOption func(*Factory)

// WithSeed makes health, traffic and auth tokens reproducible.
func WithSeed(seed uint64) FactoryOption {
	return func(f *Factory) {
		f.reseed(seed)
	}
}

func WithHealthyRatio(ratio float64) FactoryOption {
	return func(f *Factory) {
		f.healthyRatio = ratio
	}
}

// WithStartIndex sets the number given to the first hostname.
func WithStartIndex(n int) FactoryOption {
	return func(f *Factory) {
		f.next = n
	}
}

func WithPrefix(prefix string) FactoryOption {
	return func(f *Factory) {
		f.prefix = prefix
	}
}

// WithFirmware replaces the firmware used for its version, e.g. one built
// with a different admin password.
func WithFirmware(fw Firmware) FactoryOption {
	return func(f *Factory) {
		f.firmware[fw.Version()] = fw
	}
}

func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		prefix:       DefaultHostnamePrefix,
		next:         1,
		healthyRatio: DefaultHealthyRatio,
		firmware: map[model.Version]Firmware{
			model.VersionV1: DefaultFirmware(model.VersionV1),
			model.VersionV2: DefaultFirmware(model.VersionV2),
		},
	}
	f.reseed(rand.Uint64())

	for _, opt := range opts {
		opt(f)
	}

	return f
}

func (f *Factory) reseed(seed uint64) {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	f.source = rand.NewChaCha8(key)
	f.rng = rand.New(f.source)
}

type routerConfig struct {
	healthy *bool
}

type RouterOption func(*routerConfig)

// WithHealth forces the health flag instead of drawing it.
func WithHealth(healthy bool) RouterOption {
	return func(c *routerConfig) {
		c.healthy = &healthy
	}
}

// NewV1 and NewV2 cannot fail: NewFactory always registers both built-in
// versions (WithFirmware only replaces them) and ChaCha8 never returns a
// read error. Use New for a version that may be missing.
func (f *Factory) NewV1(opts ...RouterOption) *Router {
	return f.mustNew(model.VersionV1, opts...)
}

func (f *Factory) NewV2(opts ...RouterOption) *Router {
	return f.mustNew(model.VersionV2, opts...)
}

func (f *Factory) mustNew(version model.Version, opts ...RouterOption) *Router {
	r, err := f.New(version, opts...)
	if err != nil {
		panic(fmt.Sprintf("device: build %s router: %v", version, err))
	}
	return r
}

// NewMixed builds a V2 router with probability v2Share, V1 otherwise.
func (f *Factory) NewMixed(v2Share float64, opts ...RouterOption) *Router {
	if f.rng.Float64() < v2Share {
		return f.NewV2(opts...)
	}
	return f.NewV1(opts...)
}

func (f *Factory) New(version model.Version, opts ...RouterOption) (*Router, error) {
	fw, ok := f.firmware[version]
	if !ok {
		return nil, appErrors.NewAppError("UNSUPPORTED_FIRMWARE", fmt.Sprintf("version %d", version), appErrors.ErrUnsupportedFirmware)
	}

	cfg := routerConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	healthy := f.rng.Float64() < f.healthyRatio
	if cfg.healthy != nil {
		healthy = *cfg.healthy
	}

	token, err := uuid.NewRandomFromReader(f.source)
	if err != nil {
		return nil, fmt.Errorf("generate auth token: %w", err)
	}

	r := &Router{
		hostname:  fmt.Sprintf("%s-%d", f.prefix, f.next),
		authToken: token.String(),
		healthy:   healthy,
		firmware:  fw,
	}
	f.next++

	r.interfaces = make(map[string]model.Traffic, len(model.InterfaceNames))
	for _, name := range model.InterfaceNames {
		r.interfaces[name] = model.Traffic{
			Up:   f.count(),
			Down: f.count(),
		}
	}

	logger.Debug("Router created",
		zap.String("host", r.hostname),
		zap.Int("version", int(version)),
		zap.Bool("healthy", healthy),
	)

	return r, nil
}

func (f *Factory) count() int {
	return model.TrafficMin + f.rng.IntN(model.TrafficMax-model.TrafficMin+1)
}
