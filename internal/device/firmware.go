package device

import (
	"fmt"
	"sync"

	"tutor-router/internal/device/model"
	"tutor-router/pkg/utils"
)

// DefaultAdminPassword is the factory password shipped with every firmware.
const DefaultAdminPassword = "Password123"

// Firmware is the behaviour that differs between router generations.
// Router handles everything the generations share and defers to Firmware
// for the rest.
type Firmware interface {
	Version() model.Version
	LoginPath() string
	// Login reports whether headers exactly match the login headers.
	Login(headers model.Headers) bool
	CheckAuth(headers model.Headers, authToken string) bool
	Health(healthy bool) model.HealthStatus
	// RenderCount formats a traffic counter for the interfaces body.
	RenderCount(count int) any
}

// loginHeaders matches a header set exactly. Secret values are kept as
// bcrypt hashes, everything else is compared as-is.
type loginHeaders struct {
	plain  map[string]string
	hashed map[string][]byte
}

func newLoginHeaders(plain map[string]string, secrets map[string]string) (loginHeaders, error) {
	lh := loginHeaders{
		plain:  plain,
		hashed: make(map[string][]byte, len(secrets)),
	}
	for key, secret := range secrets {
		h, err := utils.HashSecret(secret)
		if err != nil {
			return loginHeaders{}, fmt.Errorf("hash %s: %w", key, err)
		}
		lh.hashed[key] = h
	}
	return lh, nil
}

func (lh loginHeaders) match(headers model.Headers) bool {
	if len(headers) != len(lh.plain)+len(lh.hashed) {
		return false
	}
	for key, want := range lh.plain {
		got, ok := headers[key]
		if !ok || got != want {
			return false
		}
	}
	for key, hash := range lh.hashed {
		got, ok := headers[key]
		if !ok || !utils.CheckSecret(hash, got) {
			return false
		}
	}
	return true
}

// FirmwareV1 is the original firmware: username/password login and a bare
// Token header.
type FirmwareV1 struct {
	login loginHeaders
}

func NewFirmwareV1(password string) (*FirmwareV1, error) {
	lh, err := newLoginHeaders(
		map[string]string{model.HeaderUsername: "admin"},
		map[string]string{model.HeaderPassword: password},
	)
	if err != nil {
		return nil, err
	}
	return &FirmwareV1{login: lh}, nil
}

func (f *FirmwareV1) Version() model.Version { return model.VersionV1 }
func (f *FirmwareV1) LoginPath() string      { return "login" }

func (f *FirmwareV1) Login(headers model.Headers) bool {
	return f.login.match(headers)
}

func (f *FirmwareV1) CheckAuth(headers model.Headers, authToken string) bool {
	return headers[model.HeaderToken] == authToken
}

func (f *FirmwareV1) Health(healthy bool) model.HealthStatus {
	if healthy {
		return model.HealthGood
	}
	return model.HealthBad
}

func (f *FirmwareV1) RenderCount(count int) any {
	return count
}

// FirmwareV2 is the hardened rollout: a token login under a new path, a
// prefixed Authentication header and counters reported in Kbps.
type FirmwareV2 struct {
	login loginHeaders
}

func NewFirmwareV2(password string) (*FirmwareV2, error) {
	lh, err := newLoginHeaders(nil, map[string]string{model.HeaderLoginToken: password})
	if err != nil {
		return nil, err
	}
	return &FirmwareV2{login: lh}, nil
}

func (f *FirmwareV2) Version() model.Version { return model.VersionV2 }
func (f *FirmwareV2) LoginPath() string      { return "authenticate/admin" }

func (f *FirmwareV2) Login(headers model.Headers) bool {
	return f.login.match(headers)
}

func (f *FirmwareV2) CheckAuth(headers model.Headers, authToken string) bool {
	return headers[model.HeaderAuthentication] == "TOKEN "+authToken
}

func (f *FirmwareV2) Health(healthy bool) model.HealthStatus {
	if healthy {
		return model.HealthOK
	}
	return model.HealthWarn
}

// RenderCount truncates to whole kilobits; counters are never negative.
func (f *FirmwareV2) RenderCount(count int) any {
	return fmt.Sprintf("%d Kbps", count/1000)
}

var defaultFirmware = sync.OnceValue(func() map[model.Version]Firmware {
	v1, err := NewFirmwareV1(DefaultAdminPassword)
	if err != nil {
		panic(err)
	}
	v2, err := NewFirmwareV2(DefaultAdminPassword)
	if err != nil {
		panic(err)
	}
	return map[model.Version]Firmware{
		model.VersionV1: v1,
		model.VersionV2: v2,
	}
})

// DefaultFirmware returns the shared firmware for version shipped with the
// default admin password, or nil for an unknown version.
func DefaultFirmware(version model.Version) Firmware {
	return defaultFirmware()[version]
}
