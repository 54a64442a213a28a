package model

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

const (
	PathHealthcheck = "healthcheck"
	PathInterfaces  = "interfaces"
)

// Header names used by the firmware generations.
const (
	HeaderUsername       = "username"
	HeaderPassword       = "password"
	HeaderLoginToken     = "token"
	HeaderToken          = "Token"
	HeaderAuthentication = "Authentication"
)

// Credentials are the admin secrets a client logs in with.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}
