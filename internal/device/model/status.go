package model

// HealthStatus is the word a firmware uses to report its health.
type HealthStatus string

const (
	HealthGood HealthStatus = "good"
	HealthBad  HealthStatus = "bad"
	HealthOK   HealthStatus = "ok"
	HealthWarn HealthStatus = "warn"
)
