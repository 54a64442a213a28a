package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"tutor-router/internal/device/model"
	"tutor-router/internal/logger"
	appErrors "tutor-router/pkg/errors"
)

type Config struct {
	Environment string `validate:"oneof=development production"`
	Fleet       FleetConfig
	Router      RouterConfig
	Survey      SurveyConfig
}

type FleetConfig struct {
	Scenario     string  `validate:"required,oneof=scenario-1 scenario-2"`
	Size         int     `validate:"min=0,max=10000"`
	Seed         uint64  // 0 draws a fresh seed
	HealthyRatio float64 `validate:"min=0,max=1"`
}

type RouterConfig struct {
	Credentials model.Credentials
}

type SurveyConfig struct {
	RequestsPerSecond float64 `validate:"min=0"` // 0 disables pacing
	Burst             int     `validate:"min=1"`
}

var validate = validator.New()

// SetDefaults registers the fallback for every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SCENARIO", "scenario-1")
	v.SetDefault("FLEET_SIZE", 20)
	v.SetDefault("FLEET_SEED", 0)
	v.SetDefault("FLEET_HEALTHY_RATIO", 0.75)
	v.SetDefault("ROUTER_USERNAME", "admin")
	v.SetDefault("ROUTER_PASSWORD", "Password123")
	v.SetDefault("SURVEY_RPS", 0)
	v.SetDefault("SURVEY_BURST", 1)
}

// Load reads an optional .env file and the environment into v. Pass
// viper.GetViper() to see flags bound on the global instance.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(homeDir)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		logger.Debug("Config file not found, using environment and defaults")
	}

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Fleet: FleetConfig{
			Scenario:     v.GetString("SCENARIO"),
			Size:         v.GetInt("FLEET_SIZE"),
			Seed:         v.GetUint64("FLEET_SEED"),
			HealthyRatio: v.GetFloat64("FLEET_HEALTHY_RATIO"),
		},
		Router: RouterConfig{
			Credentials: model.Credentials{
				Username: v.GetString("ROUTER_USERNAME"),
				Password: v.GetString("ROUTER_PASSWORD"),
			},
		},
		Survey: SurveyConfig{
			RequestsPerSecond: v.GetFloat64("SURVEY_RPS"),
			Burst:             v.GetInt("SURVEY_BURST"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return appErrors.NewAppError("VALIDATION_ERROR", err.Error(), appErrors.ErrInvalidConfig)
	}
	return nil
}
