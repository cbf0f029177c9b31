package configs

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

type ResolutionServiceConfig struct {
	App        App
	DB         DB
	Logger     Logger
	Governance Governance
	Telegram   Telegram
	Schedule   Schedule
}

func LoadResolutionServiceConfig() (ResolutionServiceConfig, error) {
	var config ResolutionServiceConfig

	if err := env.Parse(&config); err != nil {
		return ResolutionServiceConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}
