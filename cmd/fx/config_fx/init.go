package config_fx

import (
	"go.uber.org/fx"

	"portal/internal/config"
)

var Module = fx.Provide(
	config.Load)
