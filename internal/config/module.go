package config

import "go.uber.org/fx"

// Module provides *Config read from flags, the environment and the env file.
var Module = fx.Provide(Load)
