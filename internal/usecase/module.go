package usecase

import "go.uber.org/fx"

// Module provides the refresh coordinator to the fx container.
var Module = fx.Provide(NewRefreshCoordinator)
