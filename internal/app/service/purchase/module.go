package purchase

import "go.uber.org/fx"

// Module exposes the purchases store via Fx.
var Module = fx.Options(
	fx.Provide(NewStore),
)
