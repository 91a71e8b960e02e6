// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps registered features in order and loads the enabled ones
// with LoadAll. The sync and farmer features are registered this way from the
// start command.
package loader
