// Package loader registers self-contained features on the Fiber router.
//
// A feature owns its service, handlers and routes and exposes them through
// the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order. LoadAll skips disabled
// features and stops at the first one that fails to load. The start command
// registers 'catalog' first because 'integrity' queries the loaded catalog.
package loader
