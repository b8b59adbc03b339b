// Package loader provides the plugin-like feature loading system.
//
// Each feature (stocks, orders, categories, health, audit) implements Feature and
// registers its routes when the Manager loads it.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers features with Register and mounts them under /api
// with LoadAll.
package loader
