// Package database handles relational database connections.
//
// It wraps GORM so the sql store backend can run against MySQL, PostgreSQL or SQLite
// depending on the application's configuration. SQLite is the default and is what the
// tests use in memory.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
package database
