// Package database handles the connection to the pass history database.
//
// It wraps GORM to configure either a MySQL server (shared history for a team) or a
// local SQLite file (single workstation) from the application's configuration.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
