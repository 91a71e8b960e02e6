// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (local runs and tests)
// connections from the application's configuration. Connections are created with
// error translation enabled, so unique index violations surface as
// gorm.ErrDuplicatedKey regardless of driver.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let the `schema` command verify that the
// farmers table carries every column the registry writes, before sync workers
// start relying on it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "farmers", []string{"farmer_id", "nrc_hash"})
package database
