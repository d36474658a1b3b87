package database

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Conn returns db bound to ctx. When tx is open, statements are routed through
// it so gorm repositories can join a transaction started on the raw *sql.DB.
func Conn(ctx context.Context, db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db.WithContext(ctx)
	}
	scoped := db.Session(&gorm.Session{NewDB: true, Context: ctx})
	scoped.Statement.ConnPool = tx
	return scoped
}
