package connection

import (
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a session of db whose statements run on tx. A nil tx returns db.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	session := db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return session
}
