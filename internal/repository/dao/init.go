package dao

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Donor{},
		&Category{},
		&Gift{},
		&CartLine{},
	)
}

// isUniqueViolation matches a Postgres unique violation by constraint name, or the
// SQLite "UNIQUE constraint failed: table.column" message used by the test store.
func isUniqueViolation(err error, constraint, column string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == constraint
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed: "+column)
}
