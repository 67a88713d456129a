// Package dberr classifies postgres errors for the repository error mappers.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const codeUniqueViolation = "23505"

// UniqueConstraint returns the constraint a unique violation hit. The name is
// empty when the driver did not report one.
func UniqueConstraint(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != codeUniqueViolation {
			return "", false
		}
		return strings.ToLower(pgErr.ConstraintName), true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// Mapper turns repository errors into domain errors.
type Mapper struct {
	NotFound error
	// Unique maps constraint names to errors; Duplicate covers unnamed or unlisted ones.
	Unique    map[string]error
	Duplicate error
}

func (m Mapper) Map(err error) error {
	if err == nil {
		return nil
	}
	if m.NotFound != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return m.NotFound
	}
	if name, ok := UniqueConstraint(err); ok {
		if mapped, found := m.Unique[name]; found {
			return mapped
		}
		if m.Duplicate != nil {
			return m.Duplicate
		}
		return err
	}
	return err
}
