package dberr_test

import (
	"errors"
	"fmt"
	"testing"

	"go-taxdesk/internal/shared/dberr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

var (
	errNotFound  = errors.New("not found")
	errNumber    = errors.New("number taken")
	errDuplicate = errors.New("duplicate")
)

func TestMapper_Map(t *testing.T) {
	m := dberr.Mapper{
		NotFound:  errNotFound,
		Unique:    map[string]error{"uq_employee_number": errNumber},
		Duplicate: errDuplicate,
	}
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", fmt.Errorf("find: %w", gorm.ErrRecordNotFound), errNotFound},
		{"named constraint", &pgconn.PgError{Code: "23505", ConstraintName: "UQ_EMPLOYEE_NUMBER"}, errNumber},
		{"unlisted constraint", &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}, errDuplicate},
		{"translated duplicate", gorm.ErrDuplicatedKey, errDuplicate},
		{"foreign key", &pgconn.PgError{Code: "23503"}, nil},
		{"other pg error", &pgconn.PgError{Code: "40001"}, nil},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Map(tt.in)
			if tt.want == nil && tt.in != nil {
				assert.Same(t, tt.in, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapper_WithoutDuplicateKeepsError(t *testing.T) {
	err := &pgconn.PgError{Code: "23505", ConstraintName: "uq_x"}

	assert.Same(t, err, dberr.Mapper{}.Map(err))
}
