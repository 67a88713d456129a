package tenant_test

import (
	"testing"

	"go-taxdesk/internal/tenant"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type payroll struct {
	ID        string
	CompanyID string
}

func dryRun(t *testing.T) *gorm.DB {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestScope(t *testing.T) {
	stmt := dryRun(t).Model(&payroll{}).Scopes(tenant.Scope("c-1")).Find(&[]payroll{}).Statement

	assert.Equal(t, `SELECT * FROM "payrolls" WHERE company_id = $1`, stmt.SQL.String())
	assert.Equal(t, []any{"c-1"}, stmt.Vars)
}

func TestTableScope_QualifiesJoinedQuery(t *testing.T) {
	stmt := dryRun(t).Table("payrolls").
		Select("payrolls.*").
		Joins("JOIN employees ON employees.id = payrolls.employee_id").
		Scopes(tenant.TableScope("payrolls", "c-1")).
		Find(&[]payroll{}).Statement

	assert.Equal(t,
		`SELECT payrolls.* FROM "payrolls" JOIN employees ON employees.id = payrolls.employee_id WHERE payrolls.company_id = $1`,
		stmt.SQL.String())
	assert.Equal(t, []any{"c-1"}, stmt.Vars)
}
