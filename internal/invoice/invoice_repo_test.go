package invoice_test

import (
	"context"
	"database/sql/driver"
	"reflect"
	"regexp"
	"sync"
	"testing"
	"time"

	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/invoice"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestRepository_ReplaceItems_StoresExactAmounts(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	repo := invoice.NewRepository(db)

	totals, err := engine.ComputeInvoice(engine.InvoiceInput{
		Date: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Lines: []engine.InvoiceLine{
			{Description: "Retainer", Quantity: dec("1.25"), Rate: dec("99.99")},
			{Description: "Retainer", Quantity: dec("1.25"), Rate: dec("99.99")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "44.9955", totals.TaxAmount.String())

	invoiceID := uuid.New()
	items := make([]invoice.InvoiceItem, len(totals.Lines))
	for i, l := range totals.Lines {
		items[i] = invoice.InvoiceItem{
			ID:          uuid.New(),
			InvoiceID:   invoiceID,
			CompanyID:   uuid.New(),
			Position:    i + 1,
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			TaxRate:     l.TaxRatePercent,
			Amount:      l.Amount,
			TaxAmount:   l.TaxAmount,
		}
	}

	line := []driver.Value{
		sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		"1.25", "99.99", "18", "124.9875", "22.49775",
	}
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "invoice_items" WHERE invoice_id = $1`)).
		WithArgs(invoiceID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "invoice_items"`)).
		WithArgs(append(line, line...)...).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = repo.ReplaceItems(context.Background(), invoiceID, items)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEntities_AmountColumnsAreUnscaled(t *testing.T) {
	decimalType := reflect.TypeOf(decimal.Decimal{})

	for _, model := range []any{&invoice.Invoice{}, &invoice.InvoiceItem{}} {
		s, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)

		for _, f := range s.Fields {
			if f.FieldType != decimalType {
				continue
			}
			assert.Equal(t, "numeric", f.TagSettings["TYPE"], "%s.%s", s.Table, f.DBName)
		}
	}
}
