package taxcompliance_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-taxdesk/internal/taxcompliance"
	taxcomplianceerrors "go-taxdesk/internal/taxcompliance/errors"
	tcMock "go-taxdesk/internal/taxcompliance/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestTaxComplianceHandler_AsOf(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("passes the date through", func(t *testing.T) {
		svc := tcMock.NewMockService(gomock.NewController(t))
		h := taxcompliance.NewHandler(svc)
		svc.EXPECT().StatusAsOf(gomock.Any(), "comp-1", "2024-02-12").
			Return(taxcompliance.StatusAsOfReport{AsOf: "2024-02-12", Counts: map[string]int{"late": 2}}, nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/tax-compliances/as-of?date=2024-02-12", nil)
		c.Set("company_id", "comp-1")

		h.AsOf(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"late":2`)
	})

	t.Run("bad date", func(t *testing.T) {
		svc := tcMock.NewMockService(gomock.NewController(t))
		h := taxcompliance.NewHandler(svc)
		svc.EXPECT().StatusAsOf(gomock.Any(), "comp-1", "yesterday").
			Return(taxcompliance.StatusAsOfReport{}, taxcomplianceerrors.ErrInvalidDate)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/tax-compliances/as-of?date=yesterday", nil)
		c.Set("company_id", "comp-1")

		h.AsOf(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTaxComplianceHandler_Cancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := tcMock.NewMockService(gomock.NewController(t))
	h := taxcompliance.NewHandler(svc)

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("company_id", "comp-1"); c.Next() })
	r.POST("/tax-compliances/:id/cancel", h.Cancel)

	svc.EXPECT().Cancel(gomock.Any(), "comp-1", "rec-1").
		Return(taxcompliance.TaxComplianceResponse{}, taxcomplianceerrors.ErrRecordCancelled)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tax-compliances/rec-1/cancel", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}
