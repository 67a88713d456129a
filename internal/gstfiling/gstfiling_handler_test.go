package gstfiling_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-taxdesk/internal/gstfiling"
	gstfilingerrors "go-taxdesk/internal/gstfiling/errors"
	gstMock "go-taxdesk/internal/gstfiling/mock"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setupHandler(t *testing.T) (*gin.Engine, *gstMock.MockService) {
	gin.SetMode(gin.TestMode)
	svc := gstMock.NewMockService(gomock.NewController(t))
	h := gstfiling.NewHandler(svc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("company_id", "comp-1")
		c.Next()
	})
	r.POST("/gst-filings", h.Create)
	r.GET("/gst-filings", h.GetAll)
	r.POST("/gst-filings/:id/file", h.File)
	r.GET("/gst-filings/summary", h.Summary)
	return r, svc
}

func TestGSTFilingHandler_Create(t *testing.T) {
	r, svc := setupHandler(t)

	svc.EXPECT().Create(gomock.Any(), "comp-1", "", gomock.Any()).
		Return(gstfiling.GSTFilingResponse{NetTaxPayable: dec("-200"), RefundDue: true, Status: "pending"}, nil)

	body := `{"client_id":"6f1c1b7e-3a4f-4b8a-9a71-0c2b8f7d9e11","filing_type":"GSTR-3B","tax_period":"2024-03","output_tax":{"igst":"100"},"itc":{"igst":300}}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/gst-filings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"net_tax_payable":"-200"`)
	assert.Contains(t, w.Body.String(), `"refund_due":true`)
}

func TestGSTFilingHandler_GetAll_PassesFilters(t *testing.T) {
	r, svc := setupHandler(t)

	svc.EXPECT().GetAll(gomock.Any(), "comp-1", gstfiling.GSTFilingFilter{
		FilingType: "GSTR-1", TaxPeriod: "2024-03", Page: 1, PageSize: 10,
	}).Return(nil, int64(0), nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gst-filings?filing_type=GSTR-1&tax_period=2024-03", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGSTFilingHandler_File(t *testing.T) {
	t.Run("requires filing date", func(t *testing.T) {
		r, _ := setupHandler(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/gst-filings/abc/file", bytes.NewBufferString(`{"arn":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		r, svc := setupHandler(t)
		svc.EXPECT().File(gomock.Any(), "comp-1", "abc", gstfiling.FileReturnRequest{FilingDate: "2024-02-10", ARN: "X"}).
			Return(gstfiling.GSTFilingResponse{}, gstfilingerrors.ErrFilingNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/gst-filings/abc/file", bytes.NewBufferString(`{"filing_date":"2024-02-10","arn":"X"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGSTFilingHandler_Summary(t *testing.T) {
	r, svc := setupHandler(t)
	svc.EXPECT().SummarizePeriod(gomock.Any(), "comp-1", "2024-03").
		Return(gstfiling.PeriodSummary{TaxPeriod: "2024-03", Filings: 3, TotalITC: dec("450")}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gst-filings/summary?tax_period=2024-03", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_itc":"450"`)
}
