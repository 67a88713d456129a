package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-taxdesk/internal/domain"
	"go-taxdesk/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func newRBACRouter(enf *fakeEnforcer, withAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/invoices",
		func(c *gin.Context) {
			if withAuth {
				c.Set("user_id", "user-1")
				c.Set("company_id", "company-1")
			}
		},
		middleware.RBACAuthorize(enf, "invoice", "read"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)
	return r
}

func TestRBACAuthorize(t *testing.T) {
	tests := []struct {
		name     string
		enf      *fakeEnforcer
		withAuth bool
		want     int
	}{
		{"allowed", &fakeEnforcer{allowed: true}, true, http.StatusNoContent},
		{"denied", &fakeEnforcer{allowed: false}, true, http.StatusForbidden},
		{"enforcer error", &fakeEnforcer{err: errors.New("db down")}, true, http.StatusInternalServerError},
		{"no auth context", &fakeEnforcer{allowed: true}, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRBACRouter(tt.enf, tt.withAuth).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/invoices", nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	enf := &fakeEnforcer{allowed: true}
	newRBACRouter(enf, true).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/invoices", nil))
	assert.Equal(t, domain.EnforceRequest{UserID: "user-1", CompanyID: "company-1", Resource: "invoice", Action: "read"}, enf.got)
}
