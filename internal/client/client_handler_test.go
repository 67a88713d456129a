package client_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-taxdesk/internal/client"
	clienterrors "go-taxdesk/internal/client/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  *apiMeta        `json:"meta"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeClientService struct {
	CreateFn  func(ctx context.Context, companyID string, req client.CreateClientRequest) (client.ClientResponse, error)
	GetAllFn  func(ctx context.Context, companyID string) ([]client.ClientResponse, error)
	GetByIDFn func(ctx context.Context, companyID, id string) (client.ClientResponse, error)
	UpdateFn  func(ctx context.Context, companyID, id string, req client.UpdateClientRequest) (client.ClientResponse, error)
	DeleteFn  func(ctx context.Context, companyID, id string) error
}

func (f *fakeClientService) Create(ctx context.Context, companyID string, req client.CreateClientRequest) (client.ClientResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeClientService) GetAll(ctx context.Context, companyID string) ([]client.ClientResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeClientService) GetByID(ctx context.Context, companyID, id string) (client.ClientResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeClientService) Update(ctx context.Context, companyID, id string, req client.UpdateClientRequest) (client.ClientResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeClientService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withCompany(companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	}
}

func TestClientHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeClientService{
			CreateFn: func(ctx context.Context, cid string, req client.CreateClientRequest) (client.ClientResponse, error) {
				assert.Equal(t, "comp-1", cid)
				assert.Equal(t, "Acme", req.Name)
				return client.ClientResponse{ID: "c-1", Name: req.Name}, nil
			},
		}
		r := setupRouter()
		r.POST("/clients", withCompany("comp-1"), client.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{"name":"Acme"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("missing name", func(t *testing.T) {
		r := setupRouter()
		r.POST("/clients", withCompany("comp-1"), client.NewHandler(&fakeClientService{}).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{"email":"a@b.in"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid gstin", func(t *testing.T) {
		svc := &fakeClientService{
			CreateFn: func(context.Context, string, client.CreateClientRequest) (client.ClientResponse, error) {
				return client.ClientResponse{}, clienterrors.ErrInvalidGSTIN
			},
		}
		r := setupRouter()
		r.POST("/clients", withCompany("comp-1"), client.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString(`{"name":"Acme","gstin":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestClientHandler_GetAll(t *testing.T) {
	svc := &fakeClientService{
		GetAllFn: func(context.Context, string) ([]client.ClientResponse, error) {
			return []client.ClientResponse{
				{ID: "1", Name: "Zeta Exports", PAN: "ZZZZZ1111Z"},
				{ID: "2", Name: "acme traders", PAN: "AAAAA2222A", BusinessType: client.BusinessCompany},
				{ID: "3", Name: "Beta LLP", BusinessType: client.BusinessLLP},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/clients", withCompany("comp-1"), client.NewHandler(svc).GetAll)

	t.Run("sorted and paged", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients?page=1&page_size=2", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		env := mustDecodeEnvelope(t, w.Body.Bytes())
		var data []client.ClientResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data, 2)
		assert.Equal(t, "2", data[0].ID)
		assert.Equal(t, "3", data[1].ID)
		assert.Equal(t, int64(3), env.Meta.Total)
	})

	t.Run("search by pan", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients?q=zzzzz", nil))

		env := mustDecodeEnvelope(t, w.Body.Bytes())
		var data []client.ClientResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data, 1)
		assert.Equal(t, "1", data[0].ID)
	})

	t.Run("filter by business type", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients?business_type=llp", nil))

		env := mustDecodeEnvelope(t, w.Body.Bytes())
		var data []client.ClientResponse
		assert.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Len(t, data, 1)
		assert.Equal(t, "3", data[0].ID)
	})
}

func TestClientHandler_GetByID_NotFound(t *testing.T) {
	svc := &fakeClientService{
		GetByIDFn: func(context.Context, string, string) (client.ClientResponse, error) {
			return client.ClientResponse{}, clienterrors.ErrClientNotFound
		},
	}
	r := setupRouter()
	r.GET("/clients/:id", withCompany("comp-1"), client.NewHandler(svc).GetByID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/clients/x", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientHandler_Delete(t *testing.T) {
	var gotID string
	svc := &fakeClientService{
		DeleteFn: func(_ context.Context, _ string, id string) error {
			gotID = id
			return nil
		},
	}
	r := setupRouter()
	r.DELETE("/clients/:id", withCompany("comp-1"), client.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/clients/abc", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", gotID)
}
