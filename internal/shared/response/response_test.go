package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-taxdesk/internal/shared/apperror"
	"go-taxdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	status := response.FromError(c, apperror.New(apperror.CodeInvalidState, "Filed returns cannot be edited", http.StatusBadRequest))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var env struct {
		Ok    bool              `json:"ok"`
		Error map[string]string `json:"error"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Ok)
	assert.Equal(t, apperror.CodeInvalidState, env.Error["code"])
	assert.Equal(t, "Filed returns cannot be edited", env.Error["message"])
}

func TestNewPaginationMeta(t *testing.T) {
	assert.Equal(t, 3, response.NewPaginationMeta(21, 1, 10).TotalPages)
	assert.Equal(t, 0, response.NewPaginationMeta(21, 1, 0).TotalPages)
}
