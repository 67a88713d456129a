package company

import (
	"net/http"

	"go-taxdesk/internal/shared/apperror"
	"go-taxdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("company.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("company request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) companyID(c *gin.Context) (string, bool) {
	companyID := c.GetString("company_id")
	if companyID == "" {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Company ID not found in context", nil)
		return "", false
	}
	return companyID, true
}

func (h *Handler) GetMe(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	comp, err := h.service.GetByID(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	comp, err := h.service.Update(c.Request.Context(), companyID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comp, nil)
}

func (h *Handler) UpsertRegistration(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	var req UpsertCompanyRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.UpsertRegistration(c.Request.Context(), companyID, req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListRegistrations(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	result, err := h.service.ListRegistrations(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) DeleteRegistration(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	regType := RegistrationType(c.Param("type"))
	if err := h.service.DeleteRegistration(c.Request.Context(), companyID, regType); err != nil {
		h.writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
