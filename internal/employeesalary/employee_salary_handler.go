package employeesalary

import (
	"net/http"
	"time"

	employeesalaryerrors "go-taxdesk/internal/employeesalary/errors"
	"go-taxdesk/internal/engine"
	"go-taxdesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	response.FromError(c, err)
}

func (h *Handler) Create(c *gin.Context) {
	companyID := c.GetString("company_id")
	var req CreateEmployeeSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateEmployeeSalaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetString("company_id"), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetEffective answers GET /employee-salaries/effective?employee_id=&as_of=YYYY-MM-DD.
// as_of defaults to today (UTC).
func (h *Handler) GetEffective(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if _, err := uuid.Parse(employeeID); err != nil {
		writeServiceError(c, employeesalaryerrors.ErrInvalidEmployeeID)
		return
	}
	asOf := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeServiceError(c, employeesalaryerrors.ErrInvalidEffectiveDate)
			return
		}
		asOf = parsed
	}

	in, err := h.service.EffectiveComponents(c.Request.Context(), c.GetString("company_id"), employeeID, asOf)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	totals, err := engine.ComputePayroll(in)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, EffectiveSalaryResponse{
		EmployeeID: employeeID,
		AsOf:       asOf.Format("2006-01-02"),
		SalaryComponents: SalaryComponents{
			BasicSalary:     in.BasicSalary,
			HRA:             in.HRA,
			Allowances:      in.Allowances,
			TDS:             in.Deductions.TDS,
			PF:              in.Deductions.PF,
			ESI:             in.Deductions.ESI,
			ProfessionalTax: in.Deductions.ProfessionalTax,
			OtherDeductions: in.Deductions.Other,
		},
		GrossSalary:     totals.GrossSalary,
		TotalDeductions: totals.TotalDeductions,
		NetSalary:       totals.NetSalary,
		NegativeNet:     totals.NegativeNet,
	}, nil)
}
