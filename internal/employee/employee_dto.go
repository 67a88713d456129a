package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number"`
	Phone          string `json:"phone"`
	PAN            string `json:"pan"`
	Designation    string `json:"designation"`
	JoinDate       string `json:"join_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	EmployeeNumber string `json:"employee_number" binding:"required"`
	Phone          string `json:"phone"`
	PAN            string `json:"pan"`
	Designation    string `json:"designation"`
	JoinDate       string `json:"join_date" binding:"required"`
	IsActive       *bool  `json:"is_active"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	CompanyID      string `json:"company_id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	PAN            string `json:"pan,omitempty"`
	Designation    string `json:"designation,omitempty"`
	JoinDate       string `json:"join_date"`
	IsActive       bool   `json:"is_active"`
}
