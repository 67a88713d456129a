package client

type CreateClientRequest struct {
	Name         string       `json:"name" binding:"required,max=255"`
	ContactName  string       `json:"contact_name" binding:"omitempty,max=255"`
	Email        string       `json:"email" binding:"omitempty,email"`
	Phone        string       `json:"phone" binding:"omitempty,max=30"`
	PAN          string       `json:"pan"`
	GSTIN        string       `json:"gstin"`
	BusinessType BusinessType `json:"business_type"`
	Address      string       `json:"address"`
}

type UpdateClientRequest struct {
	Name         string       `json:"name" binding:"required,max=255"`
	ContactName  string       `json:"contact_name" binding:"omitempty,max=255"`
	Email        string       `json:"email" binding:"omitempty,email"`
	Phone        string       `json:"phone" binding:"omitempty,max=30"`
	PAN          string       `json:"pan"`
	GSTIN        string       `json:"gstin"`
	BusinessType BusinessType `json:"business_type"`
	Address      string       `json:"address"`
	IsActive     *bool        `json:"is_active"`
}

type ClientResponse struct {
	ID           string       `json:"id"`
	CompanyID    string       `json:"company_id"`
	Name         string       `json:"name"`
	ContactName  string       `json:"contact_name,omitempty"`
	Email        string       `json:"email,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	PAN          string       `json:"pan,omitempty"`
	GSTIN        string       `json:"gstin,omitempty"`
	BusinessType BusinessType `json:"business_type"`
	Address      string       `json:"address,omitempty"`
	StateCode    string       `json:"state_code,omitempty"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}
