package domain

// EnforceRequest is shared by the rbac service and the HTTP middleware so that
// neither package imports the other.
type EnforceRequest struct {
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
}
