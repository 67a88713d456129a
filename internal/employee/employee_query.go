package employee

import (
	"sort"
	"strings"

	"go-taxdesk/internal/shared/response"
)

// EmployeeListQuery is the query string accepted by GET /employees. Search
// matches name, email, employee number and PAN.
type EmployeeListQuery struct {
	Q        string `form:"q"`
	Active   *bool  `form:"active"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=name number email join_date id"`
	SortDir  string `form:"sort_dir" binding:"omitempty,oneof=asc desc"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q EmployeeListQuery) apply(list []EmployeeResponse) ([]EmployeeResponse, response.PaginationMeta) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PageSize == 0 {
		q.PageSize = 10
	}

	needle := strings.ToLower(strings.TrimSpace(q.Q))
	out := make([]EmployeeResponse, 0, len(list))
	for _, e := range list {
		if q.Active != nil && e.IsActive != *q.Active {
			continue
		}
		if needle != "" && !matches(e, needle) {
			continue
		}
		out = append(out, e)
	}

	key := sortKey(q.SortBy)
	sort.SliceStable(out, func(i, j int) bool {
		if q.SortDir == "desc" {
			return key(out[j]) < key(out[i])
		}
		return key(out[i]) < key(out[j])
	})

	start := min((q.Page-1)*q.PageSize, len(out))
	end := min(start+q.PageSize, len(out))
	return out[start:end], response.NewPaginationMeta(int64(len(out)), q.Page, q.PageSize)
}

func matches(e EmployeeResponse, needle string) bool {
	for _, field := range []string{e.FullName, e.Email, e.EmployeeNumber, e.PAN} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortKey(by string) func(EmployeeResponse) string {
	switch by {
	case "number":
		return func(e EmployeeResponse) string { return e.EmployeeNumber }
	case "email":
		return func(e EmployeeResponse) string { return strings.ToLower(e.Email) }
	case "join_date":
		return func(e EmployeeResponse) string { return e.JoinDate }
	case "id":
		return func(e EmployeeResponse) string { return e.ID }
	default:
		return func(e EmployeeResponse) string { return strings.ToLower(e.FullName) }
	}
}
