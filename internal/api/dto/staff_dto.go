package dto

import "github.com/frontdesk/visitor-register/internal/domain"

// StaffCreateRequest payload for adding a staff member.
type StaffCreateRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

// StaffResponse is a directory entry.
type StaffResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// NewStaffResponses maps directory rows.
func NewStaffResponses(staff []domain.StaffMember) []StaffResponse {
	out := make([]StaffResponse, 0, len(staff))
	for _, s := range staff {
		out = append(out, StaffResponse{ID: s.ID, Name: s.Name, Department: s.Department})
	}
	return out
}
