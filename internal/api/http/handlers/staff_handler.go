package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/api/dto"
	"github.com/frontdesk/visitor-register/internal/service"
	"github.com/frontdesk/visitor-register/pkg/util/errorutil"
)

// StaffHandler exposes the staff directory.
type StaffHandler struct {
	staff *service.StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staff: staffService}
}

// List handles GET /api/v1/staff-members.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	staff, err := h.staff.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, "Staff members retrieved successfully", dto.NewStaffResponses(staff))
}

// Create handles POST /api/v1/staff-members.
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var req dto.StaffCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewBadRequest("invalid payload")
	}

	member, err := h.staff.Create(c.UserContext(), req.Name, req.Department)
	if err != nil {
		return err
	}
	return respond(c, "Staff member created successfully", dto.StaffResponse{
		ID:         member.ID,
		Name:       member.Name,
		Department: member.Department,
	})
}
