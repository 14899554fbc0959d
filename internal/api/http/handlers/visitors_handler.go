package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/frontdesk/visitor-register/internal/api/dto"
	"github.com/frontdesk/visitor-register/internal/auth"
	"github.com/frontdesk/visitor-register/internal/domain"
	"github.com/frontdesk/visitor-register/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// VisitorsHandler exposes the register endpoints.
type VisitorsHandler struct {
	visitors *service.VisitorService
	export   *service.ExportService
}

// NewVisitorsHandler constructs handler.
func NewVisitorsHandler(visitors *service.VisitorService, export *service.ExportService) *VisitorsHandler {
	return &VisitorsHandler{visitors: visitors, export: export}
}

func actor(c *fiber.Ctx) *domain.User {
	if principal, ok := auth.PrincipalFromContext(c); ok {
		return principal.User
	}
	return nil
}

// CheckIn handles POST /api/v1/visitors/check-in.
func (h *VisitorsHandler) CheckIn(c *fiber.Ctx) error {
	var req dto.CheckInRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	visitor, err := h.visitors.CheckIn(c.UserContext(), actor(c), service.CheckInInput{
		FullName:        param(c, req.FullName, "fullName"),
		Phone:           param(c, req.Phone, "phone"),
		GhanaCardNumber: param(c, req.GhanaCardNumber, "ghanaCardNumber"),
		StaffMemberID:   param(c, req.StaffMemberIDString(), "staffMemberId"),
		Purpose:         param(c, req.Purpose, "purpose"),
	})
	if err != nil {
		return err
	}
	return respond(c, "Check-in successful", dto.NewTicketResponse(visitor, h.visitors.Location()))
}

// CheckOut handles POST /api/v1/visitors/checkout.
func (h *VisitorsHandler) CheckOut(c *fiber.Ctx) error {
	var req dto.CheckOutRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	visitor, err := h.visitors.CheckOut(c.UserContext(), actor(c), param(c, req.TicketNumber, "ticketNumber"))
	if err != nil {
		return err
	}
	return respond(c, "Check-out successful", dto.NewTicketResponse(visitor, h.visitors.Location()))
}

// List handles GET /api/v1/visitors.
func (h *VisitorsHandler) List(c *fiber.Ctx) error {
	page, err := h.visitors.List(c.UserContext(), c.QueryInt("page", 1), c.Query("ticketNumber"))
	if err != nil {
		return err
	}
	return respondPage(c, "Success", dto.NewVisitorSummaries(page.Visitors, h.visitors.Location()), page.Pagination)
}

// Logs handles GET /api/v1/visitors/logs.
func (h *VisitorsHandler) Logs(c *fiber.Ctx) error {
	page, err := h.visitors.Logs(c.UserContext(), c.QueryInt("page", 1), c.Query("ticketNumber"), c.Query("timePeriod"))
	if err != nil {
		return err
	}
	return respondPage(c, "Success", dto.NewVisitorLogEntries(page.Visitors, h.visitors.Location()), page.Pagination)
}

// ExportLogs handles GET /api/v1/visitors/logs/export.
func (h *VisitorsHandler) ExportLogs(c *fiber.Ctx) error {
	buf, filename, err := h.export.ExportVisitorLogs(c.UserContext(), c.Query("ticketNumber"), c.Query("timePeriod"))
	if err != nil {
		return err
	}
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

// LatestCheckIns handles GET /api/v1/visitors/check-ins/latest.
func (h *VisitorsHandler) LatestCheckIns(c *fiber.Ctx) error {
	visitors, err := h.visitors.LatestCheckIns(c.UserContext(), c.Query("limit"))
	if err != nil {
		return err
	}
	return respond(c, "Success", dto.NewVisitorSummaries(visitors, h.visitors.Location()))
}

// LatestCheckOuts handles GET /api/v1/visitors/check-outs/latest.
func (h *VisitorsHandler) LatestCheckOuts(c *fiber.Ctx) error {
	visitors, err := h.visitors.LatestCheckOuts(c.UserContext(), c.Query("limit"))
	if err != nil {
		return err
	}
	return respond(c, "Success", dto.NewCheckOutSummaries(visitors, h.visitors.Location()))
}

// Analytics handles GET /api/v1/visitors/analytics.
func (h *VisitorsHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.visitors.Analytics(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, "Success", dto.NewAnalyticsResponse(analytics))
}
