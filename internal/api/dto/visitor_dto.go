package dto

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// CheckInRequest payload. staffMemberId may arrive as a number or a string.
type CheckInRequest struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	GhanaCardNumber string `json:"ghanaCardNumber"`
	StaffMemberID   any    `json:"staffMemberId"`
	Purpose         string `json:"purpose"`
}

// StaffMemberIDString renders staffMemberId as received; absent or null becomes "".
func (r CheckInRequest) StaffMemberIDString() string {
	switch v := r.StaffMemberID.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// CheckOutRequest payload.
type CheckOutRequest struct {
	TicketNumber string `json:"ticketNumber"`
}

// VisitorDetail is returned by check-in and check-out.
type VisitorDetail struct {
	FullName        string  `json:"fullName"`
	Phone           string  `json:"phone"`
	GhanaCardNumber string  `json:"ghanaCardNumber"`
	StaffMember     string  `json:"staffMember"`
	Purpose         string  `json:"purpose"`
	CheckInTime     string  `json:"checkInTime"`
	CheckOutTime    *string `json:"checkOutTime,omitempty"`
	Status          string  `json:"status"`
}

// TicketResponse wraps a visitor with its ticket number.
type TicketResponse struct {
	TicketNumber string        `json:"ticketNumber"`
	Visitor      VisitorDetail `json:"visitor"`
}

// VisitorSummary is a row in the visitor list and latest check-ins.
type VisitorSummary struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	StaffMember  string `json:"staffMember"`
	Purpose      string `json:"purpose"`
	TicketNumber string `json:"ticketNumber"`
	CheckInTime  string `json:"checkInTime"`
	Status       string `json:"status"`
}

// CheckOutSummary is a row in latest check-outs.
type CheckOutSummary struct {
	VisitorSummary
	CheckOutTime *string `json:"checkOutTime"`
}

// VisitorLogEntry is a row in the visitor logs.
type VisitorLogEntry struct {
	ID              string  `json:"id"`
	FullName        string  `json:"fullName"`
	Phone           string  `json:"phone"`
	GhanaCardNumber string  `json:"ghanaCardNumber"`
	StaffMember     string  `json:"staffMember"`
	Purpose         string  `json:"purpose"`
	TicketNumber    string  `json:"ticketNumber"`
	CheckInTime     string  `json:"checkInTime"`
	CheckOutTime    *string `json:"checkOutTime"`
	Status          string  `json:"status"`
}

func formatTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(time.RFC3339)
}

func formatOptionalTime(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t, loc)
	return &s
}

// NewTicketResponse maps a visitor after check-in or check-out.
func NewTicketResponse(v *domain.Visitor, loc *time.Location) TicketResponse {
	return TicketResponse{
		TicketNumber: v.TicketNumber,
		Visitor: VisitorDetail{
			FullName:        v.FullName,
			Phone:           v.Phone,
			GhanaCardNumber: v.GhanaCardNumber,
			StaffMember:     domain.StaffLabel(v.Staff),
			Purpose:         string(v.Purpose),
			CheckInTime:     formatTime(v.CheckInTime, loc),
			CheckOutTime:    formatOptionalTime(v.CheckOutTime, loc),
			Status:          string(v.Status),
		},
	}
}

func newVisitorSummary(v domain.Visitor, loc *time.Location) VisitorSummary {
	return VisitorSummary{
		ID:           strconv.FormatInt(v.ID, 10),
		FullName:     v.FullName,
		Phone:        v.Phone,
		StaffMember:  domain.StaffLabel(v.Staff),
		Purpose:      string(v.Purpose),
		TicketNumber: v.TicketNumber,
		CheckInTime:  formatTime(v.CheckInTime, loc),
		Status:       string(v.Status),
	}
}

// NewVisitorSummaries maps list rows.
func NewVisitorSummaries(visitors []domain.Visitor, loc *time.Location) []VisitorSummary {
	out := make([]VisitorSummary, 0, len(visitors))
	for _, v := range visitors {
		out = append(out, newVisitorSummary(v, loc))
	}
	return out
}

// NewCheckOutSummaries maps latest check-out rows.
func NewCheckOutSummaries(visitors []domain.Visitor, loc *time.Location) []CheckOutSummary {
	out := make([]CheckOutSummary, 0, len(visitors))
	for _, v := range visitors {
		out = append(out, CheckOutSummary{
			VisitorSummary: newVisitorSummary(v, loc),
			CheckOutTime:   formatOptionalTime(v.CheckOutTime, loc),
		})
	}
	return out
}

// NewVisitorLogEntries maps log rows.
func NewVisitorLogEntries(visitors []domain.Visitor, loc *time.Location) []VisitorLogEntry {
	out := make([]VisitorLogEntry, 0, len(visitors))
	for _, v := range visitors {
		out = append(out, VisitorLogEntry{
			ID:              strconv.FormatInt(v.ID, 10),
			FullName:        v.FullName,
			Phone:           v.Phone,
			GhanaCardNumber: v.GhanaCardNumber,
			StaffMember:     domain.StaffLabel(v.Staff),
			Purpose:         string(v.Purpose),
			TicketNumber:    v.TicketNumber,
			CheckInTime:     formatTime(v.CheckInTime, loc),
			CheckOutTime:    formatOptionalTime(v.CheckOutTime, loc),
			Status:          string(v.Status),
		})
	}
	return out
}

// DepartmentVisitsResponse is one bar of the department chart.
type DepartmentVisitsResponse struct {
	Department string `json:"department"`
	Count      int64  `json:"count"`
}

// MonthlyVisitsResponse is one point of the monthly line.
type MonthlyVisitsResponse struct {
	Month     string `json:"month"`
	MonthName string `json:"monthName"`
	Count     int64  `json:"count"`
}

// StaffVisitsResponse ranks hosts.
type StaffVisitsResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	VisitCount int64  `json:"visitCount"`
}

// FrequentVisitorResponse ranks guests.
type FrequentVisitorResponse struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	VisitCount int64  `json:"visitCount"`
}

// AnalyticsResponse is the dashboard payload.
type AnalyticsResponse struct {
	DepartmentVisits     []DepartmentVisitsResponse `json:"departmentVisits"`
	MonthlyVisits        []MonthlyVisitsResponse    `json:"monthlyVisits"`
	MostVisitedStaff     []StaffVisitsResponse      `json:"mostVisitedStaff"`
	MostFrequentVisitors []FrequentVisitorResponse  `json:"mostFrequentVisitors"`
}

// NewAnalyticsResponse maps the aggregate.
func NewAnalyticsResponse(a *domain.Analytics) AnalyticsResponse {
	resp := AnalyticsResponse{
		DepartmentVisits:     make([]DepartmentVisitsResponse, 0, len(a.DepartmentVisits)),
		MonthlyVisits:        make([]MonthlyVisitsResponse, 0, len(a.MonthlyVisits)),
		MostVisitedStaff:     make([]StaffVisitsResponse, 0, len(a.MostVisitedStaff)),
		MostFrequentVisitors: make([]FrequentVisitorResponse, 0, len(a.MostFrequentVisitors)),
	}
	for _, d := range a.DepartmentVisits {
		resp.DepartmentVisits = append(resp.DepartmentVisits, DepartmentVisitsResponse{Department: d.Department, Count: d.Count})
	}
	for _, m := range a.MonthlyVisits {
		resp.MonthlyVisits = append(resp.MonthlyVisits, MonthlyVisitsResponse{Month: m.Month, MonthName: m.MonthName, Count: m.Count})
	}
	for _, s := range a.MostVisitedStaff {
		resp.MostVisitedStaff = append(resp.MostVisitedStaff, StaffVisitsResponse{ID: s.StaffID, Name: s.Name, Department: s.Department, VisitCount: s.VisitCount})
	}
	for _, f := range a.MostFrequentVisitors {
		resp.MostFrequentVisitors = append(resp.MostFrequentVisitors, FrequentVisitorResponse{FullName: f.FullName, Phone: f.Phone, VisitCount: f.VisitCount})
	}
	return resp
}
