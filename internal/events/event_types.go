package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/frontdesk/visitor-register/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVisitorCheckedIn  EventType = "visitor_checked_in"
	EventVisitorCheckedOut EventType = "visitor_checked_out"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID           string              `json:"id"`
	Type         EventType           `json:"type"`
	TicketNumber string              `json:"ticket_number"`
	ActorUserID  *int64              `json:"actor_user_id,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
	Payload      VisitorEventPayload `json:"payload"`
}

// VisitorEventPayload carries what a host notification needs.
type VisitorEventPayload struct {
	FullName      string              `json:"full_name"`
	Purpose       domain.VisitPurpose `json:"purpose"`
	StaffMemberID int64               `json:"staff_member_id"`
	StaffName     string              `json:"staff_name"`
	Department    string              `json:"department"`
	CheckInTime   time.Time           `json:"check_in_time"`
	CheckOutTime  *time.Time          `json:"check_out_time,omitempty"`
}

// NewVisitorEvent builds an event for the visitor's current state.
func NewVisitorEvent(eventType EventType, visitor *domain.Visitor, actorUserID *int64) Event {
	payload := VisitorEventPayload{
		FullName:      visitor.FullName,
		Purpose:       visitor.Purpose,
		StaffMemberID: visitor.StaffMemberID,
		CheckInTime:   visitor.CheckInTime,
		CheckOutTime:  visitor.CheckOutTime,
	}
	if visitor.Staff != nil {
		payload.StaffName = visitor.Staff.Name
		payload.Department = visitor.Staff.Department
	}
	return Event{
		ID:           uuid.NewString(),
		Type:         eventType,
		TicketNumber: visitor.TicketNumber,
		ActorUserID:  actorUserID,
		Timestamp:    time.Now().UTC(),
		Payload:      payload,
	}
}
