package domain

import "time"

// VisitorStatus enumerates the visit lifecycle.
type VisitorStatus string

const (
	VisitorStatusCheckedIn  VisitorStatus = "checked_in"
	VisitorStatusCheckedOut VisitorStatus = "checked_out"
)

// VisitPurpose is the declared reason for a visit.
type VisitPurpose string

const (
	PurposeMeeting      VisitPurpose = "Meeting"
	PurposeInterview    VisitPurpose = "Interview"
	PurposeDelivery     VisitPurpose = "Delivery"
	PurposeMaintenance  VisitPurpose = "Maintenance"
	PurposeConsultation VisitPurpose = "Consultation"
	PurposeTraining     VisitPurpose = "Training"
	PurposeOther        VisitPurpose = "Other"
)

// VisitPurposes lists accepted purposes in display order.
var VisitPurposes = []VisitPurpose{
	PurposeMeeting,
	PurposeInterview,
	PurposeDelivery,
	PurposeMaintenance,
	PurposeConsultation,
	PurposeTraining,
	PurposeOther,
}

// Valid reports whether p is one of VisitPurposes.
func (p VisitPurpose) Valid() bool {
	for _, candidate := range VisitPurposes {
		if p == candidate {
			return true
		}
	}
	return false
}

// Visitor is a single logged visit.
type Visitor struct {
	ID              int64
	TicketNumber    string
	FullName        string
	Phone           string
	GhanaCardNumber string
	StaffMemberID   int64
	// Staff is populated by queries that join the staff directory.
	Staff        *StaffMember
	Purpose      VisitPurpose
	CheckInTime  time.Time
	CheckOutTime *time.Time
	Status       VisitorStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
