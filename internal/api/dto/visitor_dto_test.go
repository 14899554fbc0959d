package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frontdesk/visitor-register/internal/domain"
)

func TestVisitorRowsWithoutStaff(t *testing.T) {
	accra := time.FixedZone("GMT+1", 3600)
	checkIn := time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC)
	visitor := domain.Visitor{
		ID:           7,
		TicketNumber: "VIS-20260311-00007",
		FullName:     "Ama Owusu",
		CheckInTime:  checkIn,
		Status:       domain.VisitorStatusCheckedIn,
	}

	ticket := NewTicketResponse(&visitor, accra)
	assert.Equal(t, "Unknown - Unknown", ticket.Visitor.StaffMember)
	assert.Equal(t, "2026-03-11T10:00:00+01:00", ticket.Visitor.CheckInTime)
	assert.Nil(t, ticket.Visitor.CheckOutTime)

	rows := NewVisitorLogEntries([]domain.Visitor{visitor}, time.UTC)
	require.Len(t, rows, 1)
	assert.Equal(t, "7", rows[0].ID)
	assert.Equal(t, "Unknown - Unknown", rows[0].StaffMember)
}

func TestStaffMemberIDString(t *testing.T) {
	cases := map[string]CheckInRequest{
		"":      {},
		"3":     {StaffMemberID: float64(3)},
		"1.5":   {StaffMemberID: 1.5},
		"12":    {StaffMemberID: " 12 "},
		"12abc": {StaffMemberID: "12abc"},
	}
	for want, req := range cases {
		assert.Equal(t, want, req.StaffMemberIDString())
	}
}
