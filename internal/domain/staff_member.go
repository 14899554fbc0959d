package domain

import "time"

// StaffMember is a host that visitors come to see.
type StaffMember struct {
	ID         int64
	Name       string
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StaffLabel renders "Name - Department", falling back to "Unknown - Unknown".
func StaffLabel(staff *StaffMember) string {
	if staff == nil {
		return "Unknown - Unknown"
	}
	return staff.Name + " - " + staff.Department
}
