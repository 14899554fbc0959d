package domain

// DepartmentVisits counts visits hosted by a department.
type DepartmentVisits struct {
	Department string
	Count      int64
}

// MonthlyVisits counts check-ins in a calendar month.
type MonthlyVisits struct {
	Month     string // YYYY-MM
	MonthName string // January 2026
	Count     int64
}

// StaffVisits counts visits hosted by one staff member.
type StaffVisits struct {
	StaffID    int64
	Name       string
	Department string
	VisitCount int64
}

// FrequentVisitor groups visits by visitor name and phone.
type FrequentVisitor struct {
	FullName   string
	Phone      string
	VisitCount int64
}

// Analytics is the dashboard aggregate.
type Analytics struct {
	DepartmentVisits     []DepartmentVisits
	MonthlyVisits        []MonthlyVisits
	MostVisitedStaff     []StaffVisits
	MostFrequentVisitors []FrequentVisitor
}
