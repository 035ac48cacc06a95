package employee

import (
	"strings"
	"time"
)

// Employee is a care worker. FirstName doubles as the prefer name typed into
// rosters; Level is the award level printed on payroll sheets.
type Employee struct {
	ID         string
	EmployeeID string
	FirstName  string
	LastName   string
	Level      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
