package employee

import "time"

// Employee carries the organizational fields the approval chain needs.
type Employee struct {
	ID            string
	FullName      string
	Email         string
	Role          string
	DepartmentID  *string
	PositionLevel int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     *time.Time
}

// Department is a node in the org tree. HeadID is the department head who
// acts as supervisor for its members.
type Department struct {
	ID        string
	Name      string
	ParentID  *string
	HeadID    *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsRoot reports whether the department has no parent.
func (d Department) IsRoot() bool {
	return d.ParentID == nil
}
