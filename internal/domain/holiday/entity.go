package holiday

import "time"

type Type string

const (
	TypeNational        Type = "NATIONAL"
	TypeCompany         Type = "COMPANY"
	TypeCollectiveLeave Type = "COLLECTIVE_LEAVE"
)

// Holiday is a calendar entry that can block attendance unless the
// employee's shift pattern overrides that category.
type Holiday struct {
	ID        string
	Name      string
	Date      time.Time
	Type      Type
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
