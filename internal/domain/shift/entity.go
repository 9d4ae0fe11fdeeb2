package shift

import "time"

// Shift is a single employee's assignment on one business day. Date is the
// calendar day the shift belongs to, independent of the zone a viewer reads
// it in; it is never derived from StartTime. StartTime and EndTime are UTC
// wall-clock "HH:mm" strings and carry no instant semantics of their own.
type Shift struct {
	ID         string
	EmployeeID string
	RoleID     *string
	Date       time.Time
	StartTime  string
	EndTime    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const DateLayout = "2006-01-02"
