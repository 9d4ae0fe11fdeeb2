package role

import "time"

// Role is a named shift template shared by several employees. Schedule maps
// a calendar day ("2006-01-02") to the template's UTC wall-clock times for
// that day; the map shape guarantees at most one entry per day regardless of
// how a store physically holds the collection.
type Role struct {
	ID                string
	Name              string
	Description       string
	Color             Color
	AssignedEmployees []string
	Schedule          map[string]DayTimes
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DayTimes are UTC wall-clock "HH:mm" strings. Both blank means the entry is
// semantically absent and must not be stored.
type DayTimes struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Blank reports whether the entry is semantically absent.
func (d DayTimes) Blank() bool {
	return d.StartTime == "" && d.EndTime == ""
}

type Color string

const (
	ColorSlate  Color = "slate"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorAmber  Color = "amber"
	ColorGreen  Color = "green"
	ColorTeal   Color = "teal"
	ColorBlue   Color = "blue"
	ColorViolet Color = "violet"
	ColorPink   Color = "pink"
)

var ColorValues = []string{
	string(ColorSlate),
	string(ColorRed),
	string(ColorOrange),
	string(ColorAmber),
	string(ColorGreen),
	string(ColorTeal),
	string(ColorBlue),
	string(ColorViolet),
	string(ColorPink),
}

const DayLayout = "2006-01-02"
