// Package timecodec converts stored UTC wall-clock times to and from a
// viewer's local representation. Stored times are "HH:mm" strings with no
// instant semantics; they only become an instant once combined with the
// shift's anchor date and a zone, which happens here and nowhere else.
package timecodec

import "time"

// Placeholder is returned for malformed or missing input. The codec sits on
// render paths and must never fail them.
const Placeholder = "--:--"

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

type Codec struct {
	// Fallback is used when a viewer supplies an unknown zone identifier.
	Fallback *time.Location
}

func New(fallback *time.Location) *Codec {
	if fallback == nil {
		fallback = time.Local
	}
	return &Codec{Fallback: fallback}
}

func (c *Codec) location(zone string) *time.Location {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		return c.Fallback
	}
	return loc
}

// ToLocal interprets utcTime on anchorDate as a UTC instant and formats it
// in the viewer's zone. utcTime is "HH:mm", anchorDate is "YYYY-MM-DD".
func (c *Codec) ToLocal(utcTime, anchorDate, zone string) string {
	d, err := time.Parse(dateLayout, anchorDate)
	if err != nil {
		return Placeholder
	}
	tod, err := time.Parse(timeLayout, utcTime)
	if err != nil {
		return Placeholder
	}
	instant := time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC)
	return instant.In(c.location(zone)).Format(timeLayout)
}

// ToUTC is the inverse: localTime on anchorDate in the viewer's zone,
// rendered as a UTC wall-clock string.
func (c *Codec) ToUTC(localTime, anchorDate, zone string) string {
	d, err := time.Parse(dateLayout, anchorDate)
	if err != nil {
		return Placeholder
	}
	tod, err := time.Parse(timeLayout, localTime)
	if err != nil {
		return Placeholder
	}
	instant := time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, c.location(zone))
	return instant.UTC().Format(timeLayout)
}
