package timecodec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToLocal_Auckland(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	// June is NZST (UTC+12): a 09:00 UTC shift reads 21:00 the same day in Auckland.
	assert.Equal(t, "21:00", c.ToLocal("09:00", "2024-06-04", "Pacific/Auckland"))
	assert.Equal(t, "05:00", c.ToLocal("17:00", "2024-06-04", "Pacific/Auckland"))
}

func TestToUTC_Auckland(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	assert.Equal(t, "09:00", c.ToUTC("21:00", "2024-06-04", "Pacific/Auckland"))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	zones := []string{"Pacific/Auckland", "America/New_York", "Europe/Berlin", "Asia/Kolkata", "UTC"}
	times := []string{"00:00", "06:30", "12:00", "17:45", "23:59"}
	for _, z := range zones {
		for _, local := range times {
			got := c.ToLocal(c.ToUTC(local, "2024-06-04", z), "2024-06-04", z)
			assert.Equal(t, local, got, "zone %s time %s", z, local)
		}
	}
}

func TestMalformedInput_Placeholder(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	assert.Equal(t, Placeholder, c.ToLocal("", "2024-06-04", "UTC"))
	assert.Equal(t, Placeholder, c.ToLocal("9am", "2024-06-04", "UTC"))
	assert.Equal(t, Placeholder, c.ToLocal("09:00", "junk", "UTC"))
	assert.Equal(t, Placeholder, c.ToUTC("25:99", "2024-06-04", "UTC"))
	assert.Equal(t, Placeholder, c.ToUTC("09:00", "", "UTC"))
}

func TestUnknownZone_FallsBack(t *testing.T) {
	t.Parallel()

	c := New(time.UTC)
	// Unknown zone behaves like the fallback, not like an error.
	assert.Equal(t, "09:00", c.ToLocal("09:00", "2024-06-04", "Mars/Olympus"))
	assert.Equal(t, "09:00", c.ToUTC("09:00", "2024-06-04", ""))
}
