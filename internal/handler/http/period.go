package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/shiftwise/roster-backend-go/internal/handler/http/response"
	"github.com/shiftwise/roster-backend-go/internal/pkg/period"
	"github.com/shiftwise/roster-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type PeriodHandler interface {
	GetPeriod(w http.ResponseWriter, r *http.Request)
}

type periodHandlerImpl struct {
	// defaultWeekStart applies when the request carries no week_start.
	defaultWeekStart time.Weekday
}

func NewPeriodHandler(defaultWeekStart time.Weekday) PeriodHandler {
	return &periodHandlerImpl{
		defaultWeekStart: defaultWeekStart,
	}
}

type PeriodRangeResponse struct {
	Start       string `json:"start"`
	End         string `json:"end"`
	Granularity string `json:"granularity"`
	Length      int    `json:"length"`
}

type PeriodResponse struct {
	Current  PeriodRangeResponse `json:"current"`
	Previous PeriodRangeResponse `json:"previous"`
	Next     PeriodRangeResponse `json:"next"`
}

func toRangeResponse(r period.Range) PeriodRangeResponse {
	return PeriodRangeResponse{
		Start:       r.Start.Format(dateLayout),
		End:         r.End.Format(dateLayout),
		Granularity: string(r.Granularity),
		Length:      r.Length(),
	}
}

// GetPeriod implements PeriodHandler. Monthly navigation follows the rolling
// four-week window; a calendar month is available via style=calendar.
func (h *periodHandlerImpl) GetPeriod(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	var errs validator.ValidationErrors

	ref := time.Now().UTC()
	if refStr := params.Get("reference"); refStr != "" {
		parsed, ok := validator.IsValidDate(refStr)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "reference",
				Message: "reference must be in YYYY-MM-DD format",
			})
		} else {
			ref = parsed
		}
	}

	granularity := params.Get("granularity")
	if granularity == "" {
		granularity = string(period.GranularityWeek)
	}
	if !validator.IsInSlice(granularity, period.GranularityValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "granularity",
			Message: "granularity must be one of: " + strings.Join(period.GranularityValues, ", "),
		})
	}

	weekStart := h.defaultWeekStart
	if wsStr := params.Get("week_start"); wsStr != "" {
		parsed, ok := parseWeekday(wsStr)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "week_start",
				Message: "week_start must be a day name, e.g. Monday",
			})
		} else {
			weekStart = parsed
		}
	}

	style := params.Get("style")
	if style != "" && style != "rolling" && style != "calendar" {
		errs = append(errs, validator.ValidationError{
			Field:   "style",
			Message: "style must be rolling or calendar",
		})
	}

	if len(errs) > 0 {
		response.ValidationError(w, errs.ToMap())
		return
	}

	var current period.Range
	if granularity == string(period.GranularityMonth) && style == "calendar" {
		current = period.CalendarMonth(ref)
	} else {
		current = period.Compute(ref, period.Granularity(granularity), weekStart)
	}

	response.Success(w, PeriodResponse{
		Current:  toRangeResponse(current),
		Previous: toRangeResponse(period.Previous(current)),
		Next:     toRangeResponse(period.Next(current)),
	})
}

func parseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, true
		}
	}
	return 0, false
}
