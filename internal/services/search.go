package services

import (
	"errors"
	"regexp"
	"strings"

	"infobus/internal/models"
)

// Day selectors accepted by the advanced search.
const (
	DayWeekday  = "weekday"
	DaySaturday = "saturday"
	DaySunday   = "sunday"
)

// ErrBadDayFilter rejects a day/time pair that is missing one half, uses
// an unknown day selector, or carries a malformed time.
var ErrBadDayFilter = errors.New("day filter needs a known day selector and an HH:MM time")

var timeOfDay = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// SearchFilter feeds the two set-intersection searches. Nil or empty
// fields impose no constraint.
type SearchFilter struct {
	Streets  []string `json:"streets"`
	Weekday  []string `json:"weekday"`
	Saturday []string `json:"saturday"`
	Sunday   []string `json:"sunday"`
}

// AdvancedSearchFilter combines independent predicates; all supplied
// ones must hold. Day and Time only apply together.
type AdvancedSearchFilter struct {
	City         string   `json:"city"`
	OperatorName string   `json:"operator_name"`
	Streets      []string `json:"streets"`
	Day          string   `json:"day"`
	Time         string   `json:"time"`
}

// SearchAny matches routes that intersect the supplied values in every
// supplied field. Note the per-field test is intersection ("any of the
// values present"), not containment of the whole value set; that is the
// behavior clients depend on.
func (s *RouteService) SearchAny(f SearchFilter) ([]models.Route, error) {
	return s.store.FindByFilter(func(r *models.Route) bool {
		if len(f.Streets) > 0 && !intersects(r.Streets, f.Streets) {
			return false
		}
		if len(f.Weekday) > 0 && !intersects(r.WeekdaySchedule, f.Weekday) {
			return false
		}
		if len(f.Saturday) > 0 && !intersects(r.SaturdaySchedule, f.Saturday) {
			return false
		}
		if len(f.Sunday) > 0 && !intersects(r.SundaySchedule, f.Sunday) {
			return false
		}
		return true
	})
}

// SearchOr matches routes that intersect the supplied values in at least
// one of the four fields.
func (s *RouteService) SearchOr(f SearchFilter) ([]models.Route, error) {
	return s.store.FindByFilter(func(r *models.Route) bool {
		return intersects(r.Streets, f.Streets) ||
			intersects(r.WeekdaySchedule, f.Weekday) ||
			intersects(r.SaturdaySchedule, f.Saturday) ||
			intersects(r.SundaySchedule, f.Sunday)
	})
}

// SearchAdvanced applies the combinable case-insensitive predicates:
// exact city, operator substring, all-streets substring, and a schedule
// cutoff ("at least one departure at or after Time on Day").
func (s *RouteService) SearchAdvanced(f AdvancedSearchFilter) ([]models.Route, error) {
	hasDay := f.Day != ""
	hasTime := f.Time != ""
	if hasDay != hasTime {
		return nil, ErrBadDayFilter
	}
	if hasTime && !timeOfDay.MatchString(f.Time) {
		return nil, ErrBadDayFilter
	}
	if hasDay {
		switch f.Day {
		case DayWeekday, DaySaturday, DaySunday:
		default:
			return nil, ErrBadDayFilter
		}
	}

	return s.store.FindByFilter(func(r *models.Route) bool {
		if f.City != "" && !strings.EqualFold(r.OperatingCity, f.City) {
			return false
		}
		if f.OperatorName != "" && !containsFold(r.OperatorName, f.OperatorName) {
			return false
		}
		// Every requested street must appear somewhere on the route; this
		// is the one field where "all must match" really means all.
		for _, want := range f.Streets {
			if !anyStreetContains(r.Streets, want) {
				return false
			}
		}
		if hasDay && !departsAtOrAfter(scheduleFor(r, f.Day), f.Time) {
			return false
		}
		return true
	})
}

func scheduleFor(r *models.Route, day string) []string {
	switch day {
	case DaySaturday:
		return r.SaturdaySchedule
	case DaySunday:
		return r.SundaySchedule
	default:
		return r.WeekdaySchedule
	}
}

// departsAtOrAfter reports whether some departure is at or after the
// cutoff. Zero-padded HH:MM strings compare lexicographically in
// chronological order, so plain string comparison is correct.
func departsAtOrAfter(departures []string, cutoff string) bool {
	for _, d := range departures {
		if d >= cutoff {
			return true
		}
	}
	return false
}

func intersects(have []string, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func anyStreetContains(streets []string, want string) bool {
	for _, s := range streets {
		if containsFold(s, want) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
