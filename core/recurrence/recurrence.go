package recurrence

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	"go-events-api/core/errors"
)

type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

type MonthlyMode string

const (
	// MonthlyByDate fires on a fixed day of the month.
	MonthlyByDate MonthlyMode = "date"
	// MonthlyByWeekday fires on the Nth weekday of the month.
	MonthlyByWeekday MonthlyMode = "weekday"
)

type EndMode string

const (
	EndNever EndMode = "never"
	EndCount EndMode = "count"
	EndUntil EndMode = "until"
)

// Spec is the structured recurrence input collected from the event form.
type Spec struct {
	Freq     Frequency
	Interval int

	// Weekly: selected weekdays. Empty defaults to the anchor's weekday.
	Weekdays []time.Weekday

	// Monthly options.
	MonthlyMode    MonthlyMode
	MonthDay       int          // MonthlyByDate: 1..31
	Ordinal        int          // MonthlyByWeekday: 1..4, or -1 for last
	OrdinalWeekday time.Weekday // MonthlyByWeekday

	TimeOfDay string // "HH:mm" local wall-clock time

	EndMode EndMode
	Count   int    // EndCount
	Until   string // EndUntil: "YYYY-MM-DD", end-of-day inclusive in Zone

	Zone string // IANA zone the schedule is defined in
}

// Rule wraps a parsed recurrence set whose canonical string carries its own
// DTSTART, so enumeration is a pure function of the string.
type Rule struct {
	set *rrule.Set
	str string
}

var weekdayMap = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

var freqMap = map[Frequency]rrule.Frequency{
	Daily:   rrule.DAILY,
	Weekly:  rrule.WEEKLY,
	Monthly: rrule.MONTHLY,
}

// Build derives a canonical rule from spec, anchored to now. The seed is the
// first candidate matching the time of day (and month day, for
// monthly-by-date) in the target zone; the final DTSTART is re-anchored to
// the first actual computed occurrence so the stored rule is reproducible.
func Build(spec Spec, now time.Time) (*Rule, error) {
	if spec.Interval < 1 {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
			fmt.Sprintf("interval must be >= 1, got %d", spec.Interval), nil)
	}
	freq, ok := freqMap[spec.Freq]
	if !ok {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
			"unsupported frequency: "+string(spec.Freq), nil)
	}

	loc, err := time.LoadLocation(spec.Zone)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "unknown time zone: "+spec.Zone, err)
	}

	hour, minute, err := parseTimeOfDay(spec.TimeOfDay)
	if err != nil {
		return nil, err
	}

	local := now.In(loc)
	seedDay := local.Day()
	if spec.Freq == Monthly && spec.MonthlyMode == MonthlyByDate {
		if spec.MonthDay < 1 || spec.MonthDay > 31 {
			return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
				fmt.Sprintf("day of month must be 1..31, got %d", spec.MonthDay), nil)
		}
		seedDay = spec.MonthDay
	}
	seed := time.Date(local.Year(), local.Month(), seedDay, hour, minute, 0, 0, loc).UTC()

	opt := rrule.ROption{
		Freq:     freq,
		Interval: spec.Interval,
		Dtstart:  seed,
	}

	switch spec.Freq {
	case Weekly:
		if len(spec.Weekdays) > 0 {
			for _, wd := range spec.Weekdays {
				opt.Byweekday = append(opt.Byweekday, weekdayMap[wd])
			}
		} else {
			opt.Byweekday = []rrule.Weekday{weekdayMap[seed.In(loc).Weekday()]}
		}
	case Monthly:
		switch spec.MonthlyMode {
		case MonthlyByDate:
			opt.Bymonthday = []int{spec.MonthDay}
		case MonthlyByWeekday:
			if spec.Ordinal < -1 || spec.Ordinal == 0 || spec.Ordinal > 4 {
				return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
					fmt.Sprintf("ordinal must be 1..4 or -1, got %d", spec.Ordinal), nil)
			}
			wd := weekdayMap[spec.OrdinalWeekday]
			opt.Byweekday = []rrule.Weekday{wd.Nth(spec.Ordinal)}
		default:
			return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
				"monthly recurrence requires a day-of-month or ordinal weekday", nil)
		}
	}

	switch spec.EndMode {
	case EndCount:
		if spec.Count < 1 {
			return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
				fmt.Sprintf("count must be >= 1, got %d", spec.Count), nil)
		}
		opt.Count = spec.Count
	case EndUntil:
		day, err := time.ParseInLocation("2006-01-02", spec.Until, loc)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "invalid until date: "+spec.Until, err)
		}
		// End of day, inclusive, in the rule's own zone.
		opt.Until = time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc).UTC()
	case EndNever, "":
	default:
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
			"unsupported end mode: "+string(spec.EndMode), nil)
	}

	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "invalid recurrence options", err)
	}

	// Re-anchor DTSTART at the first real occurrence at or after the seed.
	first := r.After(seed, true)
	if first.IsZero() {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence,
			"recurrence yields no occurrences", nil)
	}
	opt.Dtstart = first
	r, err = rrule.NewRRule(opt)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "invalid recurrence options", err)
	}

	set := &rrule.Set{}
	set.RRule(r)
	set.DTStart(first)
	return &Rule{set: set, str: set.String()}, nil
}

// Parse reads a canonical rule string (DTSTART line plus RRULE line) back
// into a Rule. A bare RRULE without DTSTART is accepted for tolerance but
// enumerates from the rrule library's default anchor.
func Parse(s string) (*Rule, error) {
	if strings.TrimSpace(s) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "empty recurrence rule", nil)
	}
	set, err := rrule.StrToRRuleSet(s)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "invalid recurrence rule: "+s, err)
	}
	if set.GetRRule() == nil {
		return nil, errors.NewAppError(errors.ErrInvalidRecurrence, "recurrence rule has no RRULE: "+s, nil)
	}
	return &Rule{set: set, str: set.String()}, nil
}

// String returns the canonical serialized form.
func (r *Rule) String() string { return r.str }

// DTStart returns the rule's anchor, i.e. its first occurrence.
func (r *Rule) DTStart() time.Time { return r.set.GetDTStart() }

// Options exposes the parsed rule options, mainly for round-trip checks.
func (r *Rule) Options() rrule.ROption { return r.set.GetRRule().OrigOptions }

// OccurrencesFrom returns up to count occurrences strictly after the given
// instant. Bounded rules may return fewer than count.
func (r *Rule) OccurrencesFrom(after time.Time, count int) []time.Time {
	out := make([]time.Time, 0, count)
	cur := after
	for len(out) < count {
		t := r.set.After(cur, false)
		if t.IsZero() {
			break
		}
		out = append(out, t)
		cur = t
	}
	return out
}

// NextAfter returns the first occurrence strictly after the given instant,
// or false when a bounded rule has passed its end.
func (r *Rule) NextAfter(after time.Time) (time.Time, bool) {
	t := r.set.After(after, false)
	if t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// OccurrencesFrom enumerates occurrences of a serialized rule. Pure function
// of its inputs: the same rule string and instant always yield the same
// sequence.
func OccurrencesFrom(ruleStr string, after time.Time, count int) ([]time.Time, error) {
	r, err := Parse(ruleStr)
	if err != nil {
		return nil, err
	}
	return r.OccurrencesFrom(after, count), nil
}

// NextOccurrenceAfter returns the next occurrence of a serialized rule
// strictly after the given instant.
func NextOccurrenceAfter(ruleStr string, after time.Time) (time.Time, bool, error) {
	r, err := Parse(ruleStr)
	if err != nil {
		return time.Time{}, false, err
	}
	t, ok := r.NextAfter(after)
	return t, ok, nil
}

func parseTimeOfDay(s string) (int, int, error) {
	if s == "" {
		return 12, 0, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, errors.NewAppError(errors.ErrInvalidRecurrence, "invalid time of day: "+s, err)
	}
	return t.Hour(), t.Minute(), nil
}
