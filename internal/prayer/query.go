package prayer

import (
	"fmt"
	"sort"
	"time"
)

// Query selects which interval, relative to the one containing the current
// instant, a classification returns.
type Query int

const (
	// QueryNow is the interval containing the instant.
	QueryNow Query = iota
	// QueryNext is the one after it.
	QueryNext
	// QueryLater is two after it.
	QueryLater
	// QueryAfterLater is three after it.
	QueryAfterLater
)

func (q Query) String() string {
	switch q {
	case QueryNow:
		return "now"
	case QueryNext:
		return "next"
	case QueryLater:
		return "later"
	case QueryAfterLater:
		return "after-later"
	default:
		return fmt.Sprintf("Query(%d)", int(q))
	}
}

// Queries lists every query in offset order.
func Queries() []Query {
	return []Query{QueryNow, QueryNext, QueryLater, QueryAfterLater}
}

// ParseQuery resolves a query name such as "after-later".
func ParseQuery(s string) (Query, error) {
	for _, q := range Queries() {
		if q.String() == s {
			return q, nil
		}
	}
	return QueryNow, fmt.Errorf("unknown query %q: must be now, next, later or after-later", s)
}

// Schedule is a chronological sequence of prayer boundaries, usually
// spanning several consecutive days.
type Schedule []Prayer

// NewSchedule concatenates the boundaries of consecutive days.
func NewSchedule(days ...Prayers) Schedule {
	s := make(Schedule, 0, len(days)*len(typeNames))
	for _, d := range days {
		s = append(s, d.Boundaries()...)
	}
	return s
}

// Active returns the index of the last boundary at or before now, or -1
// when now precedes the whole schedule. A boundary equal to now is active.
func (s Schedule) Active(now time.Time) int {
	return sort.Search(len(s), func(i int) bool { return s[i].Time.After(now) }) - 1
}

// Classify returns the prayer q intervals after the one containing the
// clock's current instant. The schedule covers the day before, the day of,
// and the day after the instant's UTC calendar date.
func Classify(q Query, s *Settings, c Geocoordinate, utcOffset float64, clock Clock) (Prayer, error) {
	if q < QueryNow || q > QueryAfterLater {
		return Prayer{}, fmt.Errorf("unknown query %v", q)
	}

	now := clockOrSystem(clock).Now()
	sched, err := scheduleAround(now, s, c, utcOffset)
	if err != nil {
		return Prayer{}, err
	}

	i := sched.Active(now)
	if i < 0 {
		i = 0
	}
	i += int(q)
	if i >= len(sched) {
		return Prayer{}, fmt.Errorf("no %v prayer within the computed range", q)
	}
	return sched[i], nil
}

// CurrentPrayer returns the prayer whose interval contains the clock's
// current instant.
func CurrentPrayer(s *Settings, c Geocoordinate, utcOffset float64, clock Clock) (Prayer, error) {
	return Classify(QueryNow, s, c, utcOffset, clock)
}

// NextPrayer returns the prayer following the current one.
func NextPrayer(s *Settings, c Geocoordinate, utcOffset float64, clock Clock) (Prayer, error) {
	return Classify(QueryNext, s, c, utcOffset, clock)
}

// LaterPrayer returns the prayer two intervals after the current one.
func LaterPrayer(s *Settings, c Geocoordinate, utcOffset float64, clock Clock) (Prayer, error) {
	return Classify(QueryLater, s, c, utcOffset, clock)
}

// AfterLaterPrayer returns the prayer three intervals after the current one.
func AfterLaterPrayer(s *Settings, c Geocoordinate, utcOffset float64, clock Clock) (Prayer, error) {
	return Classify(QueryAfterLater, s, c, utcOffset, clock)
}

func scheduleAround(now time.Time, s *Settings, c Geocoordinate, utcOffset float64) (Schedule, error) {
	u := now.UTC()
	days := make([]Prayers, 0, 3)
	for _, offset := range []int{-1, 0, 1} {
		d, err := ComputeDay(u.AddDate(0, 0, offset), s, c, utcOffset)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return NewSchedule(days...), nil
}
