package aggregate

import (
	"context"
	"math"
	"time"
)

// Reader is the ledger tally surface aggregation derives from.
type Reader interface {
	DayCounts(ctx context.Context, day time.Time) (present, total int, err error)
	RangeCounts(ctx context.Context, start, end time.Time) ([]DayCount, error)
	BranchCounts(ctx context.Context, start, end time.Time) ([]BranchCount, error)
	DaysInWindow(ctx context.Context, start, end time.Time) (int, error)
}

// Roster supplies the enrolled-student total for roster-complete percentages.
type Roster interface {
	Count(ctx context.Context) (int, error)
}

// DailyCache is an optional short-TTL cache for daily aggregates. Both
// methods are best effort.
type DailyCache interface {
	GetDaily(ctx context.Context, day time.Time, mode Mode) (*Daily, bool)
	SetDaily(ctx context.Context, day time.Time, mode Mode, d Daily)
}

// Service derives daily, range and branch statistics from the ledger.
type Service struct {
	reader Reader
	roster Roster
	cache  DailyCache
}

// NewService creates an aggregation service. cache may be nil.
func NewService(reader Reader, roster Roster, cache DailyCache) *Service {
	return &Service{reader: reader, roster: roster, cache: cache}
}

// Daily computes the aggregate for one day. Under ModeLedgerOnly the total is
// the recorded row count; under ModeRosterComplete it is the enrolled-student
// count, with unrecorded students defaulted to absent. An empty day yields
// percentage 0.
func (s *Service) Daily(ctx context.Context, day time.Time, mode Mode) (Daily, error) {
	if s.cache != nil {
		if d, ok := s.cache.GetDaily(ctx, day, mode); ok {
			return *d, nil
		}
	}

	present, total, err := s.reader.DayCounts(ctx, day)
	if err != nil {
		return Daily{}, err
	}

	d := Daily{Date: day.Format("2006-01-02"), Present: present}
	switch mode {
	case ModeRosterComplete:
		enrolled, err := s.roster.Count(ctx)
		if err != nil {
			return Daily{}, err
		}
		d.Total = enrolled
		d.Absent = enrolled - present
		d.Percentage = percentage(present, enrolled)
	default:
		d.Total = total
		d.Absent = total - present
		d.Percentage = percentage(present, total)
	}

	if s.cache != nil {
		s.cache.SetDaily(ctx, day, mode, d)
	}
	return d, nil
}

// Range computes one ledger-only aggregate per date carrying records in
// [start, end], in the requested date order. Empty windows return an empty
// slice.
func (s *Service) Range(ctx context.Context, start, end time.Time, order Order) ([]Daily, error) {
	counts, err := s.reader.RangeCounts(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]Daily, 0, len(counts))
	for _, dc := range counts {
		res = append(res, Daily{
			Date:       dc.Day.Format("2006-01-02"),
			Present:    dc.Present,
			Absent:     dc.Total - dc.Present,
			Total:      dc.Total,
			Percentage: percentage(dc.Present, dc.Total),
		})
	}
	if order == OrderDesc {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res, nil
}

// Branches computes the per-branch rollup over [start, end]. The denominator
// is enrolled-students x days-with-records, reproduced as-is from the
// dashboard this service replaces.
func (s *Service) Branches(ctx context.Context, start, end time.Time) ([]Branch, error) {
	days, err := s.reader.DaysInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	counts, err := s.reader.BranchCounts(ctx, start, end)
	if err != nil {
		return nil, err
	}
	res := make([]Branch, 0, len(counts))
	for _, bc := range counts {
		res = append(res, Branch{
			Branch:        bc.Branch,
			TotalStudents: bc.Students,
			Present:       bc.Present,
			Percentage:    percentage(bc.Present, bc.Students*days),
		})
	}
	return res, nil
}

// Overall computes the window-level stats card: totals, the overall rate,
// the mean of the daily rates, and the best and worst days.
func (s *Service) Overall(ctx context.Context, start, end time.Time) (Overall, error) {
	days, err := s.Range(ctx, start, end, OrderAsc)
	if err != nil {
		return Overall{}, err
	}

	var o Overall
	pctSum := 0
	for i := range days {
		d := &days[i]
		o.TotalRecords += d.Total
		o.Present += d.Present
		o.Absent += d.Absent
		pctSum += d.Percentage
		if o.BestDay == nil || d.Percentage > o.BestDay.Percentage {
			o.BestDay = d
		}
		if o.WorstDay == nil || d.Percentage < o.WorstDay.Percentage {
			o.WorstDay = d
		}
	}
	o.OverallPercentage = percentage(o.Present, o.TotalRecords)
	if len(days) > 0 {
		o.AverageDaily = int(math.Round(float64(pctSum) / float64(len(days))))
	}
	return o, nil
}

// percentage rounds half away from zero; a zero or negative denominator
// yields 0 rather than an error.
func percentage(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(present) / float64(total) * 100))
}
