package analytics

import (
	"context"
	"time"

	"github.com/imrishuroy/go-commerce-api/internal/apperr"
	"github.com/imrishuroy/go-commerce-api/internal/orders"
)

// OrderSource supplies (createdAt, totalAmount) pairs for a time range.
type OrderSource interface {
	TotalsBetween(ctx context.Context, start, end time.Time) ([]orders.Total, error)
}

// Bucket is one point of the sales series. The Sales key is capitalized in
// JSON because chart consumers bind to it by that name.
type Bucket struct {
	Name  string  `json:"name"`
	Sales float64 `json:"Sales"`
}

// Report is the sales-analytics response payload.
type Report struct {
	Data        []Bucket `json:"data"`
	TotalAmount float64  `json:"totalAmount"`
}

// Service aggregates order totals into date-bucketed sales series.
type Service struct {
	orders  OrderSource
	nowFunc func() time.Time
}

// NewService creates an analytics Service over an order source.
func NewService(source OrderSource) *Service {
	return &Service{
		orders:  source,
		nowFunc: time.Now,
	}
}

// Sales computes the series for a named filter. The series always has a fixed
// cardinality per filter kind (1 for day filters, 7 for week, days-in-month
// for month, 12 for year); buckets with no orders report zero.
func (s *Service) Sales(ctx context.Context, filter string) (*Report, error) {
	if filter == "" {
		return nil, apperr.New(apperr.KindInvalidInput, "Filter is required.")
	}

	w := ComputeWindow(filter, s.nowFunc())
	totals, err := s.orders.TotalsBetween(ctx, w.Start, w.End)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	buckets := bucketize(filter, w, totals)

	var totalAmount float64
	for _, b := range buckets {
		totalAmount += b.Sales
	}
	return &Report{Data: buckets, TotalAmount: totalAmount}, nil
}

func bucketize(filter string, w Window, totals []orders.Total) []Bucket {
	switch filter {
	case FilterToday, FilterYesterday:
		var sum float64
		for _, t := range totals {
			sum += t.Amount
		}
		return []Bucket{{Name: capitalize(filter), Sales: sum}}

	case FilterWeek, FilterLastWeek:
		buckets := make([]Bucket, 7)
		for i := range buckets {
			buckets[i].Name = w.Start.AddDate(0, 0, i).Format("Mon")
		}
		for _, t := range totals {
			idx := daysBetween(w.Start, t.CreatedAt)
			if idx >= 0 && idx < 7 {
				buckets[idx].Sales += t.Amount
			}
		}
		return buckets

	case FilterMonth, FilterLastMonth:
		n := daysIn(w.Start)
		buckets := make([]Bucket, n)
		for i := range buckets {
			buckets[i].Name = w.Start.AddDate(0, 0, i).Format("2")
		}
		for _, t := range totals {
			day := t.CreatedAt.In(w.Start.Location()).Day()
			if day >= 1 && day <= n {
				buckets[day-1].Sales += t.Amount
			}
		}
		return buckets

	case FilterYear, FilterLastYear:
		buckets := make([]Bucket, 12)
		for i := range buckets {
			buckets[i].Name = time.Month(i + 1).String()[:3]
		}
		for _, t := range totals {
			m := int(t.CreatedAt.In(w.Start.Location()).Month())
			buckets[m-1].Sales += t.Amount
		}
		return buckets

	default:
		var sum float64
		for _, t := range totals {
			sum += t.Amount
		}
		return []Bucket{{Name: "All", Sales: sum}}
	}
}

// daysBetween counts whole local days from start to t.
func daysBetween(start, t time.Time) int {
	t = t.In(start.Location())
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, start.Location())
	return int(day.Sub(start).Hours() / 24)
}
