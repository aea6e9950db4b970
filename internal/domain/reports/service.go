package reports

import (
	"context"
	"fmt"
	"time"

	"stockmaster/internal/core/tx"
)

// DefaultRecentLimit is the number of sales listed on the dashboard.
const DefaultRecentLimit = 5

// Service provides report generation operations.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager
	now       func() time.Time
}

// NewService creates a new reports service. txManager may be nil, in which
// case the dashboard queries run without a shared snapshot.
func NewService(repo Repository, txManager tx.ReadOnlyManager, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, txManager: txManager, now: now}
}

// WeeklySummary aggregates the sales of the 7 days ending at now.
func (s *Service) WeeklySummary(ctx context.Context, now time.Time) (Totals, error) {
	totals, err := s.repo.SalesTotals(ctx, LastWeek(now))
	if err != nil {
		return Totals{}, fmt.Errorf("weekly summary: %w", err)
	}
	return totals, nil
}

// RecentSales lists the newest sales. A non-positive limit uses DefaultRecentLimit.
func (s *Service) RecentSales(ctx context.Context, limit int) ([]RecentSale, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	items, err := s.repo.RecentSales(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	return items, nil
}

// Dashboard builds the home page data as of the injected clock.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.now().UTC()
	d := &Dashboard{GeneratedAt: now}

	build := func(ctx context.Context) error {
		var err error
		if d.Weekly, err = s.WeeklySummary(ctx, now); err != nil {
			return err
		}
		d.RecentSales, err = s.RecentSales(ctx, DefaultRecentLimit)
		return err
	}

	var err error
	if s.txManager != nil {
		err = s.txManager.ReadOnly(ctx, build)
	} else {
		err = build(ctx)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}
