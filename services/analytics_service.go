package services

import (
	"context"
	"sync"
	"time"

	"purchase-service/models"
	"purchase-service/repository"

	"go.uber.org/zap"
)

// AnalyticsFilters is the optional date range for an overview. Ordering
// (from <= to) is enforced by the caller layer before it reaches here.
type AnalyticsFilters struct {
	From *time.Time
	To   *time.Time
}

// AnalyticsService derives spending statistics over a user's purchase
// history. It only ever reads; purchases are immutable.
type AnalyticsService struct {
	repo   repository.PurchaseRepo
	logger *zap.Logger
	now    func() time.Time
}

func NewAnalyticsService(repo repository.PurchaseRepo, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, logger: logger, now: time.Now}
}

// resolveRange normalizes the requested window: "to" defaults to now and is
// pushed to end-of-day, "from" defaults to the first day of the month five
// months before "to" and is pulled to start-of-day.
func (s *AnalyticsService) resolveRange(filters AnalyticsFilters) models.RangeWindow {
	to := s.now()
	if filters.To != nil {
		to = *filters.To
	}
	to = endOfDay(to)

	var from time.Time
	if filters.From != nil {
		from = *filters.From
	} else {
		from = time.Date(to.Year(), to.Month()-5, 1, 0, 0, 0, 0, to.Location())
	}
	from = startOfDay(from)

	return models.RangeWindow{From: from, To: to}
}

// GetOverview computes all views over the purchases in range. The full
// document fetch and the bare created_at scan are independent and run
// concurrently; every view is a pure function of what they return, so an
// empty range yields well-formed zero-valued views rather than an error.
func (s *AnalyticsService) GetOverview(ctx context.Context, userID string, filters AnalyticsFilters) (*models.AnalyticsOverview, error) {
	window := s.resolveRange(filters)

	var (
		purchases    []models.Purchase
		createdAts   []time.Time
		purchasesErr error
		createdErr   error
		wg           sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		purchases, purchasesErr = s.repo.FindInRange(ctx, userID, window.From, window.To)
	}()
	go func() {
		defer wg.Done()
		createdAts, createdErr = s.repo.CreatedAtInRange(ctx, userID, window.From, window.To)
	}()
	wg.Wait()

	if purchasesErr != nil {
		return nil, purchasesErr
	}
	if createdErr != nil {
		return nil, createdErr
	}

	monthly := monthlySeries(purchases)

	overview := &models.AnalyticsOverview{
		Range:              window,
		Monthly:            monthly,
		Categories:         categoryBreakdown(purchases),
		Weekdays:           weekdayBreakdown(purchases),
		Brands:             brandBreakdown(purchases),
		MonthOverMonth:     monthOverMonth(monthly),
		AvgDaysBetween:     purchaseFrequency(createdAts),
		ProjectedThisMonth: projectCurrentMonth(monthly, s.now()),
	}

	s.logger.Debug("Analytics overview computed",
		zap.String("user_id", userID),
		zap.Int("purchases", len(purchases)),
		zap.Time("from", window.From),
		zap.Time("to", window.To),
	)
	return overview, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}
