package services

import (
	"math"
	"sort"
	"time"

	"purchase-service/models"
)

// Sentinel buckets for items recorded without a category or brand.
const (
	uncategorized = "Uncategorized"
	noBrand       = "No brand"
)

const topBrands = 10

func monthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// monthlySeries groups purchases by calendar month, summing purchase totals
// and item quantities, sorted ascending by "YYYY-MM" label.
func monthlySeries(purchases []models.Purchase) []models.MonthlyStat {
	byMonth := make(map[string]*models.MonthlyStat)
	for _, p := range purchases {
		label := monthLabel(p.CreatedAt)
		stat, ok := byMonth[label]
		if !ok {
			stat = &models.MonthlyStat{Month: label}
			byMonth[label] = stat
		}
		stat.Total += p.Total
		for _, item := range p.Items {
			stat.ItemsCount += item.Quantity
		}
	}

	series := make([]models.MonthlyStat, 0, len(byMonth))
	for _, stat := range byMonth {
		series = append(series, *stat)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}

// categoryBreakdown flattens all items and groups spending by category,
// sorted descending by total.
func categoryBreakdown(purchases []models.Purchase) []models.CategoryStat {
	byCategory := make(map[string]*models.CategoryStat)
	for _, p := range purchases {
		for _, item := range p.Items {
			category := item.Category
			if category == "" {
				category = uncategorized
			}
			stat, ok := byCategory[category]
			if !ok {
				stat = &models.CategoryStat{Category: category}
				byCategory[category] = stat
			}
			stat.Total += item.UnitPriceAtPurchase * float64(item.Quantity)
			stat.ItemsCount += item.Quantity
		}
	}

	stats := make([]models.CategoryStat, 0, len(byCategory))
	for _, stat := range byCategory {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Category < stats[j].Category
	})
	return stats
}

// weekdayBreakdown groups purchase totals by the weekday of created_at,
// sorted descending by total.
func weekdayBreakdown(purchases []models.Purchase) []models.WeekdayStat {
	byWeekday := make(map[string]float64)
	for _, p := range purchases {
		byWeekday[p.CreatedAt.Weekday().String()] += p.Total
	}

	stats := make([]models.WeekdayStat, 0, len(byWeekday))
	for weekday, total := range byWeekday {
		stats = append(stats, models.WeekdayStat{Weekday: weekday, Total: total})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Weekday < stats[j].Weekday
	})
	return stats
}

// brandBreakdown flattens all items, groups spending by brand and keeps the
// top spenders.
func brandBreakdown(purchases []models.Purchase) []models.BrandStat {
	byBrand := make(map[string]float64)
	for _, p := range purchases {
		for _, item := range p.Items {
			brand := item.Brand
			if brand == "" {
				brand = noBrand
			}
			byBrand[brand] += item.UnitPriceAtPurchase * float64(item.Quantity)
		}
	}

	stats := make([]models.BrandStat, 0, len(byBrand))
	for brand, total := range byBrand {
		stats = append(stats, models.BrandStat{Brand: brand, Total: total})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Brand < stats[j].Brand
	})
	if len(stats) > topBrands {
		stats = stats[:topBrands]
	}
	return stats
}

// monthOverMonth compares the last month of the series against the one
// before it. A jump from zero to anything counts as a 100% increase.
func monthOverMonth(monthly []models.MonthlyStat) models.MonthComparison {
	var comparison models.MonthComparison
	if len(monthly) == 0 {
		return comparison
	}

	current := monthly[len(monthly)-1]
	comparison.CurrentMonth = current.Month
	comparison.CurrentTotal = current.Total

	var previous models.MonthlyStat
	if len(monthly) > 1 {
		previous = monthly[len(monthly)-2]
	}
	comparison.PreviousMonth = previous.Month
	comparison.PreviousTotal = previous.Total

	switch {
	case previous.Total == 0 && current.Total > 0:
		comparison.PercentageChange = 100
	case previous.Total == 0:
		comparison.PercentageChange = 0
	default:
		comparison.PercentageChange = (current.Total - previous.Total) / previous.Total * 100
	}
	return comparison
}

// purchaseFrequency averages the whole-day gaps between consecutive
// purchases. Timestamps arrive sorted ascending; each gap is rounded up to
// whole days before averaging. Fewer than two purchases yields 0.
func purchaseFrequency(createdAts []time.Time) float64 {
	if len(createdAts) < 2 {
		return 0
	}

	const dayMillis = 24 * 60 * 60 * 1000
	var totalDays float64
	for i := 1; i < len(createdAts); i++ {
		gap := createdAts[i].Sub(createdAts[i-1]).Milliseconds()
		if gap < 0 {
			gap = -gap
		}
		totalDays += math.Ceil(float64(gap) / dayMillis)
	}
	return totalDays / float64(len(createdAts)-1)
}

// projectCurrentMonth extrapolates the current month's spend from its
// month-to-date total. Only meaningful while the last month of the series is
// the real current calendar month; otherwise 0.
func projectCurrentMonth(monthly []models.MonthlyStat, now time.Time) int {
	if len(monthly) == 0 {
		return 0
	}
	last := monthly[len(monthly)-1]
	if last.Month != monthLabel(now) {
		return 0
	}

	dayOfMonth := now.Day()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	return int(math.Round(last.Total / float64(dayOfMonth) * float64(daysInMonth)))
}
