package models

import "time"

// RangeWindow is the resolved, inclusive date range an overview was computed
// over.
type RangeWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MonthlyStat aggregates one calendar month, labelled "YYYY-MM".
type MonthlyStat struct {
	Month      string  `json:"month"`
	Total      float64 `json:"total"`
	ItemsCount int     `json:"itemsCount"`
}

// CategoryStat aggregates spending for one item category.
type CategoryStat struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	ItemsCount int     `json:"itemsCount"`
}

// WeekdayStat aggregates purchase totals for one day of the week.
type WeekdayStat struct {
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
}

// BrandStat aggregates spending for one brand.
type BrandStat struct {
	Brand string  `json:"brand"`
	Total float64 `json:"total"`
}

// MonthComparison compares the last month of the monthly series against the
// one before it.
type MonthComparison struct {
	CurrentMonth     string  `json:"currentMonth"`
	CurrentTotal     float64 `json:"currentTotal"`
	PreviousMonth    string  `json:"previousMonth"`
	PreviousTotal    float64 `json:"previousTotal"`
	PercentageChange float64 `json:"percentageChange"`
}

// AnalyticsOverview is the composite result for one user and one range.
type AnalyticsOverview struct {
	Range              RangeWindow     `json:"range"`
	Monthly            []MonthlyStat   `json:"monthly"`
	Categories         []CategoryStat  `json:"categories"`
	Weekdays           []WeekdayStat   `json:"weekdays"`
	Brands             []BrandStat     `json:"brands"`
	MonthOverMonth     MonthComparison `json:"monthOverMonth"`
	AvgDaysBetween     float64         `json:"avgDaysBetweenPurchases"`
	ProjectedThisMonth int             `json:"projectedThisMonth"`
}
