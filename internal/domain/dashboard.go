package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerSummary contains the aggregated financial metrics for one owner
type LedgerSummary struct {
	TotalIncome         decimal.Decimal `json:"totalIncome"`
	TotalExpenses       decimal.Decimal `json:"totalExpenses"`
	NetProfit           decimal.Decimal `json:"netProfit"`
	ProfitMarginPercent int             `json:"profitMarginPercent"`
	ExpenseCount        int             `json:"expenseCount"`
	IncomeCount         int             `json:"incomeCount"`
}

type SoilHealthStatus string

const (
	SoilStatusExcellent        SoilHealthStatus = "excellent"
	SoilStatusGood             SoilHealthStatus = "good"
	SoilStatusNeedsImprovement SoilHealthStatus = "needs-improvement"
	SoilStatusNoData           SoilHealthStatus = "no-data"
)

type BadgeLevel string

const (
	BadgeOptimal BadgeLevel = "optimal"
	BadgeAdjust  BadgeLevel = "adjust"
	BadgeGood    BadgeLevel = "good"
	BadgeLow     BadgeLevel = "low"
	BadgeMonitor BadgeLevel = "monitor"
)

// NutrientBadges holds the per-nutrient display badges derived from
// the latest soil test. They are independent of the score bands.
type NutrientBadges struct {
	PH            BadgeLevel `json:"ph"`
	Nitrogen      BadgeLevel `json:"nitrogen"`
	OrganicMatter BadgeLevel `json:"organicMatter"`
	Moisture      BadgeLevel `json:"moisture"`
}

// SoilHealthResult is the computed soil health summary. When no soil
// test exists the sentinel result is returned: score 0, status
// "no-data", nil badges.
type SoilHealthResult struct {
	Score    int              `json:"score"`
	Status   SoilHealthStatus `json:"status"`
	Badges   *NutrientBadges  `json:"badges,omitempty"`
	TestDate *time.Time       `json:"testDate,omitempty"`
}

// DashboardViewModel combines the computed summaries with the record
// lists the dashboard binds to
type DashboardViewModel struct {
	Ledger         LedgerSummary    `json:"ledger"`
	Soil           SoilHealthResult `json:"soil"`
	CropPlans      []*CropPlan      `json:"cropPlans"`
	RecentExpenses []*ExpenseRecord `json:"recentExpenses"`
	RecentIncomes  []*IncomeRecord  `json:"recentIncomes"`
}
