package metrics

import (
	"sort"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
)

// MonthlyTrend counts filtered orders per year-month, chronologically.
func MonthlyTrend(f domain.FilteredOrders) []domain.MonthlyCount {
	counts := lo.CountValuesBy(f.Orders, func(o domain.Order) domain.YearMonth {
		return o.Period
	})

	periods := maps.Keys(counts)
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	trend := make([]domain.MonthlyCount, 0, len(periods))
	for _, p := range periods {
		trend = append(trend, domain.MonthlyCount{Period: p, Orders: counts[p]})
	}
	return trend
}
