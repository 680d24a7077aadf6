package metrics

import (
	"sort"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"golang.org/x/exp/maps"
)

// PaymentDistribution counts payment records per payment type across the
// filtered orders. An order with several payment records (split payment)
// contributes one count per record. Percentages are left to consumers.
// The result is sorted by count descending for deterministic output.
func PaymentDistribution(ds *domain.Dataset, f domain.FilteredOrders) []domain.PaymentTypeCount {
	counts := map[string]int{}
	for _, o := range f.Orders {
		for _, p := range ds.PaymentsByOrderID[o.ID] {
			counts[p.Type]++
		}
	}

	types := maps.Keys(counts)
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	distribution := make([]domain.PaymentTypeCount, 0, len(types))
	for _, t := range types {
		distribution = append(distribution, domain.PaymentTypeCount{Type: t, Count: counts[t]})
	}
	return distribution
}
