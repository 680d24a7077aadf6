package metrics

import (
	"sort"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/samber/lo"
	"golang.org/x/exp/maps"
)

// CategoryBreakdown joins order items to the filtered orders (one row per
// item), attaches the product category and counts items per category,
// descending. Items whose product is unknown or uncategorized fall into
// the empty-category bucket. The result is cut to the configured top N.
func CategoryBreakdown(ds *domain.Dataset, f domain.FilteredOrders, settings Settings) []domain.CategoryCount {
	ids := f.IDSet()
	inScope := lo.Filter(ds.Items, func(it domain.OrderItem, _ int) bool {
		_, ok := ids[it.OrderID]
		return ok
	})

	counts := lo.CountValuesBy(inScope, func(it domain.OrderItem) string {
		return ds.CategoryByProductID[it.ProductID]
	})

	categories := maps.Keys(counts)
	sort.Slice(categories, func(i, j int) bool {
		if counts[categories[i]] != counts[categories[j]] {
			return counts[categories[i]] > counts[categories[j]]
		}
		return categories[i] < categories[j]
	})

	topN := settings.TopCategories
	if len(categories) < topN {
		topN = len(categories)
	}

	breakdown := make([]domain.CategoryCount, 0, topN)
	for _, c := range categories[:topN] {
		breakdown = append(breakdown, domain.CategoryCount{Category: c, Count: counts[c]})
	}
	return breakdown
}
