package metrics

import (
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/samber/lo"
)

const statusDelivered = "delivered"

// Summarize computes the headline metrics of a filtered order set: order
// count, mean item price and freight across in-scope items, and the share
// of delivered orders. Empty inputs yield zeroes.
func Summarize(ds *domain.Dataset, f domain.FilteredOrders) domain.Summary {
	s := domain.Summary{TotalOrders: len(f.Orders)}

	ids := f.IDSet()
	inScope := lo.Filter(ds.Items, func(it domain.OrderItem, _ int) bool {
		_, ok := ids[it.OrderID]
		return ok
	})

	if len(inScope) > 0 {
		var priceSum, freightSum float64
		for _, it := range inScope {
			priceSum += it.Price
			freightSum += it.FreightValue
		}
		s.AvgItemPrice = priceSum / float64(len(inScope))
		s.AvgFreightValue = freightSum / float64(len(inScope))
	}

	if len(f.Orders) > 0 {
		delivered := lo.CountBy(f.Orders, func(o domain.Order) bool {
			return o.Status == statusDelivered
		})
		s.DeliveredPercent = float64(delivered) / float64(len(f.Orders)) * 100
	}

	return s
}
