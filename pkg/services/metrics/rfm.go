package metrics

import (
	"sort"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

type rfmAccumulator struct {
	lastPurchase time.Time
	orderIDs     map[string]struct{}
	monetary     decimal.Decimal
}

// RFM scores every customer present in the filtered order set. Recency is
// measured in whole days against the dataset's global reference date (the
// maximum purchase timestamp of the unfiltered order table), so it is
// independent of the selected year/state. Frequency counts distinct
// in-scope orders. Monetary sums the payment values of the customer's
// in-scope orders; orders with no payment record contribute zero.
// Customers with no in-scope orders do not appear.
func RFM(ds *domain.Dataset, f domain.FilteredOrders) []domain.RFMRecord {
	acc := map[string]*rfmAccumulator{}
	for _, o := range f.Orders {
		a, ok := acc[o.CustomerID]
		if !ok {
			a = &rfmAccumulator{
				orderIDs: map[string]struct{}{},
				monetary: decimal.Zero,
			}
			acc[o.CustomerID] = a
		}

		if o.PurchasedAt.After(a.lastPurchase) {
			a.lastPurchase = o.PurchasedAt
		}
		if _, seen := a.orderIDs[o.ID]; seen {
			continue
		}
		a.orderIDs[o.ID] = struct{}{}
		for _, p := range ds.PaymentsByOrderID[o.ID] {
			a.monetary = a.monetary.Add(p.Value)
		}
	}

	records := make([]domain.RFMRecord, 0, len(acc))
	for customerID, a := range acc {
		records = append(records, domain.RFMRecord{
			CustomerID:  customerID,
			RecencyDays: wholeDays(ds.ReferenceDate.Sub(a.lastPurchase)),
			Frequency:   len(a.orderIDs),
			Monetary:    a.monetary,
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].CustomerID < records[j].CustomerID })
	return records
}

// wholeDays truncates a non-negative duration to whole days.
func wholeDays(d time.Duration) int {
	return int(d / (24 * time.Hour))
}
