// Package filter restricts the order table to the selected year and state.
// Its output is the single source of truth for "in scope": calculators
// never re-apply these filters.
package filter

import (
	"fmt"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/samber/lo"
)

// AllStates is the sentinel meaning no state restriction.
const AllStates = ""

// InvalidFilterError signals a year or state outside the dataset's known
// domain. Callers only offer valid choices, but the engine still validates.
type InvalidFilterError struct {
	Field string
	Value string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid %s filter %q", e.Field, e.Value)
}

// Apply restricts orders to the given year, then, unless state is
// AllStates, inner-joins against customers and keeps rows whose customer
// state matches. Orders with no matching customer record drop out of the
// joined set; an empty result is valid.
func Apply(ds *domain.Dataset, year int, state string) (domain.FilteredOrders, error) {
	if !ds.HasYear(year) {
		return domain.FilteredOrders{}, &InvalidFilterError{Field: "year", Value: fmt.Sprintf("%d", year)}
	}
	if state != AllStates && !ds.HasState(state) {
		return domain.FilteredOrders{}, &InvalidFilterError{Field: "state", Value: state}
	}

	byYear := lo.Filter(ds.Orders, func(o domain.Order, _ int) bool {
		return o.Year == year
	})

	if state == AllStates {
		return domain.FilteredOrders{Year: year, Orders: byYear}, nil
	}

	byState := lo.Filter(byYear, func(o domain.Order, _ int) bool {
		s, ok := ds.StateByCustomerID[o.CustomerID]
		return ok && s == state
	})

	return domain.FilteredOrders{Year: year, State: state, Orders: byState}, nil
}
