package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// YearMonth is a calendar period token derived from the purchase timestamp.
type YearMonth struct {
	Year  int
	Month time.Month
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Order is a single row of the orders table. Year, Month and Period are
// derived from PurchasedAt once at load time and never recomputed.
type Order struct {
	ID          string
	CustomerID  string
	Status      string
	PurchasedAt time.Time
	Year        int
	Month       time.Month
	Period      YearMonth
}

type OrderItem struct {
	OrderID      string
	ProductID    string
	Price        float64
	FreightValue float64
}

// Payment is one payment record; an order may carry several (split payment).
type Payment struct {
	OrderID string
	Type    string
	Value   decimal.Decimal
}

// Product carries the category label; CategoryName is empty when the source
// has no category for the product.
type Product struct {
	ID           string
	CategoryName string
}

type Customer struct {
	ID    string
	State string
}

// Dataset is the immutable five-table snapshot plus the join indexes and
// filter domains derived once at load time.
type Dataset struct {
	Orders    []Order
	Items     []OrderItem
	Payments  []Payment
	Products  []Product
	Customers []Customer

	// StateByCustomerID and CategoryByProductID back the customer and
	// product joins; PaymentsByOrderID backs the payment joins.
	StateByCustomerID   map[string]string
	CategoryByProductID map[string]string
	PaymentsByOrderID   map[string][]Payment

	// Years and States are the valid filter domains, sorted ascending.
	Years  []int
	States []string

	// ReferenceDate is the maximum purchase timestamp across the whole
	// unfiltered order table. Recency is always measured against it,
	// independent of the selected filters.
	ReferenceDate time.Time
}

// NewDataset derives indexes, filter domains and the reference date from the
// raw tables. The tables must not be mutated afterwards.
func NewDataset(orders []Order, items []OrderItem, payments []Payment, products []Product, customers []Customer) *Dataset {
	ds := &Dataset{
		Orders:              orders,
		Items:               items,
		Payments:            payments,
		Products:            products,
		Customers:           customers,
		StateByCustomerID:   make(map[string]string, len(customers)),
		CategoryByProductID: make(map[string]string, len(products)),
		PaymentsByOrderID:   make(map[string][]Payment, len(payments)),
	}

	for _, c := range customers {
		ds.StateByCustomerID[c.ID] = c.State
	}
	for _, p := range products {
		ds.CategoryByProductID[p.ID] = p.CategoryName
	}
	for _, p := range payments {
		ds.PaymentsByOrderID[p.OrderID] = append(ds.PaymentsByOrderID[p.OrderID], p)
	}

	years := map[int]struct{}{}
	for _, o := range orders {
		years[o.Year] = struct{}{}
		if o.PurchasedAt.After(ds.ReferenceDate) {
			ds.ReferenceDate = o.PurchasedAt
		}
	}
	for y := range years {
		ds.Years = append(ds.Years, y)
	}
	sort.Ints(ds.Years)

	// A blank state is not a selectable filter value; it would collide
	// with the empty-string "all states" sentinel.
	states := map[string]struct{}{}
	for _, c := range customers {
		if c.State == "" {
			continue
		}
		states[c.State] = struct{}{}
	}
	for s := range states {
		ds.States = append(ds.States, s)
	}
	sort.Strings(ds.States)

	return ds
}

// HasYear reports whether year is in the dataset's filter domain.
func (ds *Dataset) HasYear(year int) bool {
	for _, y := range ds.Years {
		if y == year {
			return true
		}
	}
	return false
}

// HasState reports whether state is in the dataset's filter domain.
func (ds *Dataset) HasState(state string) bool {
	for _, s := range ds.States {
		if s == state {
			return true
		}
	}
	return false
}

// FilteredOrders is the single source of truth for "in scope": every
// calculator consumes it as-is and never re-applies the year/state filter.
type FilteredOrders struct {
	Year   int
	State  string // empty means no state restriction
	Orders []Order
}

// IDSet returns the order ids of the filtered set for join lookups.
func (f FilteredOrders) IDSet() map[string]struct{} {
	ids := make(map[string]struct{}, len(f.Orders))
	for _, o := range f.Orders {
		ids[o.ID] = struct{}{}
	}
	return ids
}
