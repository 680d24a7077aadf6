package domain

import "github.com/shopspring/decimal"

// MonthlyCount is one point of the monthly trend, ordered by Period.
type MonthlyCount struct {
	Period YearMonth
	Orders int
}

// CategoryCount counts sold items per product category. An empty Category
// is the bucket for items whose product has no category label.
type CategoryCount struct {
	Category string
	Count    int
}

// PricePoint is a single item-level (price, freight) observation.
type PricePoint struct {
	Price   float64
	Freight float64
}

// CorrelationResult holds the Pearson coefficient between item price and
// freight value. Coefficient is NaN when fewer than two observations exist
// or either column has zero variance; callers must handle that, it is not
// an error.
type CorrelationResult struct {
	Coefficient float64
	Points      []PricePoint
}

type PaymentTypeCount struct {
	Type  string
	Count int
}

// RFMRecord scores one customer on days since last order, order count and
// total spend within the filtered population.
type RFMRecord struct {
	CustomerID  string
	RecencyDays int
	Frequency   int
	Monetary    decimal.Decimal
}

// Summary holds the headline metrics of a filtered order set.
type Summary struct {
	TotalOrders      int
	AvgItemPrice     float64
	AvgFreightValue  float64
	DeliveredPercent float64
}
