package api

import "time"

// DatasetStatus describes the currently active snapshot.
type DatasetStatus struct {
	Loaded        bool      `json:"loaded"`
	Orders        int       `json:"orders"`
	OrderItems    int       `json:"order_items"`
	Payments      int       `json:"payments"`
	Products      int       `json:"products"`
	Customers     int       `json:"customers"`
	ReferenceDate time.Time `json:"reference_date,omitzero"`
}

// FilterDomains lists the valid choices for the year and state filters.
type FilterDomains struct {
	Years  []int    `json:"years"`
	States []string `json:"states"`
}

type UploadSession struct {
	ID       string   `json:"id"`
	Received []string `json:"received"` // source names already attached
	Missing  []string `json:"missing"`  // source names still awaited
	Ready    bool     `json:"ready"`
}

// FilterScope echoes the filters a metric was computed under.
type FilterScope struct {
	Year  int    `json:"year"`
	State string `json:"state,omitempty"` // omitted when all states
}

type Summary struct {
	Filter           FilterScope `json:"filter"`
	TotalOrders      int         `json:"total_orders"`
	AvgItemPrice     float64     `json:"avg_item_price"`      // mean price across in-scope items
	AvgFreightValue  float64     `json:"avg_freight_value"`   // mean freight across in-scope items
	DeliveredPercent float64     `json:"delivered_percent"`   // share of filtered orders delivered
	Insight          string      `json:"insight,omitempty"`
}

type MonthlyCount struct {
	Period string `json:"period"` // YYYY-MM
	Orders int    `json:"orders"`
}

type MonthlyTrend struct {
	Filter  FilterScope    `json:"filter"`
	Months  []MonthlyCount `json:"months"`
	Insight string         `json:"insight,omitempty"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type CategoryBreakdown struct {
	Filter     FilterScope     `json:"filter"`
	Categories []CategoryCount `json:"categories"`
	Insight    string          `json:"insight,omitempty"`
}

type PricePoint struct {
	Price   float64 `json:"price"`
	Freight float64 `json:"freight"`
}

// FreightCorrelation carries a nil Coefficient when the correlation is
// undefined (fewer than two observations or zero variance).
type FreightCorrelation struct {
	Filter      FilterScope  `json:"filter"`
	Coefficient *float64     `json:"coefficient"`
	Points      []PricePoint `json:"points"`
	Insight     string       `json:"insight,omitempty"`
}

type PaymentTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type PaymentDistribution struct {
	Filter   FilterScope        `json:"filter"`
	Payments []PaymentTypeCount `json:"payments"`
	Insight  string             `json:"insight,omitempty"`
}

type RFMRecord struct {
	CustomerID  string `json:"customer_id"`
	RecencyDays int    `json:"recency_days"`
	Frequency   int    `json:"frequency"`
	Monetary    string `json:"monetary"` // decimal rendered as string
}

type RFMResult struct {
	Filter    FilterScope `json:"filter"`
	Customers []RFMRecord `json:"customers"`
	Insight   string      `json:"insight,omitempty"`
}
