package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/services/filter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id, customer string, ts time.Time) domain.Order {
	return domain.Order{
		ID:          id,
		CustomerID:  customer,
		Status:      "delivered",
		PurchasedAt: ts,
		Year:        ts.Year(),
		Month:       ts.Month(),
		Period:      domain.YearMonth{Year: ts.Year(), Month: ts.Month()},
	}
}

func at(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testDataset has three 2017 orders (two for c1, one for c2) and one 2018
// order for c2 that also carries the global maximum purchase timestamp.
func testDataset() *domain.Dataset {
	orders := []domain.Order{
		order("o1", "c1", at(2017, time.March, 1)),
		order("o2", "c1", at(2017, time.March, 12)),
		order("o3", "c2", at(2017, time.March, 20)),
		order("o4", "c2", at(2018, time.January, 5)),
	}
	items := []domain.OrderItem{
		{OrderID: "o1", ProductID: "p1", Price: 10.0, FreightValue: 2.0},
		{OrderID: "o1", ProductID: "p2", Price: 99.9, FreightValue: 15.0},
		{OrderID: "o3", ProductID: "p1", Price: 10.5, FreightValue: 2.1},
		{OrderID: "o4", ProductID: "p9", Price: 30.0, FreightValue: 5.0}, // unknown product
	}
	payments := []domain.Payment{
		{OrderID: "o1", Type: "credit_card", Value: money("60.00")},
		{OrderID: "o1", Type: "voucher", Value: money("52.60")},
		{OrderID: "o3", Type: "boleto", Value: money("12.60")},
		// o2 has no payment record on purpose
	}
	products := []domain.Product{
		{ID: "p1", CategoryName: "toys"},
		{ID: "p2", CategoryName: ""},
	}
	customers := []domain.Customer{
		{ID: "c1", State: "SP"},
		{ID: "c2", State: "RJ"},
	}
	return domain.NewDataset(orders, items, payments, products, customers)
}

func filtered(t *testing.T, ds *domain.Dataset, year int, state string) domain.FilteredOrders {
	t.Helper()
	f, err := filter.Apply(ds, year, state)
	require.NoError(t, err)
	return f
}

func emptyFiltered(t *testing.T, ds *domain.Dataset) domain.FilteredOrders {
	t.Helper()
	f := filtered(t, ds, 2018, "SP")
	require.Empty(t, f.Orders)
	return f
}

func TestMonthlyTrend_Scenario(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	trend := MonthlyTrend(f)
	require.Len(t, trend, 1)
	assert.Equal(t, "2017-03", trend[0].Period.String())
	assert.Equal(t, 3, trend[0].Orders)
}

func TestMonthlyTrend_Chronological(t *testing.T) {
	orders := []domain.Order{
		order("a", "c1", at(2017, time.December, 1)),
		order("b", "c1", at(2017, time.January, 1)),
		order("c", "c1", at(2017, time.March, 1)),
		order("d", "c1", at(2017, time.January, 20)),
	}
	ds := domain.NewDataset(orders, nil, nil, nil, []domain.Customer{{ID: "c1", State: "SP"}})
	f := filtered(t, ds, 2017, filter.AllStates)

	trend := MonthlyTrend(f)
	require.Len(t, trend, 3)
	assert.Equal(t, "2017-01", trend[0].Period.String())
	assert.Equal(t, 2, trend[0].Orders)
	assert.Equal(t, "2017-03", trend[1].Period.String())
	assert.Equal(t, "2017-12", trend[2].Period.String())
}

func TestCategoryBreakdown_CountsSumToJoinedItems(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	breakdown := CategoryBreakdown(ds, f, DefaultSettings())

	total := 0
	for _, c := range breakdown {
		total += c.Count
	}
	// Three items belong to 2017 orders; none lost or duplicated by joins.
	assert.Equal(t, 3, total)
}

func TestCategoryBreakdown_Buckets(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	breakdown := CategoryBreakdown(ds, f, DefaultSettings())
	require.Len(t, breakdown, 2)
	assert.Equal(t, domain.CategoryCount{Category: "toys", Count: 2}, breakdown[0])
	// p2 has no category label: counted as its own bucket.
	assert.Equal(t, domain.CategoryCount{Category: "", Count: 1}, breakdown[1])
}

func TestCategoryBreakdown_UnknownProduct(t *testing.T) {
	// o4's p9 has no product row at all; the left join leaves it in the
	// empty-category bucket rather than dropping the item.
	ds := testDataset()
	f := filtered(t, ds, 2018, filter.AllStates)

	breakdown := CategoryBreakdown(ds, f, DefaultSettings())
	require.Len(t, breakdown, 1)
	assert.Equal(t, domain.CategoryCount{Category: "", Count: 1}, breakdown[0])
}

func TestCategoryBreakdown_TopN(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	breakdown := CategoryBreakdown(ds, f, Settings{TopCategories: 1})
	require.Len(t, breakdown, 1)
	assert.Equal(t, "toys", breakdown[0].Category)
}

func TestFreightCorrelation_Positive(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	result := FreightCorrelation(ds, f)
	require.Len(t, result.Points, 3)
	// Price and freight rise together in the fixture.
	assert.False(t, math.IsNaN(result.Coefficient))
	assert.Greater(t, result.Coefficient, 0.9)
}

func TestFreightCorrelation_ZeroVarianceIsNaN(t *testing.T) {
	orders := []domain.Order{
		order("o1", "c1", at(2017, time.March, 1)),
		order("o2", "c1", at(2017, time.March, 2)),
	}
	items := []domain.OrderItem{
		{OrderID: "o1", ProductID: "p1", Price: 10.0, FreightValue: 2.0},
		{OrderID: "o1", ProductID: "p1", Price: 10.0, FreightValue: 2.0},
		{OrderID: "o2", ProductID: "p1", Price: 10.0, FreightValue: 2.0},
	}
	ds := domain.NewDataset(orders, items, nil, nil, []domain.Customer{{ID: "c1", State: "SP"}})
	f := filtered(t, ds, 2017, filter.AllStates)

	result := FreightCorrelation(ds, f)
	require.Len(t, result.Points, 3)
	assert.True(t, math.IsNaN(result.Coefficient))
}

func TestFreightCorrelation_FewerThanTwoIsNaN(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2018, filter.AllStates)

	result := FreightCorrelation(ds, f)
	require.Len(t, result.Points, 1)
	assert.True(t, math.IsNaN(result.Coefficient))
}

func TestPaymentDistribution(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	dist := PaymentDistribution(ds, f)
	assert.Equal(t, []domain.PaymentTypeCount{
		{Type: "boleto", Count: 1},
		{Type: "credit_card", Count: 1},
		{Type: "voucher", Count: 1},
	}, dist)
}

func TestRFM_Scenario(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	records := RFM(ds, f)
	require.Len(t, records, 2)

	c1, c2 := records[0], records[1]
	assert.Equal(t, "c1", c1.CustomerID)
	assert.Equal(t, 2, c1.Frequency)
	assert.Equal(t, "c2", c2.CustomerID)
	assert.Equal(t, 1, c2.Frequency)

	// Recency is measured against the global reference date (2018-01-05),
	// not the maximum of the filtered 2017 subset.
	assert.Equal(t, 299, c1.RecencyDays) // 2017-03-12 -> 2018-01-05
	assert.Equal(t, 291, c2.RecencyDays) // 2017-03-20 -> 2018-01-05

	// o2 has no payment record and contributes zero, not null.
	assert.True(t, c1.Monetary.Equal(money("112.60")), c1.Monetary.String())
	assert.True(t, c2.Monetary.Equal(money("12.60")), c2.Monetary.String())
}

func TestRFM_Bounds(t *testing.T) {
	ds := testDataset()
	for _, state := range append([]string{filter.AllStates}, ds.States...) {
		for _, year := range ds.Years {
			f := filtered(t, ds, year, state)
			for _, r := range RFM(ds, f) {
				assert.GreaterOrEqual(t, r.Frequency, 1)
				assert.GreaterOrEqual(t, r.RecencyDays, 0)
				assert.False(t, r.Monetary.IsNegative())
			}
		}
	}
}

func TestRFM_StateRestrictedPopulation(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, "SP")

	records := RFM(ds, f)
	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0].CustomerID)
}

func TestSummarize(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	s := Summarize(ds, f)
	assert.Equal(t, 3, s.TotalOrders)
	assert.InDelta(t, (10.0+99.9+10.5)/3, s.AvgItemPrice, 1e-9)
	assert.InDelta(t, (2.0+15.0+2.1)/3, s.AvgFreightValue, 1e-9)
	assert.InDelta(t, 100.0, s.DeliveredPercent, 1e-9)
}

func TestEmptyFilteredSet_NoCalculatorFails(t *testing.T) {
	ds := testDataset()
	f := emptyFiltered(t, ds)

	assert.Empty(t, MonthlyTrend(f))
	assert.Empty(t, CategoryBreakdown(ds, f, DefaultSettings()))
	assert.Empty(t, PaymentDistribution(ds, f))
	assert.Empty(t, RFM(ds, f))

	corr := FreightCorrelation(ds, f)
	assert.Empty(t, corr.Points)
	assert.True(t, math.IsNaN(corr.Coefficient))

	s := Summarize(ds, f)
	assert.Equal(t, domain.Summary{}, s)
}

func TestCalculators_Idempotent(t *testing.T) {
	ds := testDataset()
	f := filtered(t, ds, 2017, filter.AllStates)

	assert.Equal(t, MonthlyTrend(f), MonthlyTrend(f))
	assert.Equal(t, CategoryBreakdown(ds, f, DefaultSettings()), CategoryBreakdown(ds, f, DefaultSettings()))
	assert.Equal(t, PaymentDistribution(ds, f), PaymentDistribution(ds, f))
	assert.Equal(t, RFM(ds, f), RFM(ds, f))
	assert.Equal(t, Summarize(ds, f), Summarize(ds, f))
	assert.Equal(t, FreightCorrelation(ds, f).Coefficient, FreightCorrelation(ds, f).Coefficient)
}
