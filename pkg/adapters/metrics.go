package adapters

import (
	"math"

	"github.com/de-tools/commerce-atlas/pkg/models/api"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
)

// UncategorizedLabel is the API rendering of the empty category bucket.
const UncategorizedLabel = "uncategorized"

func MapFilterScopeDomainToApi(f domain.FilteredOrders) api.FilterScope {
	return api.FilterScope{Year: f.Year, State: f.State}
}

func MapSummaryDomainToApi(f domain.FilteredOrders, s domain.Summary, insight string) api.Summary {
	return api.Summary{
		Filter:           MapFilterScopeDomainToApi(f),
		TotalOrders:      s.TotalOrders,
		AvgItemPrice:     s.AvgItemPrice,
		AvgFreightValue:  s.AvgFreightValue,
		DeliveredPercent: s.DeliveredPercent,
		Insight:          insight,
	}
}

func MapMonthlyTrendDomainToApi(f domain.FilteredOrders, trend []domain.MonthlyCount, insight string) api.MonthlyTrend {
	months := make([]api.MonthlyCount, 0, len(trend))
	for _, m := range trend {
		months = append(months, api.MonthlyCount{Period: m.Period.String(), Orders: m.Orders})
	}
	return api.MonthlyTrend{
		Filter:  MapFilterScopeDomainToApi(f),
		Months:  months,
		Insight: insight,
	}
}

func MapCategoryBreakdownDomainToApi(f domain.FilteredOrders, breakdown []domain.CategoryCount, insight string) api.CategoryBreakdown {
	categories := make([]api.CategoryCount, 0, len(breakdown))
	for _, c := range breakdown {
		label := c.Category
		if label == "" {
			label = UncategorizedLabel
		}
		categories = append(categories, api.CategoryCount{Category: label, Count: c.Count})
	}
	return api.CategoryBreakdown{
		Filter:     MapFilterScopeDomainToApi(f),
		Categories: categories,
		Insight:    insight,
	}
}

// MapCorrelationDomainToApi renders an undefined (NaN) coefficient as null,
// since JSON cannot carry NaN.
func MapCorrelationDomainToApi(f domain.FilteredOrders, r domain.CorrelationResult, insight string) api.FreightCorrelation {
	var coefficient *float64
	if !math.IsNaN(r.Coefficient) {
		c := r.Coefficient
		coefficient = &c
	}

	points := make([]api.PricePoint, 0, len(r.Points))
	for _, p := range r.Points {
		points = append(points, api.PricePoint{Price: p.Price, Freight: p.Freight})
	}

	return api.FreightCorrelation{
		Filter:      MapFilterScopeDomainToApi(f),
		Coefficient: coefficient,
		Points:      points,
		Insight:     insight,
	}
}

func MapPaymentDistributionDomainToApi(f domain.FilteredOrders, dist []domain.PaymentTypeCount, insight string) api.PaymentDistribution {
	payments := make([]api.PaymentTypeCount, 0, len(dist))
	for _, p := range dist {
		payments = append(payments, api.PaymentTypeCount{Type: p.Type, Count: p.Count})
	}
	return api.PaymentDistribution{
		Filter:   MapFilterScopeDomainToApi(f),
		Payments: payments,
		Insight:  insight,
	}
}

func MapRFMDomainToApi(f domain.FilteredOrders, records []domain.RFMRecord, insight string) api.RFMResult {
	customers := make([]api.RFMRecord, 0, len(records))
	for _, r := range records {
		customers = append(customers, api.RFMRecord{
			CustomerID:  r.CustomerID,
			RecencyDays: r.RecencyDays,
			Frequency:   r.Frequency,
			Monetary:    r.Monetary.StringFixed(2),
		})
	}
	return api.RFMResult{
		Filter:    MapFilterScopeDomainToApi(f),
		Customers: customers,
		Insight:   insight,
	}
}

func MapDatasetStatusDomainToApi(ds *domain.Dataset) api.DatasetStatus {
	if ds == nil {
		return api.DatasetStatus{}
	}
	return api.DatasetStatus{
		Loaded:        true,
		Orders:        len(ds.Orders),
		OrderItems:    len(ds.Items),
		Payments:      len(ds.Payments),
		Products:      len(ds.Products),
		Customers:     len(ds.Customers),
		ReferenceDate: ds.ReferenceDate,
	}
}

func MapFilterDomainsDomainToApi(ds *domain.Dataset) api.FilterDomains {
	return api.FilterDomains{Years: ds.Years, States: ds.States}
}
