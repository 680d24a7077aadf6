package metrics

import (
	"fmt"
	"math"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/services/insights"
)

// DefaultCalculators wires every business question to its report builder.
func DefaultCalculators(settings Settings) map[string]Calculator {
	return map[string]Calculator{
		insights.QuestionSummary:  summaryCalculator(),
		insights.QuestionTrend:    trendCalculator(),
		insights.QuestionCategory: categoryCalculator(settings),
		insights.QuestionFreight:  freightCalculator(),
		insights.QuestionPayments: paymentsCalculator(),
		insights.QuestionRFM:      rfmCalculator(),
	}
}

func newReport(title string, f domain.FilteredOrders, question string) *domain.Report {
	return &domain.Report{
		Title:   title,
		Year:    f.Year,
		State:   f.State,
		Insight: insights.For(question),
	}
}

func summaryCalculator() Calculator {
	return func(ds *domain.Dataset, f domain.FilteredOrders) *domain.Report {
		s := Summarize(ds, f)
		report := newReport("Dataset Summary", f, insights.QuestionSummary)
		report.Sections = append(report.Sections, domain.ReportSection{
			Title: "Headline Metrics",
			Summary: map[string]interface{}{
				"Total Orders": s.TotalOrders,
			},
			Details: []domain.ReportDetail{
				{Name: "Average Item Price", Value: fmt.Sprintf("%.2f", s.AvgItemPrice), Unit: "BRL", Description: "Mean price across in-scope items"},
				{Name: "Average Freight", Value: fmt.Sprintf("%.2f", s.AvgFreightValue), Unit: "BRL", Description: "Mean freight across in-scope items"},
				{Name: "Delivered", Value: fmt.Sprintf("%.1f", s.DeliveredPercent), Unit: "%", Description: "Share of filtered orders delivered"},
			},
		})
		return report
	}
}

func trendCalculator() Calculator {
	return func(_ *domain.Dataset, f domain.FilteredOrders) *domain.Report {
		trend := MonthlyTrend(f)
		report := newReport("Monthly Purchase Trend", f, insights.QuestionTrend)

		section := domain.ReportSection{
			Title:   "Orders per Month",
			Summary: map[string]interface{}{"Months": len(trend)},
		}
		for _, m := range trend {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:  m.Period.String(),
				Value: m.Orders,
				Unit:  "orders",
			})
		}
		report.Sections = append(report.Sections, section)
		return report
	}
}

func categoryCalculator(settings Settings) Calculator {
	return func(ds *domain.Dataset, f domain.FilteredOrders) *domain.Report {
		breakdown := CategoryBreakdown(ds, f, settings)
		report := newReport("Top Product Categories", f, insights.QuestionCategory)

		section := domain.ReportSection{
			Title:   "Items Sold per Category",
			Summary: map[string]interface{}{"Categories": len(breakdown)},
		}
		for _, c := range breakdown {
			name := c.Category
			if name == "" {
				name = "(uncategorized)"
			}
			section.Details = append(section.Details, domain.ReportDetail{
				Name:  name,
				Value: c.Count,
				Unit:  "items",
			})
		}
		report.Sections = append(report.Sections, section)
		return report
	}
}

func freightCalculator() Calculator {
	return func(ds *domain.Dataset, f domain.FilteredOrders) *domain.Report {
		result := FreightCorrelation(ds, f)
		report := newReport("Price vs Freight", f, insights.QuestionFreight)

		coefficient := "undefined"
		if !math.IsNaN(result.Coefficient) {
			coefficient = fmt.Sprintf("%.4f", result.Coefficient)
		}
		report.Sections = append(report.Sections, domain.ReportSection{
			Title: "Pearson Correlation",
			Summary: map[string]interface{}{
				"Coefficient":  coefficient,
				"Observations": len(result.Points),
			},
		})
		return report
	}
}

func paymentsCalculator() Calculator {
	return func(ds *domain.Dataset, f domain.FilteredOrders) *domain.Report {
		dist := PaymentDistribution(ds, f)
		report := newReport("Payment Method Distribution", f, insights.QuestionPayments)

		total := 0
		for _, p := range dist {
			total += p.Count
		}
		section := domain.ReportSection{
			Title:   "Payments per Method",
			Summary: map[string]interface{}{"Payment Records": total},
		}
		for _, p := range dist {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:  p.Type,
				Value: p.Count,
				Unit:  "payments",
			})
		}
		report.Sections = append(report.Sections, section)
		return report
	}
}

func rfmCalculator() Calculator {
	return func(ds *domain.Dataset, f domain.FilteredOrders) *domain.Report {
		records := RFM(ds, f)
		report := newReport("Customer Loyalty (RFM)", f, insights.QuestionRFM)

		section := domain.ReportSection{
			Title:   "Recency / Frequency / Monetary per Customer",
			Summary: map[string]interface{}{"Customers": len(records)},
		}
		for _, r := range records {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:  r.CustomerID,
				Value: fmt.Sprintf("R=%dd F=%d M=%s", r.RecencyDays, r.Frequency, r.Monetary.StringFixed(2)),
			})
		}
		report.Sections = append(report.Sections, section)
		return report
	}
}
