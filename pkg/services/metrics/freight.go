package metrics

import (
	"math"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

// FreightCorrelation computes the Pearson correlation between item price
// and freight value across the items of the filtered orders, along with
// the raw observation pairs for scatter rendering. The coefficient is NaN
// when fewer than two observations exist or either column has zero
// variance; that is a valid "no data" result, not an error.
func FreightCorrelation(ds *domain.Dataset, f domain.FilteredOrders) domain.CorrelationResult {
	ids := f.IDSet()
	inScope := lo.Filter(ds.Items, func(it domain.OrderItem, _ int) bool {
		_, ok := ids[it.OrderID]
		return ok
	})

	points := make([]domain.PricePoint, 0, len(inScope))
	prices := make([]float64, 0, len(inScope))
	freights := make([]float64, 0, len(inScope))
	for _, it := range inScope {
		points = append(points, domain.PricePoint{Price: it.Price, Freight: it.FreightValue})
		prices = append(prices, it.Price)
		freights = append(freights, it.FreightValue)
	}

	coefficient := math.NaN()
	if len(points) >= 2 {
		// Zero variance in either column yields NaN from the 0/0 division.
		coefficient = stat.Correlation(prices, freights, nil)
	}

	return domain.CorrelationResult{Coefficient: coefficient, Points: points}
}
