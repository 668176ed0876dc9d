package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// sixYearSeries construye dos puntos por año en 2018..2023, con un ciclo
// compra-venta rentable cada año.
func sixYearSeries() []domain.SeriesPoint {
	var series []domain.SeriesPoint
	price := 100.0
	for year := 2018; year <= 2023; year++ {
		series = append(series,
			point(day(year, time.January, 10), price, 20),      // compra
			point(day(year, time.December, 10), price*1.5, 95), // venta
		)
		price *= 1.5
	}
	return series
}

func TestRunFromEachOrigin_OneRowPerYear(t *testing.T) {
	runs := RunFromEachOrigin(sixYearSeries(), 10000, 50, 90, 0)
	require.Len(t, runs, 6)
	for i, r := range runs {
		assert.Equal(t, 2018+i, r.FromYear)
	}
}

func TestRunFromEachOrigin_IndependentCapital(t *testing.T) {
	runs := RunFromEachOrigin(sixYearSeries(), 10000, 50, 90, 0)
	require.Len(t, runs, 6)

	// Cada origen arranca de cero con todo el capital: el último año hace un
	// único ciclo 100 → 150, es decir +50%.
	last := runs[5]
	assert.InDelta(t, 10000, last.Capital, 1e-9)
	assert.InDelta(t, 15000, last.FinalEquity, 1e-6)
	assert.InDelta(t, 50, last.TotalROI, 1e-6)

	// Y los orígenes más antiguos acumulan más ciclos, nunca menos ROI.
	for i := 1; i < len(runs); i++ {
		assert.Greater(t, runs[i-1].TotalROI, runs[i].TotalROI,
			"origin %d should outperform origin %d", runs[i-1].FromYear, runs[i].FromYear)
	}
}

func TestRunFromEachOrigin_MatchesStandaloneSimulation(t *testing.T) {
	series := sixYearSeries()
	runs := RunFromEachOrigin(series, 10000, 50, 90, 0)
	require.NotEmpty(t, runs)

	// La fila "Desde 2020" equivale a simular el sufijo año >= 2020.
	var suffix []domain.SeriesPoint
	for _, p := range series {
		if p.Year() >= 2020 {
			suffix = append(suffix, p)
		}
	}
	snapshots, trades := Simulate(suffix, 10000, 50, 90)

	from2020 := runs[2]
	assert.Equal(t, 2020, from2020.FromYear)
	assert.InDelta(t, snapshots[len(snapshots)-1].Equity, from2020.FinalEquity, 1e-9)
	assert.Equal(t, len(trades), from2020.Ops)
}

func TestRunFromEachOrigin_AnnualizedMetrics(t *testing.T) {
	runs := RunFromEachOrigin(sixYearSeries(), 10000, 50, 90, 0)
	first := runs[0]

	assert.InDelta(t, first.Benefit/first.ElapsedYears, first.AnnualProfit, 1e-6)
	assert.InDelta(t, first.TotalROI/first.ElapsedYears, first.AnnualROI, 1e-6)
	assert.Greater(t, first.ElapsedYears, 5.0)
}

func TestRunFromEachOrigin_SingleDayFallback(t *testing.T) {
	// Un solo punto: elapsed 0 → el anualizado cae al valor bruto.
	series := []domain.SeriesPoint{point(day(2023, time.July, 1), 100, 55)}

	runs := RunFromEachOrigin(series, 10000, 50, 90, 0)
	require.Len(t, runs, 1)
	assert.Zero(t, runs[0].ElapsedYears)
	assert.InDelta(t, runs[0].Benefit, runs[0].AnnualProfit, 1e-12)
	assert.InDelta(t, runs[0].TotalROI, runs[0].AnnualROI, 1e-12)
}

func TestRunFromEachOrigin_PositiveOpsAreSells(t *testing.T) {
	runs := RunFromEachOrigin(sixYearSeries(), 10000, 50, 90, 0)
	first := runs[0]

	// Aproximación heredada: positivas = ventas, negativas siempre 0.
	assert.Equal(t, 6, first.PositiveOps)
	assert.Zero(t, first.NegativeOps)
	assert.Equal(t, 12, first.Ops)
	assert.InDelta(t, 100, first.ProfitPct, 1e-12)
}

func TestRunFromEachOrigin_Empty(t *testing.T) {
	assert.Empty(t, RunFromEachOrigin(nil, 10000, 50, 90, 0))
}
