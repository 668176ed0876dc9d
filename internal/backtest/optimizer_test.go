package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

func TestDefaultGrid(t *testing.T) {
	grid := DefaultGrid()
	assert.Equal(t, []int{10, 20, 30, 40, 50, 60}, grid.Buy)
	assert.Equal(t, []int{70, 80, 90, 95}, grid.Sell)
	assert.Len(t, grid.cells(), 24)
}

func TestOptimize_MatchesExhaustiveSearch(t *testing.T) {
	series := []domain.SeriesPoint{
		point(day(2021, time.January, 5), 100, 15),
		point(day(2021, time.March, 5), 140, 75),
		point(day(2021, time.June, 5), 120, 35),
		point(day(2021, time.September, 5), 180, 96),
		point(day(2021, time.December, 5), 160, 50),
	}

	params := Optimize(series, 10000, DefaultGrid(), 0)
	require.Len(t, params, 1)
	best := params[0]
	assert.Equal(t, 2021, best.Year)

	// El ROI devuelto debe ser el máximo alcanzable simulando a mano las 24
	// combinaciones del grid.
	grid := DefaultGrid()
	maxROI := best.MaxROI
	foundBest := false
	for _, b := range grid.Buy {
		for _, s := range grid.Sell {
			snapshots, _ := Simulate(series, 10000, b, s)
			roi := (snapshots[len(snapshots)-1].Equity - 10000) / 10000 * 100
			assert.LessOrEqual(t, roi, maxROI+1e-9)
			if b == best.BuyThreshold && s == best.SellThreshold {
				foundBest = true
				assert.InDelta(t, roi, maxROI, 1e-9)
			}
		}
	}
	assert.True(t, foundBest, "best pair must come from the grid")
}

func TestOptimize_TieKeepsFirstGridPair(t *testing.T) {
	// Sin ningún cruce de umbral posible, todas las celdas dan ROI 0: debe
	// ganar la primera celda en orden de iteración (10, 70).
	series := []domain.SeriesPoint{
		point(day(2022, time.February, 1), 100, 65),
		point(day(2022, time.August, 1), 200, 65),
	}

	params := Optimize(series, 10000, DefaultGrid(), 0)
	require.Len(t, params, 1)
	assert.Equal(t, 10, params[0].BuyThreshold)
	assert.Equal(t, 70, params[0].SellThreshold)
	assert.Zero(t, params[0].MaxROI)
}

func TestOptimize_OneEntryPerYear(t *testing.T) {
	var series []domain.SeriesPoint
	for year := 2019; year <= 2022; year++ {
		series = append(series,
			point(day(year, time.February, 1), 100, 15),
			point(day(year, time.October, 1), 150, 96),
		)
	}

	params := Optimize(series, 10000, DefaultGrid(), 0)
	require.Len(t, params, 4)
	for i, p := range params {
		assert.Equal(t, 2019+i, p.Year)
		// Cada año tiene un ciclo 100 → 150 alcanzable por cualquier celda
		// con buy >= 15 y sell <= 96.
		assert.InDelta(t, 50, p.MaxROI, 1e-9)
	}
}

func TestOptimize_CustomGrid(t *testing.T) {
	series := []domain.SeriesPoint{
		point(day(2023, time.March, 1), 100, 25),
		point(day(2023, time.September, 1), 130, 85),
	}

	grid := Grid{Buy: []int{30}, Sell: []int{80}}
	params := Optimize(series, 10000, grid, 0)
	require.Len(t, params, 1)
	assert.Equal(t, 30, params[0].BuyThreshold)
	assert.Equal(t, 80, params[0].SellThreshold)
	assert.InDelta(t, 30, params[0].MaxROI, 1e-9)
}

func TestOptimize_EmptyInputs(t *testing.T) {
	assert.Empty(t, Optimize(nil, 10000, DefaultGrid(), 0))
	assert.Empty(t, Optimize([]domain.SeriesPoint{point(day(2023, time.March, 1), 100, 25)}, 10000, Grid{}, 0))
}

func TestRun_FullReport(t *testing.T) {
	series := sixYearSeries()
	report := Run(series, Params{
		Capital:       10000,
		BuyThreshold:  50,
		SellThreshold: 90,
		Optimize:      true,
		Grid:          DefaultGrid(),
	})

	assert.Len(t, report.Snapshots, len(series))
	assert.Len(t, report.Yearly, 6)
	assert.Len(t, report.Origins, 6)
	assert.Len(t, report.Optimal, 6)
	assert.Greater(t, report.TotalROI(), 0.0)
	assert.InDelta(t, report.FinalEquity()-10000, report.TotalProfit(), 1e-9)
}

func TestRun_OptimizeOff(t *testing.T) {
	report := Run(sixYearSeries(), Params{
		Capital:       10000,
		BuyThreshold:  50,
		SellThreshold: 90,
	})
	assert.Empty(t, report.Optimal)
}
