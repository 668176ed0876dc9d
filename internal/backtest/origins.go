package backtest

// origins.go — análisis multi-origen: una simulación independiente por cada
// año de arranque presente en la serie. Cada origen empieza de cero con todo
// el capital sobre el sufijo de la serie (año >= Y), no es una continuación
// de la simulación completa. El resultado es la tabla comparativa "Desde Y".

import (
	"github.com/alejandrodnm/fngbot/internal/domain"
)

const daysPerYear = 365.25

// RunFromEachOrigin simula la estrategia una vez por cada año distinto de la
// serie, sobre el sufijo que empieza ese año, y devuelve una fila por origen
// en orden ascendente de año. Los orígenes se simulan en paralelo; el orden
// de las filas no depende del scheduling.
func RunFromEachOrigin(
	series []domain.SeriesPoint,
	initialCapital float64,
	buyThreshold, sellThreshold int,
	workers int,
) []domain.OriginRun {
	years := domain.SeriesYears(series)
	if len(years) == 0 {
		return nil
	}

	results := make([]*domain.OriginRun, len(years))
	forEachIndexed(len(years), workers, func(i int) {
		results[i] = runOrigin(series, years[i], initialCapital, buyThreshold, sellThreshold)
	})

	runs := make([]domain.OriginRun, 0, len(years))
	for _, r := range results {
		if r != nil {
			runs = append(runs, *r)
		}
	}
	return runs
}

// runOrigin simula un único origen. Devuelve nil si el sufijo queda vacío.
func runOrigin(
	series []domain.SeriesPoint,
	fromYear int,
	initialCapital float64,
	buyThreshold, sellThreshold int,
) *domain.OriginRun {
	var subset []domain.SeriesPoint
	for _, p := range series {
		if p.Year() >= fromYear {
			subset = append(subset, p)
		}
	}
	if len(subset) == 0 {
		return nil
	}

	snapshots, trades := Simulate(subset, initialCapital, buyThreshold, sellThreshold)
	if len(snapshots) == 0 {
		return nil
	}

	finalEquity := snapshots[len(snapshots)-1].Equity
	benefit := finalEquity - initialCapital
	totalROI := benefit / initialCapital * 100

	elapsed := snapshots[len(snapshots)-1].Date.Sub(snapshots[0].Date).Hours() / 24 / daysPerYear

	annualProfit := benefit
	annualROI := totalROI
	if elapsed > 0 {
		annualProfit = benefit / elapsed
		annualROI = totalROI / elapsed
	}

	// Conteo de operaciones positivas/negativas: aproximación heredada que
	// cuenta todo SELL como ganadora y reporta 0 perdedoras. No es un
	// cálculo real de win/loss; se mantiene etiquetado como aproximación.
	sells := 0
	for _, t := range trades {
		if t.Action == domain.ActionSell {
			sells++
		}
	}

	profitPct := 0.0
	if len(trades) > 0 {
		profitPct = 100
	}

	return &domain.OriginRun{
		FromYear:     fromYear,
		Capital:      initialCapital,
		FinalEquity:  finalEquity,
		Benefit:      benefit,
		AnnualProfit: annualProfit,
		TotalROI:     totalROI,
		AnnualROI:    annualROI,
		Ops:          len(trades),
		ProfitPct:    profitPct,
		PositiveOps:  sells,
		NegativeOps:  0,
		ElapsedYears: elapsed,
	}
}
