package backtest

import (
	"log/slog"
	"time"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// Params son los parámetros de una petición de backtest completa. Optimize es
// configuración explícita por petición, no estado ambiente de sesión.
type Params struct {
	Capital       float64
	BuyThreshold  int
	SellThreshold int
	Optimize      bool
	Grid          Grid
	Workers       int
}

// Run ejecuta el backtest completo sobre la serie: simulación continua,
// agregado anual, análisis multi-origen y, si se pide, optimización de
// umbrales. Devuelve las tablas crudas para la capa de presentación.
func Run(series []domain.SeriesPoint, params Params) domain.Report {
	start := time.Now()

	snapshots, trades := Simulate(series, params.Capital, params.BuyThreshold, params.SellThreshold)
	yearly := AggregateByYear(snapshots)
	origins := RunFromEachOrigin(series, params.Capital, params.BuyThreshold, params.SellThreshold, params.Workers)

	var optimal []domain.OptimalParams
	if params.Optimize {
		grid := params.Grid
		if len(grid.Buy) == 0 || len(grid.Sell) == 0 {
			grid = DefaultGrid()
		}
		optimal = Optimize(series, params.Capital, grid, params.Workers)
	}

	slog.Debug("backtest complete",
		"days", len(snapshots),
		"trades", len(trades),
		"years", len(yearly),
		"origins", len(origins),
		"optimized", params.Optimize,
		"elapsed", time.Since(start),
	)

	return domain.Report{
		Capital:   params.Capital,
		Snapshots: snapshots,
		Trades:    trades,
		Yearly:    yearly,
		Origins:   origins,
		Optimal:   optimal,
	}
}
