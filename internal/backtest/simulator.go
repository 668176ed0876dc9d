// Package backtest implementa el motor de la estrategia Fear & Greed:
// simulador de una pasada, agregado anual, análisis multi-origen y
// optimizador de umbrales. Todas las funciones son puras sobre sus entradas,
// sin I/O ni estado compartido, y por tanto seguras de invocar en paralelo
// para distintos parámetros.
package backtest

import (
	"github.com/google/uuid"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// Simulate ejecuta una pasada determinista de la estrategia sobre la serie:
// compra BTC con el 100% del USD cuando el índice <= buyThreshold, vende el
// 100% del BTC cuando el índice >= sellThreshold, y emite un snapshot diario
// haya o no operación. La condición de compra se evalúa antes que la de venta;
// el gating por saldo hace que como mucho una de las dos dispare por día.
//
// La serie de entrada nunca se muta: se trabaja sobre una copia ordenada por
// fecha ascendente. Una serie vacía produce salidas vacías, sin error.
func Simulate(
	series []domain.SeriesPoint,
	initialCapital float64,
	buyThreshold, sellThreshold int,
) ([]domain.DailySnapshot, []domain.Trade) {
	if len(series) == 0 {
		return nil, nil
	}

	sorted := make([]domain.SeriesPoint, len(series))
	copy(sorted, series)
	domain.SortSeries(sorted)

	portfolio := domain.Portfolio{USD: initialCapital}
	snapshots := make([]domain.DailySnapshot, 0, len(sorted))
	var trades []domain.Trade

	for _, point := range sorted {
		action := domain.ActionHold

		switch {
		case point.Sentiment <= buyThreshold && portfolio.USD > 0:
			spent := portfolio.USD
			bought := portfolio.BuyAll(point.Price)
			trades = append(trades, domain.Trade{
				ID:        uuid.New().String(),
				Date:      point.Date,
				Action:    domain.ActionBuy,
				Price:     point.Price,
				Sentiment: point.Sentiment,
				AmountUSD: spent,
				AmountBTC: bought,
			})
			action = domain.ActionBuy

		case point.Sentiment >= sellThreshold && portfolio.BTC > 0:
			sold := portfolio.BTC
			received := portfolio.SellAll(point.Price)
			trades = append(trades, domain.Trade{
				ID:        uuid.New().String(),
				Date:      point.Date,
				Action:    domain.ActionSell,
				Price:     point.Price,
				Sentiment: point.Sentiment,
				AmountUSD: received,
				AmountBTC: sold,
			})
			action = domain.ActionSell
		}

		snapshots = append(snapshots, domain.DailySnapshot{
			Date:       point.Date,
			Price:      point.Price,
			Sentiment:  point.Sentiment,
			Equity:     portfolio.Equity(point.Price),
			BTCHeld:    portfolio.BTC,
			USDBalance: portfolio.USD,
			Action:     action,
		})
	}

	return snapshots, trades
}
