// Package loader es la capa de adquisición de datos: descarga el precio y el
// índice Fear & Greed, los fusiona por fecha natural (inner join) y mantiene
// la cache local como fallback. El motor de backtesting solo ve la serie
// fusionada resultante.
package loader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/fngbot/internal/domain"
	"github.com/alejandrodnm/fngbot/internal/ports"
)

// Loader orquesta los dos feeds y la cache.
type Loader struct {
	prices    ports.PriceProvider
	sentiment ports.SentimentProvider
	cache     ports.SeriesCache
}

// New crea un Loader. La cache puede ser nil (sin fallback ni modo offline).
func New(prices ports.PriceProvider, sentiment ports.SentimentProvider, cache ports.SeriesCache) *Loader {
	return &Loader{prices: prices, sentiment: sentiment, cache: cache}
}

// Load devuelve la serie fusionada desde fromYear. Con offline=true lee solo
// de la cache. Si la descarga falla y hay cache con datos, devuelve la cache
// con un warning; la descarga correcta reemplaza la cache (write-through).
func (l *Loader) Load(ctx context.Context, fromYear int, offline bool) ([]domain.SeriesPoint, error) {
	if offline {
		return l.loadCached(ctx, "offline mode")
	}

	series, err := l.fetchMerged(ctx, fromYear)
	if err != nil {
		if l.cache == nil {
			return nil, err
		}
		slog.Warn("fetch failed, falling back to cached series", "err", err)
		return l.loadCached(ctx, "fetch fallback")
	}

	if l.cache != nil {
		if err := l.cache.ReplaceSeries(ctx, series); err != nil {
			slog.Warn("could not update series cache", "err", err)
		}
	}

	return series, nil
}

// fetchMerged descarga ambos feeds y los fusiona por fecha.
func (l *Loader) fetchMerged(ctx context.Context, fromYear int) ([]domain.SeriesPoint, error) {
	sentiment, err := l.sentiment.FetchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("loader.Load: sentiment feed: %w", err)
	}

	prices, err := l.prices.FetchDailyPrices(ctx, fromYear)
	if err != nil {
		return nil, fmt.Errorf("loader.Load: price feed: %w", err)
	}

	series := Merge(prices, sentiment)
	if len(series) == 0 {
		return nil, fmt.Errorf("loader.Load: merged series is empty (prices: %d, sentiment: %d)",
			len(prices), len(sentiment))
	}

	slog.Info("series loaded",
		"days", len(series),
		"from", series[0].Date.Format("2006-01-02"),
		"to", series[len(series)-1].Date.Format("2006-01-02"),
	)
	return series, nil
}

func (l *Loader) loadCached(ctx context.Context, reason string) ([]domain.SeriesPoint, error) {
	if l.cache == nil {
		return nil, fmt.Errorf("loader.Load: no cache configured")
	}
	series, err := l.cache.LoadSeries(ctx)
	if err != nil {
		return nil, fmt.Errorf("loader.Load: read cache: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("loader.Load: cache is empty (%s)", reason)
	}
	slog.Info("using cached series", "reason", reason, "days", len(series))
	return series, nil
}

// Merge hace el inner join de ambos feeds por fecha natural y devuelve la
// serie ordenada ascendente. Fechas duplicadas dentro de un feed se resuelven
// quedándose con la última vista (los feeds garantizan unicidad en la
// práctica).
func Merge(prices []domain.PricePoint, sentiment []domain.SentimentPoint) []domain.SeriesPoint {
	const layout = "2006-01-02"

	priceByDate := make(map[string]domain.PricePoint, len(prices))
	for _, p := range prices {
		priceByDate[p.Date.Format(layout)] = p
	}

	var series []domain.SeriesPoint
	seen := make(map[string]int) // fecha → índice en series
	for _, s := range sentiment {
		key := s.Date.Format(layout)
		p, ok := priceByDate[key]
		if !ok {
			continue
		}
		point := domain.SeriesPoint{
			Date:           p.Date,
			Price:          p.Price,
			Sentiment:      s.Value,
			Classification: s.Classification,
		}
		if i, dup := seen[key]; dup {
			series[i] = point
			continue
		}
		seen[key] = len(series)
		series = append(series, point)
	}

	domain.SortSeries(series)
	return series
}
