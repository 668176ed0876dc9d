package ports

import (
	"context"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// PriceProvider obtiene la serie diaria de precios del activo.
type PriceProvider interface {
	// FetchDailyPrices devuelve el cierre diario desde el 1 de enero de
	// fromYear hasta hoy. Pagina automáticamente hasta cubrir el rango.
	FetchDailyPrices(ctx context.Context, fromYear int) ([]domain.PricePoint, error)
}

// SentimentProvider obtiene la serie histórica del índice Fear & Greed.
type SentimentProvider interface {
	// FetchIndex devuelve todo el histórico disponible del índice.
	FetchIndex(ctx context.Context) ([]domain.SentimentPoint, error)
}
