package ports

import (
	"context"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// SeriesCache persiste la última serie fusionada descargada, para poder
// operar sin red cuando los feeds fallan o en modo offline.
type SeriesCache interface {
	// ReplaceSeries sustituye la serie cacheada por la dada.
	ReplaceSeries(ctx context.Context, series []domain.SeriesPoint) error

	// LoadSeries devuelve la serie cacheada ordenada por fecha ascendente.
	LoadSeries(ctx context.Context) ([]domain.SeriesPoint, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
