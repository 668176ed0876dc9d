package ports

import (
	"context"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// Notifier presenta el resultado del backtest al usuario.
type Notifier interface {
	// Notify muestra el informe completo. En la implementación de consola,
	// imprime las tablas formateadas.
	Notify(ctx context.Context, report domain.Report) error
}
