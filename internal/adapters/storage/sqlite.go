package storage

// sqlite.go — cache local de la serie fusionada.
//
// Guarda la última descarga completa (fecha, precio, índice) para poder
// ejecutar backtests sin red cuando Binance o alternative.me fallan, o en
// modo -offline. Una fila por fecha; cada descarga reemplaza la serie entera,
// el histórico no crece.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/fngbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por día de la serie fusionada precio + índice
CREATE TABLE IF NOT EXISTS series (
    date           TEXT PRIMARY KEY, -- YYYY-MM-DD
    price          REAL    NOT NULL,
    sentiment      INTEGER NOT NULL,
    classification TEXT    NOT NULL DEFAULT '',
    fetched_at     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_series_date ON series(date ASC);
`

const dateLayout = "2006-01-02"

// SQLiteCache implementa ports.SeriesCache usando SQLite (pure Go, sin CGo).
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache abre (o crea) la base de datos en la ruta dada y aplica el
// schema.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteCache: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteCache: apply schema: %w", err)
	}

	return &SQLiteCache{db: db}, nil
}

// ReplaceSeries sustituye la serie cacheada por la dada, en una transacción.
func (c *SQLiteCache) ReplaceSeries(ctx context.Context, series []domain.SeriesPoint) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.ReplaceSeries: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM series`); err != nil {
		return fmt.Errorf("storage.ReplaceSeries: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO series (date, price, sentiment, classification, fetched_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.ReplaceSeries: prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range series {
		_, err := stmt.ExecContext(ctx,
			p.Date.Format(dateLayout), p.Price, p.Sentiment, p.Classification, now)
		if err != nil {
			return fmt.Errorf("storage.ReplaceSeries: insert %s: %w",
				p.Date.Format(dateLayout), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.ReplaceSeries: commit: %w", err)
	}
	return nil
}

// LoadSeries devuelve la serie cacheada ordenada por fecha ascendente.
// Devuelve vacío sin error si la cache está vacía.
func (c *SQLiteCache) LoadSeries(ctx context.Context) ([]domain.SeriesPoint, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT date, price, sentiment, classification
		FROM series
		ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadSeries: query: %w", err)
	}
	defer rows.Close()

	var series []domain.SeriesPoint
	for rows.Next() {
		var dateStr string
		var p domain.SeriesPoint
		if err := rows.Scan(&dateStr, &p.Price, &p.Sentiment, &p.Classification); err != nil {
			return nil, fmt.Errorf("storage.LoadSeries: scan: %w", err)
		}
		p.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("storage.LoadSeries: date %q: %w", dateStr, err)
		}
		series = append(series, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.LoadSeries: rows: %w", err)
	}
	return series, nil
}

// Close cierra la conexión a la base de datos.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
