// Package binance implementa ports.PriceProvider sobre la API pública de
// Binance. Descarga klines diarios de BTCUSDT paginando en bloques de 1000
// velas desde el año de inicio configurado hasta hoy.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

const (
	defaultBase = "https://api.binance.com"

	symbol   = "BTCUSDT"
	interval = "1d"
	pageSize = 1000

	// Binance permite 1200 weight/min en /api/v3; klines pesa 1-2.
	// 10 req/s deja margen de sobra para la paginación histórica.
	klinesRatePerSec = 10

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond

	dayMillis = 24 * 60 * 60 * 1000
)

// Client es el HTTP client de Binance con rate limiting y retries.
type Client struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
}

// NewClient crea un Client con el base URL dado. Si está vacío usa el de
// producción.
func NewClient(base string) *Client {
	if base == "" {
		base = defaultBase
	}
	return &Client{
		http:    &http.Client{Timeout: 15 * time.Second},
		base:    base,
		limiter: rate.NewLimiter(klinesRatePerSec, 5),
	}
}

// FetchDailyPrices descarga el cierre diario de BTCUSDT desde el 1 de enero
// de fromYear hasta hoy, paginando hasta agotar el rango. Si Binance devuelve
// más de una vela para la misma fecha se queda con la última.
func (c *Client) FetchDailyPrices(ctx context.Context, fromYear int) ([]domain.PricePoint, error) {
	startTime := time.Date(fromYear, time.January, 1, 0, 0, 0, 0, time.UTC).UnixMilli()

	byDate := make(map[string]domain.PricePoint)
	pages := 0

	for {
		klines, err := c.fetchPage(ctx, startTime)
		if err != nil {
			return nil, fmt.Errorf("binance.FetchDailyPrices: page %d: %w", pages+1, err)
		}
		if len(klines) == 0 {
			break
		}
		pages++

		for _, k := range klines {
			point, err := k.toPoint()
			if err != nil {
				return nil, fmt.Errorf("binance.FetchDailyPrices: parse kline: %w", err)
			}
			byDate[point.Date.Format("2006-01-02")] = point
		}

		// Siguiente página: un día después del open de la última vela.
		startTime = klines[len(klines)-1].openTime + dayMillis
		if startTime > time.Now().UnixMilli() {
			break
		}
	}

	points := make([]domain.PricePoint, 0, len(byDate))
	for _, p := range byDate {
		points = append(points, p)
	}

	slog.Debug("binance fetch complete", "pages", pages, "days", len(points))
	return points, nil
}

// kline es una vela cruda de /api/v3/klines. La API devuelve arrays
// posicionales: [0] open time (ms), [4] close price (string).
type kline struct {
	openTime int64
	close    string
}

// UnmarshalJSON decodifica el array posicional quedándose solo con los
// campos que usamos.
func (k *kline) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < 5 {
		return fmt.Errorf("kline with %d fields, want >= 5", len(raw))
	}
	if err := json.Unmarshal(raw[0], &k.openTime); err != nil {
		return fmt.Errorf("open time: %w", err)
	}
	if err := json.Unmarshal(raw[4], &k.close); err != nil {
		return fmt.Errorf("close price: %w", err)
	}
	return nil
}

// toPoint convierte la vela a un punto de precio con fecha a granularidad de
// día natural UTC.
func (k kline) toPoint() (domain.PricePoint, error) {
	price, err := strconv.ParseFloat(k.close, 64)
	if err != nil {
		return domain.PricePoint{}, fmt.Errorf("close %q: %w", k.close, err)
	}
	ts := time.UnixMilli(k.openTime).UTC()
	return domain.PricePoint{
		Date:  time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
		Price: price,
	}, nil
}

// fetchPage descarga una página de klines empezando en startTime.
func (c *Client) fetchPage(ctx context.Context, startTime int64) ([]kline, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("startTime", strconv.FormatInt(startTime, 10))
	q.Set("limit", strconv.Itoa(pageSize))

	var klines []kline
	if err := c.get(ctx, c.base+"/api/v3/klines?"+q.Encode(), &klines); err != nil {
		return nil, err
	}
	return klines, nil
}

// get hace un GET con rate limiting y retries con backoff exponencial.
func (c *Client) get(ctx context.Context, url string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("status %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("binance retryable error", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			return fmt.Errorf("client error %d: %s", resp.StatusCode, string(body))
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("exhausted %d retries", maxRetries)
}

// sleep espera con backoff exponencial, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(math.Pow(2, float64(attempt))) * baseRetryWait
	select {
	case <-time.After(wait):
	case <-ctx.Done():
	}
}
