// Package feargreed implementa ports.SentimentProvider sobre la API de
// alternative.me, que publica el histórico completo del índice Fear & Greed.
package feargreed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

const (
	defaultBase = "https://api.alternative.me"

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client es el HTTP client de alternative.me.
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
		http: &http.Client{Timeout: 15 * time.Second},
		base: base,
		// Una sola petición por invocación; el limiter solo protege de
		// reintentos agresivos.
		limiter: rate.NewLimiter(2, 1),
	}
}

// fngResponse es el envelope JSON de /fng/. Los valores numéricos llegan
// como strings.
type fngResponse struct {
	Data []struct {
		Value          string `json:"value"`
		Classification string `json:"value_classification"`
		Timestamp      string `json:"timestamp"`
	} `json:"data"`
}

// FetchIndex descarga el histórico completo del índice (limit=0). Cada
// entrada se convierte a fecha natural UTC a partir del timestamp unix.
func (c *Client) FetchIndex(ctx context.Context) ([]domain.SentimentPoint, error) {
	var resp fngResponse
	if err := c.get(ctx, c.base+"/fng/?limit=0&format=json", &resp); err != nil {
		return nil, fmt.Errorf("feargreed.FetchIndex: %w", err)
	}

	points := make([]domain.SentimentPoint, 0, len(resp.Data))
	for _, entry := range resp.Data {
		value, err := strconv.Atoi(entry.Value)
		if err != nil {
			return nil, fmt.Errorf("feargreed.FetchIndex: value %q: %w", entry.Value, err)
		}
		unix, err := strconv.ParseInt(entry.Timestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("feargreed.FetchIndex: timestamp %q: %w", entry.Timestamp, err)
		}
		ts := time.Unix(unix, 0).UTC()
		points = append(points, domain.SentimentPoint{
			Date:           time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC),
			Value:          value,
			Classification: entry.Classification,
		})
	}

	slog.Debug("feargreed fetch complete", "days", len(points))
	return points, nil
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
			slog.Warn("feargreed retryable error", "status", resp.StatusCode, "attempt", attempt+1)
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
