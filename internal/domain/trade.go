package domain

import "time"

// Action es la decisión tomada por la estrategia en un día simulado.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Trade es una operación ejecutada por el simulador. Inmutable una vez
// registrada; el log de trades pertenece a una única simulación.
type Trade struct {
	ID        string // uuid asignado al registrar la operación
	Date      time.Time
	Action    Action
	Price     float64
	Sentiment int
	AmountUSD float64 // USD gastados (BUY) o recibidos (SELL)
	AmountBTC float64 // BTC comprados (BUY) o vendidos (SELL)
}

// DailySnapshot es el estado diario emitido por el simulador, se opere o no.
// Invariante: Equity == USDBalance + BTCHeld*Price en todo snapshot.
type DailySnapshot struct {
	Date       time.Time
	Price      float64
	Sentiment  int
	Equity     float64
	BTCHeld    float64
	USDBalance float64
	Action     Action
}
