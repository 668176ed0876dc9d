package domain

// Portfolio es el estado de la cartera durante una simulación: o todo en USD
// o todo en BTC tras la primera operación (estrategia binaria all-in/all-out).
// Solo el simulador lo muta, una vez por día simulado.
type Portfolio struct {
	USD float64
	BTC float64
}

// Equity devuelve el valor total de la cartera al precio dado.
func (p Portfolio) Equity(price float64) float64 {
	return p.USD + p.BTC*price
}

// BuyAll convierte el 100% del USD a BTC al precio dado y devuelve los BTC
// comprados. No hace nada si no hay USD.
func (p *Portfolio) BuyAll(price float64) float64 {
	bought := p.USD / price
	p.BTC = bought
	p.USD = 0
	return bought
}

// SellAll convierte el 100% del BTC a USD al precio dado y devuelve los USD
// recibidos. No hace nada si no hay BTC.
func (p *Portfolio) SellAll(price float64) float64 {
	received := p.BTC * price
	p.USD = received
	p.BTC = 0
	return received
}
