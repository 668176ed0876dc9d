package domain

// Report agrupa las cuatro tablas que produce el motor de backtesting para la
// capa de presentación. El motor no redondea ni formatea: eso es cosa del
// consumidor.
type Report struct {
	Capital   float64
	Snapshots []DailySnapshot
	Trades    []Trade
	Yearly    []YearlyMetric
	Origins   []OriginRun
	Optimal   []OptimalParams // vacío si no se pidió optimización
}

// FinalEquity devuelve la equity del último snapshot, o 0 si no hay datos.
func (r Report) FinalEquity() float64 {
	if len(r.Snapshots) == 0 {
		return 0
	}
	return r.Snapshots[len(r.Snapshots)-1].Equity
}

// TotalProfit devuelve el beneficio total de la estrategia continua.
func (r Report) TotalProfit() float64 {
	return r.FinalEquity() - r.Capital
}

// TotalROI devuelve el ROI total en porcentaje, 0 si el capital es 0.
func (r Report) TotalROI() float64 {
	if r.Capital <= 0 {
		return 0
	}
	return r.TotalProfit() / r.Capital * 100
}
