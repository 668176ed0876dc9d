package domain

// YearlyMetric es el rendimiento de la estrategia continua durante un año
// natural: equity al inicio y al final del grupo, beneficio y ROI.
type YearlyMetric struct {
	Year        int
	StartEquity float64
	EndEquity   float64
	Profit      float64
	ROI         float64 // porcentaje; 0 si StartEquity es 0 (guard div/0)
	Trades      int     // snapshots del año con acción distinta de HOLD
}

// OriginRun es el resultado de una simulación independiente que arranca con
// todo el capital el primer día disponible del año FromYear y corre hasta el
// final de la serie. Responde a "¿cuánto habría rendido invertir desde Y?".
type OriginRun struct {
	FromYear     int
	Capital      float64 // capital invertido al inicio
	FinalEquity  float64
	Benefit      float64 // FinalEquity - Capital
	AnnualProfit float64 // Benefit / ElapsedYears (o Benefit si elapsed <= 0)
	TotalROI     float64 // porcentaje
	AnnualROI    float64 // TotalROI / ElapsedYears (o TotalROI si elapsed <= 0)
	Ops          int     // operaciones totales
	ProfitPct    float64 // 100 si hubo operaciones, 0 si no
	PositiveOps  int     // aproximación: todo SELL cuenta como positivo
	NegativeOps  int     // aproximación: siempre 0 (ver nota en origins.go)
	ElapsedYears float64 // (última fecha - primera) / 365.25
}

// OptimalParams es el par de umbrales del grid que maximiza el ROI de un año
// aislado, junto con ese ROI.
type OptimalParams struct {
	Year          int
	BuyThreshold  int
	SellThreshold int
	MaxROI        float64
}
