package domain

import (
	"sort"
	"time"
)

// SeriesPoint es un día de la serie fusionada: precio de cierre de BTC y
// valor del índice Fear & Greed para esa fecha.
type SeriesPoint struct {
	Date           time.Time
	Price          float64
	Sentiment      int    // índice FNG, 0..100 (bajo = miedo, alto = codicia)
	Classification string // etiqueta del feed ("Extreme Fear", "Greed", ...)
}

// Year devuelve el año natural del punto.
func (p SeriesPoint) Year() int {
	return p.Date.Year()
}

// PricePoint es un día de precio crudo del feed de mercado, antes de fusionar.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// SentimentPoint es un día del índice Fear & Greed crudo, antes de fusionar.
type SentimentPoint struct {
	Date           time.Time
	Value          int
	Classification string
}

// SortSeries ordena la serie por fecha ascendente, in-place y estable.
func SortSeries(series []SeriesPoint) {
	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
}

// SeriesYears devuelve los años naturales presentes en la serie, ascendentes
// y sin duplicados.
func SeriesYears(series []SeriesPoint) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range series {
		if !seen[p.Year()] {
			seen[p.Year()] = true
			years = append(years, p.Year())
		}
	}
	sort.Ints(years)
	return years
}
