package backtest

// optimizer.go — búsqueda exhaustiva de los umbrales que maximizan el ROI de
// cada año aislado. El grid por defecto (6 umbrales de compra × 4 de venta,
// 24 celdas) se re-simula entero por año: cada simulación es lineal en el
// tamaño del slice anual (<= 366 días), así que no compensa memoizar.

import (
	"math"
	"sort"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// Grid es el conjunto de pares de umbrales candidatos para el optimizador.
// Se recorre con compra en el bucle exterior y venta en el interior, ambos
// ascendentes; en caso de empate de ROI gana el primer par visto.
type Grid struct {
	Buy  []int
	Sell []int
}

// DefaultGrid devuelve el grid estándar de 24 combinaciones.
func DefaultGrid() Grid {
	return Grid{
		Buy:  []int{10, 20, 30, 40, 50, 60},
		Sell: []int{70, 80, 90, 95},
	}
}

// cells devuelve las celdas del grid en orden de iteración.
func (g Grid) cells() [][2]int {
	cells := make([][2]int, 0, len(g.Buy)*len(g.Sell))
	for _, b := range g.Buy {
		for _, s := range g.Sell {
			cells = append(cells, [2]int{b, s})
		}
	}
	return cells
}

// Optimize busca, para cada año natural de la serie, el par de umbrales del
// grid que maximiza el ROI simulando ese año de forma aislada con todo el
// capital. Devuelve una entrada por año, ascendente. Las celdas de cada año
// se evalúan en paralelo; la reducción respeta el orden del grid, así que el
// resultado es determinista.
func Optimize(
	series []domain.SeriesPoint,
	initialCapital float64,
	grid Grid,
	workers int,
) []domain.OptimalParams {
	if len(series) == 0 || len(grid.Buy) == 0 || len(grid.Sell) == 0 {
		return nil
	}

	groups := make(map[int][]domain.SeriesPoint)
	for _, p := range series {
		groups[p.Year()] = append(groups[p.Year()], p)
	}

	years := make([]int, 0, len(groups))
	for year := range groups {
		years = append(years, year)
	}
	sort.Ints(years)

	cells := grid.cells()

	var params []domain.OptimalParams
	for _, year := range years {
		slice := groups[year]
		if len(slice) == 0 {
			continue
		}

		rois := make([]float64, len(cells))
		forEachIndexed(len(cells), workers, func(i int) {
			rois[i] = cellROI(slice, initialCapital, cells[i][0], cells[i][1])
		})

		best := domain.OptimalParams{
			Year:   year,
			MaxROI: math.Inf(-1),
		}
		for i, cell := range cells {
			if rois[i] > best.MaxROI {
				best.MaxROI = rois[i]
				best.BuyThreshold = cell[0]
				best.SellThreshold = cell[1]
			}
		}
		params = append(params, best)
	}

	return params
}

// cellROI simula una celda del grid sobre el slice anual y devuelve el ROI
// total respecto al capital inicial.
func cellROI(slice []domain.SeriesPoint, capital float64, buy, sell int) float64 {
	snapshots, _ := Simulate(slice, capital, buy, sell)
	if len(snapshots) == 0 {
		return math.Inf(-1)
	}
	return (snapshots[len(snapshots)-1].Equity - capital) / capital * 100
}
