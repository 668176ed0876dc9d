package backtest

import (
	"sort"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// AggregateByYear agrupa los snapshots diarios por año natural y calcula las
// métricas de rendimiento de cada año: equity inicial y final (en orden de
// fecha), beneficio, ROI y número de operaciones. Devuelve una entrada por
// año presente, en orden ascendente. Una entrada vacía produce salida vacía.
func AggregateByYear(snapshots []domain.DailySnapshot) []domain.YearlyMetric {
	if len(snapshots) == 0 {
		return nil
	}

	groups := make(map[int][]domain.DailySnapshot)
	for _, s := range snapshots {
		year := s.Date.Year()
		groups[year] = append(groups[year], s)
	}

	years := make([]int, 0, len(groups))
	for year := range groups {
		years = append(years, year)
	}
	sort.Ints(years)

	metrics := make([]domain.YearlyMetric, 0, len(years))
	for _, year := range years {
		group := groups[year]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		start := group[0].Equity
		end := group[len(group)-1].Equity

		// Guard div/0: con capital inicial positivo no debería ocurrir,
		// pero el agregador no debe romperse con entradas degeneradas.
		roi := 0.0
		if start != 0 {
			roi = (end - start) / start * 100
		}

		trades := 0
		for _, s := range group {
			if s.Action != domain.ActionHold {
				trades++
			}
		}

		metrics = append(metrics, domain.YearlyMetric{
			Year:        year,
			StartEquity: start,
			EndEquity:   end,
			Profit:      end - start,
			ROI:         roi,
			Trades:      trades,
		})
	}

	return metrics
}
