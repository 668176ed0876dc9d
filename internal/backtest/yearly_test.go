package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

func snap(date time.Time, equity float64, action domain.Action) domain.DailySnapshot {
	return domain.DailySnapshot{Date: date, Equity: equity, Action: action}
}

func TestAggregateByYear_GroupsAndOrders(t *testing.T) {
	snapshots := []domain.DailySnapshot{
		snap(day(2021, time.February, 1), 1100, domain.ActionBuy),
		snap(day(2020, time.January, 1), 1000, domain.ActionHold),
		snap(day(2020, time.December, 31), 1200, domain.ActionSell),
		snap(day(2021, time.November, 30), 1500, domain.ActionHold),
	}

	metrics := AggregateByYear(snapshots)
	require.Len(t, metrics, 2)

	assert.Equal(t, 2020, metrics[0].Year)
	assert.InDelta(t, 1000, metrics[0].StartEquity, 1e-9)
	assert.InDelta(t, 1200, metrics[0].EndEquity, 1e-9)
	assert.InDelta(t, 200, metrics[0].Profit, 1e-9)
	assert.InDelta(t, 20, metrics[0].ROI, 1e-9)
	assert.Equal(t, 1, metrics[0].Trades)

	assert.Equal(t, 2021, metrics[1].Year)
	assert.InDelta(t, 1100, metrics[1].StartEquity, 1e-9)
	assert.InDelta(t, 1500, metrics[1].EndEquity, 1e-9)
	assert.Equal(t, 1, metrics[1].Trades)
}

func TestAggregateByYear_CountsNonHoldPerYear(t *testing.T) {
	var snapshots []domain.DailySnapshot
	for d := 1; d <= 10; d++ {
		action := domain.ActionHold
		if d%3 == 0 {
			action = domain.ActionBuy
		}
		snapshots = append(snapshots, snap(day(2022, time.April, d), 1000, action))
	}

	metrics := AggregateByYear(snapshots)
	require.Len(t, metrics, 1)
	assert.Equal(t, 3, metrics[0].Trades)
}

func TestAggregateByYear_ZeroStartEquityGuard(t *testing.T) {
	snapshots := []domain.DailySnapshot{
		snap(day(2020, time.January, 1), 0, domain.ActionHold),
		snap(day(2020, time.June, 1), 0, domain.ActionHold),
	}

	metrics := AggregateByYear(snapshots)
	require.Len(t, metrics, 1)
	assert.Zero(t, metrics[0].ROI)
}

func TestAggregateByYear_Empty(t *testing.T) {
	assert.Empty(t, AggregateByYear(nil))
}

func TestAggregateByYear_OneRowPerYear(t *testing.T) {
	var snapshots []domain.DailySnapshot
	for year := 2018; year <= 2023; year++ {
		for m := time.January; m <= time.March; m++ {
			snapshots = append(snapshots, snap(day(year, m, 15), 1000, domain.ActionHold))
		}
	}

	metrics := AggregateByYear(snapshots)
	require.Len(t, metrics, 6)
	for i, m := range metrics {
		assert.Equal(t, 2018+i, m.Year)
	}
}
