package notify

// console.go — presentación en consola del informe de backtest.
//
// Imprime las cuatro tablas del motor: resumen + anual, multi-origen
// (transpuesta, años como columnas, como la vista original), optimización y
// el historial de operaciones. Todo el redondeo vive aquí; el motor entrega
// valores crudos.

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/fngbot/internal/domain"
)

// Console implementa ports.Notifier.
type Console struct {
	out        io.Writer
	showTrades bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(showTrades bool) *Console {
	return &Console{out: os.Stdout, showTrades: showTrades}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, showTrades bool) *Console {
	return &Console{out: w, showTrades: showTrades}
}

// Notify imprime el informe completo.
func (c *Console) Notify(_ context.Context, report domain.Report) error {
	if len(report.Snapshots) == 0 {
		fmt.Fprintf(c.out, "[%s] no data to report\n", time.Now().Format("15:04:05"))
		return nil
	}

	c.printSummary(report)
	c.printYearly(report.Yearly)
	c.printOrigins(report.Origins)

	if len(report.Optimal) > 0 {
		c.printOptimal(report.Optimal)
	}
	if c.showTrades {
		c.printTrades(report.Trades)
	}

	return nil
}

// printSummary imprime las métricas de cabecera de la estrategia continua.
func (c *Console) printSummary(report domain.Report) {
	fmt.Fprintf(c.out, "\n=== BTC FEAR & GREED — continuous strategy ===\n")
	fmt.Fprintf(c.out, "  Capital: $%s | Equity final: $%s | Beneficio: $%s | ROI: %.1f%%\n",
		money(report.Capital), money(report.FinalEquity()),
		money(report.TotalProfit()), report.TotalROI())
	fmt.Fprintf(c.out, "  Operaciones: %d | Días analizados: %d\n",
		len(report.Trades), len(report.Snapshots))
}

// printYearly imprime el resumen anual de la estrategia continua.
func (c *Console) printYearly(yearly []domain.YearlyMetric) {
	if len(yearly) == 0 {
		return
	}

	fmt.Fprintf(c.out, "\n--- Resumen anual (estrategia continua) ---\n")
	table := tablewriter.NewWriter(c.out)
	table.Header("Year", "Start Equity", "End Equity", "Profit/Loss", "ROI (%)", "Trades")

	for _, m := range yearly {
		table.Append(
			fmt.Sprintf("%d", m.Year),
			money(m.StartEquity),
			money(m.EndEquity),
			money(m.Profit),
			fmt.Sprintf("%.1f%%", m.ROI),
			fmt.Sprintf("%d", m.Trades),
		)
	}
	table.Render()
}

// printOrigins imprime la tabla comparativa multi-origen transpuesta: una
// columna por año de arranque, una fila por métrica.
func (c *Console) printOrigins(origins []domain.OriginRun) {
	if len(origins) == 0 {
		return
	}

	fmt.Fprintf(c.out, "\n--- Inversión independiente desde cada año ---\n")

	header := make([]string, 0, len(origins)+1)
	header = append(header, "")
	for _, o := range origins {
		header = append(header, fmt.Sprintf("Desde %d", o.FromYear))
	}

	rows := []struct {
		label string
		value func(domain.OriginRun) string
	}{
		{"Capital invertido", func(o domain.OriginRun) string { return money(o.Capital) }},
		{"Beneficio", func(o domain.OriginRun) string { return money(o.Benefit) }},
		{"Beneficio anual", func(o domain.OriginRun) string { return money(o.AnnualProfit) }},
		{"% total", func(o domain.OriginRun) string { return fmt.Sprintf("%.1f%%", o.TotalROI) }},
		{"% anual", func(o domain.OriginRun) string { return fmt.Sprintf("%.1f%%", o.AnnualROI) }},
		{"Nº operaciones", func(o domain.OriginRun) string { return fmt.Sprintf("%d", o.Ops) }},
		{"% profit", func(o domain.OriginRun) string { return fmt.Sprintf("%.0f%%", o.ProfitPct) }},
		{"Op. positivas", func(o domain.OriginRun) string { return fmt.Sprintf("%d", o.PositiveOps) }},
		{"Op. negativas", func(o domain.OriginRun) string { return fmt.Sprintf("%d", o.NegativeOps) }},
		{"Tiempo (años)", func(o domain.OriginRun) string { return fmt.Sprintf("%.1f", o.ElapsedYears) }},
	}

	table := tablewriter.NewWriter(c.out)
	table.Header(header)
	for _, row := range rows {
		cells := make([]string, 0, len(origins)+1)
		cells = append(cells, row.label)
		for _, o := range origins {
			cells = append(cells, row.value(o))
		}
		table.Append(cells)
	}
	table.Render()

	fmt.Fprintln(c.out, "  Op. positivas/negativas: aproximación — todo SELL cuenta como positiva")
}

// printOptimal imprime los umbrales óptimos por año.
func (c *Console) printOptimal(optimal []domain.OptimalParams) {
	fmt.Fprintf(c.out, "\n--- Umbrales óptimos por año (grid 6×4) ---\n")
	table := tablewriter.NewWriter(c.out)
	table.Header("Year", "Best Buy", "Best Sell", "Max ROI (%)")

	for _, p := range optimal {
		table.Append(
			fmt.Sprintf("%d", p.Year),
			fmt.Sprintf("%d", p.BuyThreshold),
			fmt.Sprintf("%d", p.SellThreshold),
			fmt.Sprintf("%.1f%%", p.MaxROI),
		)
	}
	table.Render()
}

// printTrades imprime el historial de operaciones.
func (c *Console) printTrades(trades []domain.Trade) {
	fmt.Fprintf(c.out, "\n--- Historial de operaciones ---\n")
	if len(trades) == 0 {
		fmt.Fprintln(c.out, "  sin operaciones con los parámetros actuales")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Action", "Price", "FNG", "USD", "BTC")

	for _, t := range trades {
		table.Append(
			t.Date.Format("2006-01-02"),
			string(t.Action),
			money(t.Price),
			fmt.Sprintf("%d", t.Sentiment),
			money(t.AmountUSD),
			fmt.Sprintf("%.4f", t.AmountBTC),
		)
	}
	table.Render()
}

// money formatea un valor en dólares sin decimales.
func money(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
