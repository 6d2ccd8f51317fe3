package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/basicstrategy/internal/game"
	"github.com/lox/basicstrategy/internal/rules"
	"github.com/lox/basicstrategy/internal/statistics"
	"github.com/lox/basicstrategy/internal/strategy"
)

const cellWidth = 7

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			Width(cellWidth).
			Align(lipgloss.Center)

	rowLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(cellWidth)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	actionColors = map[game.Action]lipgloss.Color{
		game.Hit:    lipgloss.Color("9"),
		game.Stand:  lipgloss.Color("10"),
		game.Double: lipgloss.Color("11"),
		game.Split:  lipgloss.Color("14"),
	}
)

func renderHeader(r rules.Rules, res *strategy.Result) string {
	return titleStyle.Render(r.String()) + "\n" +
		mutedStyle.Render(fmt.Sprintf("run %s: %d cells, %d failed, seed %d, %s",
			res.RunID, res.Cells, res.Failed, res.Seed, res.Elapsed.Round(time.Millisecond)))
}

// renderTable draws one grid per category: totals down, up-cards across,
// best action in each cell.
func renderTable(t *strategy.Table, showEV bool) string {
	var sections []string
	for _, cat := range strategy.Categories {
		totals := totalsFor(t, cat)
		if len(totals) == 0 {
			continue
		}

		header := []string{rowLabelStyle.Render(cat.String())}
		for _, up := range strategy.Upcards {
			header = append(header, headerStyle.Render(upcardName(up.Value())))
		}
		rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

		for _, total := range totals {
			row := []string{rowLabelStyle.Render(fmt.Sprint(total))}
			for _, up := range strategy.Upcards {
				row = append(row, renderCell(t, strategy.Key{Category: cat, Total: total, Upcard: up}, showEV))
			}
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
		sections = append(sections, lipgloss.JoinVertical(lipgloss.Left, rows...))
	}

	legend := mutedStyle.Render("H hit  S stand  D double  P split")
	return strings.Join(append(sections, legend), "\n\n")
}

func renderCell(t *strategy.Table, k strategy.Key, showEV bool) string {
	entry, ok := t.Lookup(k.Category, k.Total, k.Upcard)
	if !ok {
		return cellStyle.Render("")
	}
	best, ok := entry.BestAction()
	if !ok || len(entry.Failed) == len(entry.EV) {
		return cellStyle.Inherit(mutedStyle).Render("-")
	}

	text := best.Short()
	if showEV {
		text = fmt.Sprintf("%s%+.2f", best.Short(), entry.EV[best])
	}
	return cellStyle.Foreground(actionColors[best]).Render(text)
}

func totalsFor(t *strategy.Table, cat strategy.Category) []int {
	var totals []int
	for _, k := range t.Keys() {
		if k.Category != cat {
			continue
		}
		if n := len(totals); n == 0 || totals[n-1] != k.Total {
			totals = append(totals, k.Total)
		}
	}
	return totals
}

func upcardName(value int) string {
	if value == 11 {
		return "A"
	}
	return fmt.Sprint(value)
}

func renderEV(r rules.Rules, player, dealer game.Hand, action game.Action, stats *statistics.Statistics) string {
	lo, hi := stats.ConfidenceInterval95()
	var b strings.Builder
	b.WriteString(titleStyle.Render(r.String()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s vs %s\n", action, player, dealer)
	fmt.Fprintf(&b, "EV %s  (95%% CI %+.4f .. %+.4f)\n",
		cellStyle.UnsetWidth().Foreground(actionColors[action]).Render(fmt.Sprintf("%+.4f", stats.Mean())), lo, hi)
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d rounds: %d won, %d lost, %d pushed, %d naturals (%d excluded)",
		stats.Trials, stats.Wins, stats.Losses, stats.Pushes, stats.Naturals, stats.Skipped)))
	return b.String()
}
