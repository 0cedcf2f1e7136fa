package web

import (
	"html/template"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/preston-bernstein/fpl-dashboard/internal/analytics"
	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

var printer = message.NewPrinter(language.English)

func formatInt(v int) string {
	return printer.Sprintf("%d", v)
}

func formatFixed(places int, v float64) string {
	if places < 0 {
		places = 0
	}
	return printer.Sprintf("%."+strconv.Itoa(places)+"f", v)
}

func formatMoney(v float64) string {
	return printer.Sprintf("£%.1fm", v)
}

func formatPct(v float64) string {
	return printer.Sprintf("%.1f%%", v)
}

type leaderTable struct {
	Label  string
	Places int
	Unit   string
	Rows   []analytics.Leader
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"int":   formatInt,
		"fixed": formatFixed,
		"money": formatMoney,
		"pct":   formatPct,
		"badge": league.TeamBadge,
		"join":  func(v []string) string { return strings.Join(v, ", ") },
		"leaders": func(label string, places int, unit string, rows []analytics.Leader) leaderTable {
			return leaderTable{Label: label, Places: places, Unit: unit, Rows: rows}
		},
	}
}
