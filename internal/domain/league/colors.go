package league

import (
	"fmt"
	"html"
	"html/template"
)

// DefaultTeamColor is used for teams without a known kit color.
const DefaultTeamColor = "#38003c"

// TeamColors holds a club's primary and secondary kit colors.
type TeamColors struct {
	Primary   string
	Secondary string
}

var premierLeagueColors = map[string]TeamColors{
	"Arsenal":        {"#EF0107", "#FFFFFF"},
	"Aston Villa":    {"#670E36", "#95BFE5"},
	"Bournemouth":    {"#DA291C", "#000000"},
	"Brentford":      {"#E30613", "#FBB800"},
	"Brighton":       {"#0057B8", "#FFCD00"},
	"Chelsea":        {"#034694", "#FFFFFF"},
	"Crystal Palace": {"#1B458F", "#C4122E"},
	"Everton":        {"#003399", "#FFFFFF"},
	"Fulham":         {"#FFFFFF", "#CC0000"},
	"Liverpool":      {"#C8102E", "#00B2A9"},
	"Man City":       {"#6CABDD", "#1C2C5B"},
	"Man Utd":        {"#DA291C", "#FBE122"},
	"Newcastle":      {"#241F20", "#FFFFFF"},
	"Nott'm Forest":  {"#DD0000", "#FFFFFF"},
	"Spurs":          {"#132257", "#FFFFFF"},
	"West Ham":       {"#7A263A", "#1BB1E7"},
	"Wolves":         {"#FDB913", "#231F20"},
	"Leicester":      {"#003090", "#FDBE11"},
	"Leeds":          {"#FFCD00", "#1D428A"},
	"Southampton":    {"#D71920", "#130C0E"},
	"Ipswich":        {"#0033A0", "#FFFFFF"},
	"Luton":          {"#F78F1E", "#002D62"},
}

// ColorsFor returns the kit colors for a team name.
func ColorsFor(team string) TeamColors {
	if c, ok := premierLeagueColors[team]; ok {
		return c
	}
	return TeamColors{Primary: DefaultTeamColor, Secondary: "#FFFFFF"}
}

// TeamColor returns the primary color for a team name.
func TeamColor(team string) string {
	return ColorsFor(team).Primary
}

// TeamBadge renders a colored inline badge. Fulham's white kit needs dark text.
func TeamBadge(team string) template.HTML {
	text := "#FFFFFF"
	if team == "Fulham" {
		text = "#000000"
	}
	return template.HTML(fmt.Sprintf(
		`<span class="team-badge" style="background-color: %s; color: %s;">%s</span>`,
		TeamColor(team), text, html.EscapeString(team),
	))
}
