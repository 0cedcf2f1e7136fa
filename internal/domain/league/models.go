package league

import (
	"strconv"
	"time"
)

// Manager is one league entrant with season aggregates.
type Manager struct {
	ExternalID       string  `json:"externalId"`
	EntryID          int64   `json:"entryId"`
	ManagerName      string  `json:"managerName"`
	TeamName         string  `json:"teamName"`
	OverallPoints    int     `json:"overallPoints"`
	OverallRank      int     `json:"overallRank"`
	LeagueRank       int     `json:"leagueRank"`
	TeamValue        float64 `json:"teamValue"`
	ConsistencyScore float64 `json:"consistencyScore"`
	AvgPointsPerWeek float64 `json:"avgPointsPerWeek"`
	PointsStdDev     float64 `json:"pointsStdDev"`
	TeamValueGrowth  float64 `json:"teamValueGrowth"`
	TotalTransfers   int     `json:"totalTransfers"`
}

// GameweekPerformance is a manager's result for a single gameweek.
type GameweekPerformance struct {
	Gameweek     int `json:"gameweek"`
	Points       int `json:"points"`
	TotalPoints  int `json:"totalPoints"`
	Rank         int `json:"rank"`
	Transfers    int `json:"transfers"`
	TransferCost int `json:"transferCost"`
}

// TeamPreference aggregates how much a manager relied on one Premier League team.
type TeamPreference struct {
	ManagerID          string  `json:"managerId"`
	TeamID             string  `json:"teamId"`
	TotalPlayersUsed   int     `json:"totalPlayersUsed"`
	TotalPoints        int     `json:"totalPoints"`
	AvgPointsPerPlayer float64 `json:"avgPointsPerPlayer"`
	SuccessRate        float64 `json:"successRate"`
}

// Transfer is a single player swap with its evaluated outcome.
type Transfer struct {
	ExternalID          string  `json:"externalId"`
	ManagerID           string  `json:"managerId"`
	Gameweek            int     `json:"gameweek"`
	PlayerInID          string  `json:"playerInId"`
	PlayerOutID         string  `json:"playerOutId"`
	TransferCost        int     `json:"transferCost"`
	PlayerInPrice       float64 `json:"playerInPrice"`
	PlayerOutPrice      float64 `json:"playerOutPrice"`
	PointsGainedNext3GW int     `json:"pointsGainedNext3GW"`
	WasSuccessful       bool    `json:"wasSuccessful"`
	NetBenefit          float64 `json:"netBenefit"`
}

// Player is a Premier League player keyed by node external id.
type Player struct {
	ExternalID string `json:"externalId"`
	Name       string `json:"name"`
	FullName   string `json:"fullName"`
	TeamID     string `json:"teamId"`
	Position   string `json:"position"`
}

// Players maps player external id to player.
type Players map[string]Player

// NameOf returns the short name for id, or "Unknown" when the player is missing.
func (p Players) NameOf(id string) string {
	if player, ok := p[id]; ok {
		return player.Name
	}
	return UnknownPlayer
}

// Teams maps team external id to team name.
type Teams map[string]string

// NameOf returns the team name for id, falling back to the id itself.
func (t Teams) NameOf(id string) string {
	if name, ok := t[id]; ok {
		return name
	}
	return id
}

// Pick is one player selected by a manager in a gameweek.
type Pick struct {
	ManagerEntryID int64 `json:"managerEntryId"`
	Gameweek       int   `json:"gameweek"`
	PlayerID       int   `json:"playerId"`
	Multiplier     int   `json:"multiplier"`
}

// PlayerKey is the player node external id the pick refers to.
func (p Pick) PlayerKey() string {
	return PlayerKeyPrefix + strconv.Itoa(p.PlayerID)
}

// PickSet carries decoded picks and the number of rows that could not be parsed.
type PickSet struct {
	Picks       []Pick `json:"picks"`
	ParseErrors int    `json:"parseErrors"`
}

// PlayerGameweekPoints is a player's scoring line for one gameweek.
type PlayerGameweekPoints struct {
	PlayerID    int `json:"playerId"`
	Gameweek    int `json:"gameweek"`
	TotalPoints int `json:"totalPoints"`
	Minutes     int `json:"minutes"`
	GoalsScored int `json:"goalsScored"`
	Assists     int `json:"assists"`
}

// Snapshot is the league state persisted to disk and used as a stale fallback.
type Snapshot struct {
	FetchedAt       time.Time        `json:"fetchedAt"`
	Managers        []Manager        `json:"managers"`
	Teams           Teams            `json:"teams"`
	Players         Players          `json:"players,omitempty"`
	Transfers       []Transfer       `json:"transfers,omitempty"`
	TeamPreferences []TeamPreference `json:"teamPreferences,omitempty"`
}

const (
	UnknownManager  = "Unknown"
	UnknownPlayer   = "Unknown"
	UnknownTeam     = "Unknown Team"
	PlayerKeyPrefix = "player_"
)
