package cdf

import (
	"strings"

	"github.com/preston-bernstein/fpl-dashboard/internal/domain/league"
)

func mapManager(externalID string, p map[string]any) league.Manager {
	f, _ := toFloat(p["entryId"])
	return league.Manager{
		ExternalID:       externalID,
		EntryID:          int64(f),
		ManagerName:      str(p, "managerName", league.UnknownManager),
		TeamName:         str(p, "teamName", ""),
		OverallPoints:    integer(p, "overallPoints"),
		OverallRank:      integer(p, "overallRank"),
		LeagueRank:       integer(p, "leagueRank"),
		TeamValue:        num(p, "teamValue"),
		ConsistencyScore: num(p, "consistencyScore"),
		AvgPointsPerWeek: num(p, "averagePointsPerWeek"),
		PointsStdDev:     num(p, "pointsStdDev"),
		TeamValueGrowth:  num(p, "teamValueGrowth"),
		TotalTransfers:   integer(p, "totalTransfers"),
	}
}

func mapPerformance(externalID string, p map[string]any) league.GameweekPerformance {
	return league.GameweekPerformance{
		Gameweek:     trailingNumber(externalID, "_gw"),
		Points:       integer(p, "points"),
		TotalPoints:  integer(p, "totalPoints"),
		Rank:         integer(p, "overallRank"),
		Transfers:    integer(p, "transfers"),
		TransferCost: integer(p, "transferCost"),
	}
}

func mapTeamPreference(p map[string]any) league.TeamPreference {
	return league.TeamPreference{
		ManagerID:          relation(p, "manager"),
		TeamID:             relation(p, "team"),
		TotalPlayersUsed:   integer(p, "totalPlayersUsed"),
		TotalPoints:        integer(p, "totalPoints"),
		AvgPointsPerPlayer: num(p, "averagePointsPerPlayer"),
		SuccessRate:        num(p, "successRate"),
	}
}

func mapTransfer(externalID string, p map[string]any) league.Transfer {
	return league.Transfer{
		ExternalID:          externalID,
		ManagerID:           relation(p, "manager"),
		Gameweek:            trailingNumber(relation(p, "gameweek"), "_"),
		PlayerInID:          relation(p, "playerIn"),
		PlayerOutID:         relation(p, "playerOut"),
		TransferCost:        integer(p, "transferCost"),
		PlayerInPrice:       num(p, "playerInPrice"),
		PlayerOutPrice:      num(p, "playerOutPrice"),
		PointsGainedNext3GW: integer(p, "pointsGainedNext3GW"),
		WasSuccessful:       boolean(p, "wasSuccessful"),
		NetBenefit:          num(p, "netBenefit"),
	}
}

func mapPlayer(externalID string, p map[string]any) league.Player {
	return league.Player{
		ExternalID: externalID,
		Name:       str(p, "webName", league.UnknownPlayer),
		FullName:   str(p, "fullName", ""),
		TeamID:     relation(p, "team"),
		Position:   str(p, "elementType", ""),
	}
}

func mapPlayerPoints(cols map[string]any) league.PlayerGameweekPoints {
	return league.PlayerGameweekPoints{
		PlayerID:    integer(cols, "player_id"),
		Gameweek:    integer(cols, "gameweek"),
		TotalPoints: integer(cols, "total_points"),
		Minutes:     integer(cols, "minutes"),
		GoalsScored: integer(cols, "goals_scored"),
		Assists:     integer(cols, "assists"),
	}
}

// performancePrefix derives the node prefix for a manager's gameweek rows:
// manager_42 -> performance_42_.
func performancePrefix(managerExternalID string) (string, error) {
	parts := strings.Split(managerExternalID, "_")
	if len(parts) < 2 || parts[1] == "" {
		return "", &InvalidIDError{Kind: "manager", ID: managerExternalID}
	}
	return prefixPerformance + parts[1] + "_", nil
}
