package upstream

import (
	"strconv"
	"strings"

	"ffl-gateway-service/internal/domain"
)

func mapPlayer(p playerJSON) domain.Player {
	return domain.Player{
		ID:         strings.TrimSpace(p.ID),
		Name:       strings.TrimSpace(p.Name),
		Position:   strings.TrimSpace(p.Position),
		Team:       mapTeamAbbrev(p.Team),
		Status:     strings.TrimSpace(p.Status),
		Height:     strings.TrimSpace(p.Height),
		Weight:     strings.TrimSpace(p.Weight),
		Age:        atoiOrZero(p.Age),
		Experience: atoiOrZero(p.Experience),
		Jersey:     strings.TrimSpace(p.Jersey),
	}
}

func mapNFLTeam(t nflTeamJSON) domain.NFLTeam {
	return domain.NFLTeam{
		ID:           strings.TrimSpace(t.ID),
		Name:         strings.TrimSpace(t.Name),
		Abbreviation: strings.TrimSpace(t.Abbreviation),
		Conference:   strings.TrimSpace(t.Conference),
		Division:     strings.TrimSpace(t.Division),
	}
}

func mapMatchup(m matchupJSON) domain.ScheduleGame {
	return domain.ScheduleGame{
		Week:    atoiOrZero(m.Week),
		Kickoff: int64(atoiOrZero(m.Kickoff)),
		Home:    mapTeamAbbrev(m.Home),
		Away:    mapTeamAbbrev(m.Away),
	}
}

func mapLeague(l leagueJSON, year int) domain.League {
	return domain.League{
		ID:          strings.TrimSpace(l.ID),
		Name:        strings.TrimSpace(l.Name),
		Year:        year,
		Host:        normalizeHost(l.BaseURL),
		FranchiseID: strings.TrimSpace(l.FranchiseID),
	}
}

func mapRosterPlayer(p rosterPlayerJSON) domain.RosterEntry {
	return domain.RosterEntry{
		ID:             strings.TrimSpace(p.ID),
		Status:         strings.TrimSpace(p.Status),
		Salary:         strings.TrimSpace(p.Salary),
		ContractYear:   strings.TrimSpace(p.ContractYear),
		ContractStatus: strings.TrimSpace(p.ContractStatus),
	}
}

// mapTeamAbbrev folds the empty and wildcard team markers into "FA".
func mapTeamAbbrev(team string) string {
	team = strings.TrimSpace(team)
	if team == "" || team == "*" {
		return domain.FreeAgentTeam
	}
	return team
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return n
}
