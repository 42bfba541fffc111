package upstream

import "encoding/json"

// Wire shapes for the export command. The upstream serializes nearly every
// field as a string regardless of its logical type; mapping to domain types
// happens in mapper.go.

type playersPayload struct {
	Players struct {
		Player json.RawMessage `json:"player"`
	} `json:"players"`
}

type playerJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	Status     string `json:"status"`
	Height     string `json:"height"`
	Weight     string `json:"weight"`
	Age        string `json:"age"`
	Experience string `json:"exp"`
	Jersey     string `json:"jersey"`
}

type nflTeamsPayload struct {
	NFLTeams struct {
		Team json.RawMessage `json:"team"`
	} `json:"nflTeams"`
}

type nflTeamJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbrev"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
}

type schedulePayload struct {
	NFLSchedule struct {
		Matchup json.RawMessage `json:"matchup"`
	} `json:"nflSchedule"`
}

type matchupJSON struct {
	Week    string `json:"week"`
	Kickoff string `json:"kickoff"`
	Home    string `json:"home"`
	Away    string `json:"away"`
}

type leaguePayload struct {
	League leagueJSON `json:"league"`
}

type leagueJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	BaseURL     string `json:"baseURL"`
	FranchiseID string `json:"franchise_id"`
}

type rostersPayload struct {
	Rosters struct {
		Franchise json.RawMessage `json:"franchise"`
	} `json:"rosters"`
}

type franchiseRosterJSON struct {
	ID     string          `json:"id"`
	Player json.RawMessage `json:"player"`
}

type rosterPlayerJSON struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	Salary         string `json:"salary"`
	ContractYear   string `json:"contractYear"`
	ContractStatus string `json:"contractStatus"`
}
