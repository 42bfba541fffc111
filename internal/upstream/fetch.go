package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"ffl-gateway-service/internal/domain"
)

// Typed fetchers over the export command. Each decodes the upstream payload,
// normalizes repeated elements through decodeList, and maps wire shapes to
// domain types so nothing downstream re-checks "is this an array".

// FetchPlayers retrieves the full player directory. No session required.
func (c *Client) FetchPlayers(ctx context.Context) ([]domain.Player, error) {
	body, err := c.Get(ctx, commandExport, map[string]string{"TYPE": "players", "DETAILS": "1", "JSON": "1"})
	if err != nil {
		return nil, err
	}
	var payload playersPayload
	if err := body.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	items, err := decodeList[playerJSON](payload.Players.Player)
	if err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	players := make([]domain.Player, 0, len(items))
	for _, item := range items {
		players = append(players, mapPlayer(item))
	}
	return players, nil
}

// FetchNFLTeams retrieves the NFL team list. No session required.
func (c *Client) FetchNFLTeams(ctx context.Context) ([]domain.NFLTeam, error) {
	body, err := c.Get(ctx, commandExport, map[string]string{"TYPE": "nflTeams", "JSON": "1"})
	if err != nil {
		return nil, err
	}
	var payload nflTeamsPayload
	if err := body.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode nfl teams: %w", err)
	}
	items, err := decodeList[nflTeamJSON](payload.NFLTeams.Team)
	if err != nil {
		return nil, fmt.Errorf("decode nfl teams: %w", err)
	}
	teams := make([]domain.NFLTeam, 0, len(items))
	for _, item := range items {
		teams = append(teams, mapNFLTeam(item))
	}
	return teams, nil
}

// FetchSchedule retrieves the NFL schedule for the client's year. No
// session required.
func (c *Client) FetchSchedule(ctx context.Context) ([]domain.ScheduleGame, error) {
	body, err := c.Get(ctx, commandExport, map[string]string{"TYPE": "nflSchedule", "JSON": "1"})
	if err != nil {
		return nil, err
	}
	var payload schedulePayload
	if err := body.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	items, err := decodeList[matchupJSON](payload.NFLSchedule.Matchup)
	if err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	games := make([]domain.ScheduleGame, 0, len(items))
	for _, item := range items {
		games = append(games, mapMatchup(item))
	}
	return games, nil
}

// FetchLeague retrieves league metadata, including the host that serves the
// league on multi-host deployments. Requires an armed session.
func (c *Client) FetchLeague(ctx context.Context, leagueID string) (domain.League, error) {
	if !c.IsAuthenticated() {
		return domain.League{}, ErrNotAuthenticated
	}
	body, err := c.Get(ctx, commandExport, map[string]string{"TYPE": "league", "L": leagueID, "JSON": "1"})
	if err != nil {
		return domain.League{}, err
	}
	var payload leaguePayload
	if err := body.Decode(&payload); err != nil {
		return domain.League{}, fmt.Errorf("decode league %s: %w", leagueID, err)
	}
	return mapLeague(payload.League, c.year), nil
}

// FetchRoster retrieves a franchise's raw roster entries. The league host is
// resolved first; the roster request does not start until it is known.
func (c *Client) FetchRoster(ctx context.Context, leagueID, franchiseID string) ([]domain.RosterEntry, error) {
	if !c.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	host, err := c.LeagueHost(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	args := map[string]string{"TYPE": "rosters", "L": leagueID, "JSON": "1"}
	if franchiseID != "" {
		args["FRANCHISE"] = franchiseID
	}
	body, err := c.GetHost(ctx, host, commandExport, args)
	if err != nil {
		return nil, err
	}
	var payload rostersPayload
	if err := body.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rosters %s: %w", leagueID, err)
	}
	franchises, err := decodeList[franchiseRosterJSON](payload.Rosters.Franchise)
	if err != nil {
		return nil, fmt.Errorf("decode rosters %s: %w", leagueID, err)
	}

	var entries []domain.RosterEntry
	for _, franchise := range franchises {
		if franchiseID != "" && franchise.ID != franchiseID {
			continue
		}
		players, err := decodeList[rosterPlayerJSON](franchise.Player)
		if err != nil {
			return nil, fmt.Errorf("decode roster %s/%s: %w", leagueID, franchise.ID, err)
		}
		for _, player := range players {
			entries = append(entries, mapRosterPlayer(player))
		}
	}
	return entries, nil
}

// FetchStandings passes through the league standings payload untouched; the
// display layer consumes the upstream's shape directly.
func (c *Client) FetchStandings(ctx context.Context, leagueID string) (json.RawMessage, error) {
	if !c.IsAuthenticated() {
		return nil, ErrNotAuthenticated
	}
	host, err := c.LeagueHost(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	body, err := c.GetHost(ctx, host, commandExport, map[string]string{"TYPE": "leagueStandings", "L": leagueID, "JSON": "1"})
	if err != nil {
		return nil, err
	}
	if !body.IsJSON() {
		return nil, fmt.Errorf("upstream: standings for league %s returned %q, expected JSON", leagueID, body.ContentType)
	}
	return json.RawMessage(body.Bytes), nil
}
