package cache

import "ffl-gateway-service/internal/domain"

// Per-collection item validators. An item failing its check is dropped from
// the read result and counted; the read itself still succeeds.

func validPlayer(p domain.Player) bool {
	return p.ID != "" && p.Name != "" && p.Position != "" && p.Team != ""
}

func validNFLTeam(t domain.NFLTeam) bool {
	return t.ID != "" && t.Abbreviation != ""
}

func validScheduleGame(g domain.ScheduleGame) bool {
	return g.Week > 0 && g.Home != "" && g.Away != ""
}
