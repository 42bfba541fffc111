package roster

import (
	"sort"
	"strconv"
	"strings"

	"ffl-gateway-service/internal/domain"
)

// Raw roster status tokens used by the upstream platform.
const (
	statusTaxiSquad      = "TAXI_SQUAD"
	statusInjuredReserve = "INJURED_RESERVE"
	statusIRShort        = "IR"
)

// positionOrder fixes the display sort within each bucket. Unknown
// positions sort last, tie-broken by case-insensitive name.
var positionOrder = map[string]int{
	domain.PositionQB:  0,
	domain.PositionRB:  1,
	domain.PositionWR:  2,
	domain.PositionTE:  3,
	domain.PositionK:   4,
	domain.PositionDEF: 5,
}

// Buckets groups a projected roster for display.
type Buckets struct {
	Active []domain.ProjectedPlayer `json:"active"`
	IR     []domain.ProjectedPlayer `json:"ir"`
	Taxi   []domain.ProjectedPlayer `json:"taxi"`
}

// Totals aggregates the active bucket. HasSalaries and HasContracts are
// computed from the data itself, never from league metadata; they gate
// whether the salary/contract columns render at all.
type Totals struct {
	Salary        float64 `json:"salary"`
	ContractYears int     `json:"contractYears"`
	HasSalaries   bool    `json:"hasSalaries"`
	HasContracts  bool    `json:"hasContracts"`
}

// Project joins raw roster entries against the player directory. Every
// entry produces exactly one projected player: ids missing from the
// directory get sentinel fields rather than being dropped, so roster counts
// survive an incomplete directory.
func Project(entries []domain.RosterEntry, directory []domain.Player) []domain.ProjectedPlayer {
	byID := make(map[string]domain.Player, len(directory))
	for _, p := range directory {
		byID[p.ID] = p
	}

	projected := make([]domain.ProjectedPlayer, 0, len(entries))
	for _, entry := range entries {
		player, ok := byID[entry.ID]
		if !ok {
			player = domain.Player{
				ID:       entry.ID,
				Name:     domain.UnknownPlayerName,
				Position: domain.UnknownPosition,
				Team:     domain.FreeAgentTeam,
			}
		}
		projected = append(projected, domain.ProjectedPlayer{
			Player:         player,
			RosterStatus:   classify(entry.Status),
			Salary:         parseSalary(entry.Salary),
			ContractYears:  parseContractYears(entry.ContractYear),
			ContractStatus: entry.ContractStatus,
		})
	}
	return projected
}

// GroupAndSort splits projected players into their buckets and applies the
// display order inside each. Every player lands in exactly one bucket.
func GroupAndSort(players []domain.ProjectedPlayer) Buckets {
	var buckets Buckets
	for _, p := range players {
		switch p.RosterStatus {
		case domain.SlotTaxi:
			buckets.Taxi = append(buckets.Taxi, p)
		case domain.SlotIR:
			buckets.IR = append(buckets.IR, p)
		default:
			buckets.Active = append(buckets.Active, p)
		}
	}
	sortPlayers(buckets.Active)
	sortPlayers(buckets.IR)
	sortPlayers(buckets.Taxi)
	return buckets
}

// ComputeTotals sums the active bucket only; IR and taxi players never
// contribute even when they carry salary or contract fields.
func ComputeTotals(active []domain.ProjectedPlayer) Totals {
	var totals Totals
	for _, p := range active {
		if p.Salary != nil {
			totals.Salary += *p.Salary
			totals.HasSalaries = true
		}
		if p.ContractYears != nil {
			totals.ContractYears += *p.ContractYears
			totals.HasContracts = true
		}
		if p.ContractStatus != "" {
			totals.HasContracts = true
		}
	}
	return totals
}

func classify(status string) domain.RosterSlot {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case statusTaxiSquad:
		return domain.SlotTaxi
	case statusInjuredReserve, statusIRShort:
		return domain.SlotIR
	default:
		return domain.SlotActive
	}
}

func sortPlayers(players []domain.ProjectedPlayer) {
	sort.SliceStable(players, func(i, j int) bool {
		ri, rj := positionRank(players[i].Position), positionRank(players[j].Position)
		if ri != rj {
			return ri < rj
		}
		return strings.ToLower(players[i].Name) < strings.ToLower(players[j].Name)
	})
}

func positionRank(position string) int {
	if rank, ok := positionOrder[position]; ok {
		return rank
	}
	return len(positionOrder)
}

func parseSalary(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func parseContractYears(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
