package domain

// Position values the upstream platform reports for players. Anything else
// (IDP slots, offensive line in some league formats) is carried through
// verbatim and sorts after the known positions.
const (
	PositionQB  = "QB"
	PositionRB  = "RB"
	PositionWR  = "WR"
	PositionTE  = "TE"
	PositionK   = "K"
	PositionDEF = "DEF"
)

// Sentinel values substituted when a rostered player id is missing from the
// player directory. Roster counts are preserved; entries are never dropped.
const (
	UnknownPlayerName = "Unknown Player"
	UnknownPosition   = "UNK"
	FreeAgentTeam     = "FA"
)

// Player is one entry in the cached player directory. ID is a stable opaque
// identifier (zero-padded numeric string); unique within a directory snapshot.
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Position   string `json:"position"`
	Team       string `json:"team"`
	Status     string `json:"status,omitempty"`
	Height     string `json:"height,omitempty"`
	Weight     string `json:"weight,omitempty"`
	Age        int    `json:"age,omitempty"`
	Experience int    `json:"experience,omitempty"`
	Jersey     string `json:"jersey,omitempty"`
}

// NFLTeam is one entry in the cached NFL team list.
type NFLTeam struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Conference   string `json:"conference,omitempty"`
	Division     string `json:"division,omitempty"`
}

// ScheduleGame is one entry in the cached NFL schedule.
type ScheduleGame struct {
	Week    int    `json:"week"`
	Kickoff int64  `json:"kickoff"`
	Home    string `json:"home"`
	Away    string `json:"away"`
}

// RosterEntry is a raw roster record as returned by the upstream. It is not
// self-describing (no name or position); callers must cross-reference the
// player directory to render it.
type RosterEntry struct {
	ID             string `json:"id"`
	Status         string `json:"status,omitempty"`
	Salary         string `json:"salary,omitempty"`
	ContractYear   string `json:"contractYear,omitempty"`
	ContractStatus string `json:"contractStatus,omitempty"`
}

// RosterSlot classifies a rostered player into a display bucket.
type RosterSlot string

const (
	SlotActive RosterSlot = "active"
	SlotIR     RosterSlot = "ir"
	SlotTaxi   RosterSlot = "taxi"
)

// ProjectedPlayer is a directory record joined with its roster fields,
// ready for display. Salary and ContractYears are nil when the raw entry
// carried no parseable value, so renderers can distinguish "absent" from zero.
type ProjectedPlayer struct {
	Player
	RosterStatus   RosterSlot `json:"rosterStatus"`
	Salary         *float64   `json:"salary,omitempty"`
	ContractYears  *int       `json:"contractYears,omitempty"`
	ContractStatus string     `json:"contractStatus,omitempty"`
}

// League identifies a league on the upstream platform. Host may differ per
// league; it is resolved once after login and reused for every league-scoped
// request.
type League struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Host        string `json:"host,omitempty"`
	FranchiseID string `json:"franchiseId,omitempty"`
}
