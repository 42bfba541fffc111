package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/domain"
	"ffl-gateway-service/internal/refresh"
	"ffl-gateway-service/internal/roster"
	"ffl-gateway-service/internal/upstream"
)

// Gateway is the slice of the upstream client the handlers use.
type Gateway interface {
	Login(ctx context.Context, username, password string) upstream.LoginResult
	Logout()
	IsAuthenticated() bool
	Get(ctx context.Context, command string, args map[string]string) (*upstream.Body, error)
	FetchLeague(ctx context.Context, leagueID string) (domain.League, error)
	FetchStandings(ctx context.Context, leagueID string) (json.RawMessage, error)
	FetchRoster(ctx context.Context, leagueID, franchiseID string) ([]domain.RosterEntry, error)
}

// Directory is the slice of the reference cache the handlers use.
type Directory interface {
	Players() ([]domain.Player, error)
	PlayerByID(id string) (domain.Player, bool, error)
	FilterPlayers(pred func(domain.Player) bool) ([]domain.Player, error)
	Metadata(name cache.Collection) (cache.Metadata, error)
}

// Handler wires HTTP routes to the gateway and the reference cache.
type Handler struct {
	gateway   Gateway
	directory Directory
	statusFn  func() refresh.Status
	logger    *slog.Logger
}

// NewHandler constructs a Handler. statusFn may be nil when the in-server
// refresh scheduler is disabled.
func NewHandler(gateway Gateway, directory Directory, statusFn func() refresh.Status, logger *slog.Logger) *Handler {
	return &Handler{
		gateway:   gateway,
		directory: directory,
		statusFn:  statusFn,
		logger:    logger,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the service can serve cached reference data.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	type collectionInfo struct {
		LastUpdated int64  `json:"lastUpdated,omitempty"`
		Error       string `json:"error,omitempty"`
	}
	collections := make(map[string]collectionInfo, len(refresh.Collections))
	degraded := false
	for _, name := range refresh.Collections {
		meta, err := h.directory.Metadata(name)
		if err != nil {
			collections[string(name)] = collectionInfo{Error: err.Error()}
			degraded = true
			continue
		}
		collections[string(name)] = collectionInfo{LastUpdated: meta.LastUpdated}
	}

	status := http.StatusOK
	if h.statusFn != nil && !h.statusFn().IsReady() && degraded {
		status = http.StatusServiceUnavailable
	}
	h.writeJSON(w, status, map[string]any{
		"status":      http.StatusText(status),
		"collections": collections,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates against the upstream and arms the gateway session.
// Failures come back in the same {success, error} shape the login form
// renders; nothing here ever panics through to a blank page.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		h.writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	result := h.gateway.Login(r.Context(), req.Username, req.Password)
	if !result.Success {
		h.writeJSON(w, http.StatusUnauthorized, result)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// Logout drops the gateway session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gateway.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// SessionInfo reports whether the gateway holds a live session.
func (h *Handler) SessionInfo(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]bool{
		"authenticated": h.gateway.IsAuthenticated(),
	})
}

// Export is the mechanical relay: it forwards a command plus parameters to
// the upstream host and passes the response through untouched.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	command := query.Get("cmd")
	if command == "" {
		h.writeError(w, http.StatusBadRequest, "missing cmd parameter")
		return
	}

	args := make(map[string]string, len(query))
	for key := range query {
		if key == "cmd" {
			continue
		}
		args[key] = query.Get(key)
	}

	body, err := h.gateway.Get(r.Context(), command, args)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	contentType := body.ContentType
	if contentType == "" {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body.Bytes)
}

// Players serves the cached player directory, optionally filtered by
// position and team.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	position := r.URL.Query().Get("position")
	team := r.URL.Query().Get("team")

	players, err := h.directory.FilterPlayers(func(p domain.Player) bool {
		if position != "" && p.Position != position {
			return false
		}
		if team != "" && p.Team != team {
			return false
		}
		return true
	})
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"players": players})
}

// PlayerByID serves a single directory record.
func (h *Handler) PlayerByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	player, ok, err := h.directory.PlayerByID(id)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	if !ok {
		h.writeError(w, http.StatusNotFound, "player not found")
		return
	}
	h.writeJSON(w, http.StatusOK, player)
}

type rosterResponse struct {
	LeagueID    string `json:"leagueId"`
	FranchiseID string `json:"franchiseId,omitempty"`
	roster.Buckets
	Totals roster.Totals `json:"totals"`
}

// Roster fetches a franchise's raw roster from the upstream, joins it
// against the cached player directory, and returns the grouped, sorted,
// totaled view the roster page renders directly.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	franchiseID := r.URL.Query().Get("franchise")

	entries, err := h.gateway.FetchRoster(r.Context(), leagueID, franchiseID)
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}
	directory, err := h.directory.Players()
	if err != nil {
		h.writeUpstreamError(w, err)
		return
	}

	projected := roster.Project(entries, directory)
	buckets := roster.GroupAndSort(projected)
	h.writeJSON(w, http.StatusOK, rosterResponse{
		LeagueID:    leagueID,
		FranchiseID: franchiseID,
		Buckets:     buckets,
		Totals:      roster.ComputeTotals(buckets.Active),
	})
}

type leagueOverview struct {
	League         *domain.League  `json:"league,omitempty"`
	LeagueError    string          `json:"leagueError,omitempty"`
	Standings      json.RawMessage `json:"standings,omitempty"`
	StandingsError string          `json:"standingsError,omitempty"`
}

// LeagueOverview fans out the independent upstream calls a dashboard load
// needs and combines whatever succeeded. One call failing never blanks the
// other's result; each section carries its own error instead.
func (h *Handler) LeagueOverview(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "id")
	ctx := r.Context()

	var overview leagueOverview
	done := make(chan struct{}, 2)

	go func() {
		league, err := h.gateway.FetchLeague(ctx, leagueID)
		if err != nil {
			overview.LeagueError = err.Error()
		} else {
			overview.League = &league
		}
		done <- struct{}{}
	}()
	go func() {
		standings, err := h.gateway.FetchStandings(ctx, leagueID)
		if err != nil {
			overview.StandingsError = err.Error()
		} else {
			overview.Standings = standings
		}
		done <- struct{}{}
	}()
	<-done
	<-done

	if overview.League == nil && overview.Standings == nil {
		h.writeJSON(w, http.StatusBadGateway, overview)
		return
	}
	h.writeJSON(w, http.StatusOK, overview)
}
