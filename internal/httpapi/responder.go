package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ffl-gateway-service/internal/cache"
	"ffl-gateway-service/internal/upstream"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && h.logger != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// writeUpstreamError maps the error taxonomy onto gateway status codes.
// Rate limits pass the Retry-After hint through so the browser can back
// off; cache corruption surfaces the collection name for operators rather
// than degrading into a silently empty page.
func (h *Handler) writeUpstreamError(w http.ResponseWriter, err error) {
	if errors.Is(err, upstream.ErrNotAuthenticated) {
		h.writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	if rlErr, ok := upstream.AsRateLimitError(err); ok {
		if rlErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
		}
		h.writeError(w, http.StatusTooManyRequests, rlErr.Error())
		return
	}
	if srvErr, ok := upstream.AsServerError(err); ok {
		h.writeError(w, http.StatusBadGateway, srvErr.Error())
		return
	}
	if netErr, ok := upstream.AsNetworkError(err); ok {
		h.writeError(w, http.StatusGatewayTimeout, netErr.Error())
		return
	}
	if readErr, ok := cache.AsReadError(err); ok {
		h.writeError(w, http.StatusInternalServerError, readErr.Error())
		return
	}
	h.writeError(w, http.StatusInternalServerError, err.Error())
}
