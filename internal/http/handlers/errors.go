package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/http/respond"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return false
	}
	return true
}

// writeServiceError maps airline errors onto HTTP statuses. Internal errors
// are logged by the service, so only a generic message goes out here.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, airline.ErrUnauthorized):
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, airline.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "flight not found")
	default:
		respond.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// requireAdmin turns unprivileged callers away before the body is read, so
// they see 401 whatever they sent. The service repeats the check.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if !auth.FromContext(r.Context()).Privileged() {
		respond.Error(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	return true
}
