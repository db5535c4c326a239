package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/http/respond"
	"github.com/hongminglow/va-ops-be/internal/models"
)

// ApplicationHandler serves cabin crew and ATC recruitment intake.
type ApplicationHandler struct {
	ops airline.Operations
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(ops airline.Operations) *ApplicationHandler {
	return &ApplicationHandler{ops: ops}
}

// Register attaches application routes to the router.
func (h *ApplicationHandler) Register(r *mux.Router) {
	r.HandleFunc("/applications/cabin-crew", h.handleSubmitCabinCrew).Methods(http.MethodPost)
	r.HandleFunc("/applications/cabin-crew", h.handleListCabinCrew).Methods(http.MethodGet)
	r.HandleFunc("/applications/atc", h.handleSubmitAtc).Methods(http.MethodPost)
	r.HandleFunc("/applications/atc", h.handleListAtc).Methods(http.MethodGet)
}

func (h *ApplicationHandler) handleSubmitCabinCrew(w http.ResponseWriter, r *http.Request) {
	var app models.CabinCrewApplication
	if !decodeJSON(w, r, &app) {
		return
	}
	if err := h.ops.SubmitCabinCrewApplication(r.Context(), app); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "application submitted", nil)
}

func (h *ApplicationHandler) handleListCabinCrew(w http.ResponseWriter, r *http.Request) {
	apps, err := h.ops.GetAllCabinCrewApplications(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", apps)
}

func (h *ApplicationHandler) handleSubmitAtc(w http.ResponseWriter, r *http.Request) {
	var app models.AtcApplication
	if !decodeJSON(w, r, &app) {
		return
	}
	if err := h.ops.SubmitAtcApplication(r.Context(), app); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "application submitted", nil)
}

func (h *ApplicationHandler) handleListAtc(w http.ResponseWriter, r *http.Request) {
	apps, err := h.ops.GetAllAtcApplications(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", apps)
}
