package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/http/respond"
	"github.com/hongminglow/va-ops-be/internal/models/dto"
)

// ReservationHandler serves the reservation book.
type ReservationHandler struct {
	ops airline.Operations
}

// NewReservationHandler constructs the handler.
func NewReservationHandler(ops airline.Operations) *ReservationHandler {
	return &ReservationHandler{ops: ops}
}

// Register attaches reservation routes to the router.
func (h *ReservationHandler) Register(r *mux.Router) {
	r.HandleFunc("/reservations", h.handleSave).Methods(http.MethodPost)
	r.HandleFunc("/reservations", h.handleList).Methods(http.MethodGet)
}

func (h *ReservationHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveReservationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	reservation, err := h.ops.SaveReservation(r.Context(), req.PassengerName, req.DiscordUsername, req.RobloxUsername, req.FlightNumber)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "reservation saved", reservation)
}

func (h *ReservationHandler) handleList(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.ops.GetAllReservations(r.Context(), auth.FromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", reservations)
}
