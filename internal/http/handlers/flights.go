package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/http/respond"
	"github.com/hongminglow/va-ops-be/internal/models"
	"github.com/hongminglow/va-ops-be/internal/models/dto"
)

// FlightHandler serves the flight registry and the status board.
type FlightHandler struct {
	ops airline.Operations
}

// NewFlightHandler constructs the handler.
func NewFlightHandler(ops airline.Operations) *FlightHandler {
	return &FlightHandler{ops: ops}
}

// Register attaches flight routes to the router.
func (h *FlightHandler) Register(r *mux.Router) {
	r.HandleFunc("/flights", h.handleList).Methods(http.MethodGet)
	r.HandleFunc("/flights", h.handleAdd).Methods(http.MethodPost)
	r.HandleFunc("/flight-status", h.handleGetStatus).Methods(http.MethodGet)
	r.HandleFunc("/flight-status", h.handleSetStatus).Methods(http.MethodPut)
}

func (h *FlightHandler) handleList(w http.ResponseWriter, r *http.Request) {
	flights, err := h.ops.GetAllFlights(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", flights)
}

func (h *FlightHandler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req dto.AddFlightRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	flight := models.Flight{
		FlightNumber:  req.FlightNumber,
		Origin:        req.Origin,
		Destination:   req.Destination,
		AircraftType:  req.AircraftType,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	}
	if err := h.ops.AddFlight(r.Context(), auth.FromContext(r.Context()), flight); err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, "flight saved", flight)
}

func (h *FlightHandler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.ops.GetFlightStatus(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", status)
}

func (h *FlightHandler) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	if !requireAdmin(w, r) {
		return
	}
	var req dto.SetFlightStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := h.ops.SetFlightStatus(r.Context(), auth.FromContext(r.Context()), req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, "status updated", status)
}
