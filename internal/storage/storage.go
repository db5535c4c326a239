package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/va-ops-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// FlightStore keeps published flights keyed by flight number.
type FlightStore interface {
	// PutFlight inserts the flight or overwrites the entry with the same number.
	// An overwritten flight keeps its original position in ListFlights.
	PutFlight(ctx context.Context, flight models.Flight) error
	GetFlight(ctx context.Context, flightNumber string) (models.Flight, error)
	ListFlights(ctx context.Context) ([]models.Flight, error)
}

// StatusStore keeps the single airline-wide status value.
type StatusStore interface {
	SetStatus(ctx context.Context, status models.FlightStatus) error
	// GetStatus returns nil when no status has been written yet.
	GetStatus(ctx context.Context) (*models.FlightStatus, error)
}

// ReservationStore keeps passenger bookings in insertion order.
type ReservationStore interface {
	// CreateReservation copies the flight identified by flightNumber into a new
	// reservation. It returns ErrNotFound when the flight does not exist.
	CreateReservation(ctx context.Context, passengerName, discordUsername, robloxUsername, flightNumber string) (models.Reservation, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)
}

// ApplicationStore keeps recruitment submissions in insertion order.
type ApplicationStore interface {
	CreateCabinCrewApplication(ctx context.Context, app models.CabinCrewApplication) error
	ListCabinCrewApplications(ctx context.Context) ([]models.CabinCrewApplication, error)
	CreateAtcApplication(ctx context.Context, app models.AtcApplication) error
	ListAtcApplications(ctx context.Context) ([]models.AtcApplication, error)
}

// Store aggregates every record store the service needs.
type Store interface {
	FlightStore
	StatusStore
	ReservationStore
	ApplicationStore
	Close()
}
