package memory

import (
	"context"
	"sync"

	"github.com/hongminglow/va-ops-be/internal/models"
	"github.com/hongminglow/va-ops-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store keeps every record in process memory. Each collection has its own
// lock so writers to one never wait on another.
type Store struct {
	flights      flightTable
	status       statusCell
	reservations appendOnly[models.Reservation]
	cabinCrew    appendOnly[models.CabinCrewApplication]
	atc          appendOnly[models.AtcApplication]
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		flights: flightTable{index: make(map[string]int)},
	}
}

// Close is a no-op; memory has nothing to release.
func (s *Store) Close() {}

type flightTable struct {
	mu    sync.RWMutex
	rows  []models.Flight
	index map[string]int
}

// PutFlight inserts or overwrites the flight in place.
func (s *Store) PutFlight(_ context.Context, flight models.Flight) error {
	t := &s.flights
	t.mu.Lock()
	defer t.mu.Unlock()
	if i, ok := t.index[flight.FlightNumber]; ok {
		t.rows[i] = flight
		return nil
	}
	t.index[flight.FlightNumber] = len(t.rows)
	t.rows = append(t.rows, flight)
	return nil
}

// GetFlight returns the flight with the given number.
func (s *Store) GetFlight(_ context.Context, flightNumber string) (models.Flight, error) {
	t := &s.flights
	t.mu.RLock()
	defer t.mu.RUnlock()
	i, ok := t.index[flightNumber]
	if !ok {
		return models.Flight{}, storage.ErrNotFound
	}
	return t.rows[i], nil
}

// ListFlights returns a copy of all flights in insertion order.
func (s *Store) ListFlights(_ context.Context) ([]models.Flight, error) {
	t := &s.flights
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]models.Flight, len(t.rows))
	copy(out, t.rows)
	return out, nil
}

type statusCell struct {
	mu    sync.RWMutex
	value *models.FlightStatus
}

// SetStatus replaces the current status.
func (s *Store) SetStatus(_ context.Context, status models.FlightStatus) error {
	s.status.mu.Lock()
	defer s.status.mu.Unlock()
	s.status.value = &status
	return nil
}

// GetStatus returns a copy of the current status, or nil if unset.
func (s *Store) GetStatus(_ context.Context) (*models.FlightStatus, error) {
	s.status.mu.RLock()
	defer s.status.mu.RUnlock()
	if s.status.value == nil {
		return nil, nil
	}
	status := *s.status.value
	return &status, nil
}

// CreateReservation copies the current flight record into a new reservation.
func (s *Store) CreateReservation(ctx context.Context, passengerName, discordUsername, robloxUsername, flightNumber string) (models.Reservation, error) {
	flight, err := s.GetFlight(ctx, flightNumber)
	if err != nil {
		return models.Reservation{}, err
	}
	reservation := models.Reservation{
		PassengerName:   passengerName,
		DiscordUsername: discordUsername,
		RobloxUsername:  robloxUsername,
		FlightDetails:   flight,
	}
	s.reservations.add(reservation)
	return reservation, nil
}

// ListReservations returns all reservations in insertion order.
func (s *Store) ListReservations(_ context.Context) ([]models.Reservation, error) {
	return s.reservations.list(), nil
}

// CreateCabinCrewApplication appends a cabin crew submission.
func (s *Store) CreateCabinCrewApplication(_ context.Context, app models.CabinCrewApplication) error {
	s.cabinCrew.add(app)
	return nil
}

// ListCabinCrewApplications returns all cabin crew submissions in insertion order.
func (s *Store) ListCabinCrewApplications(_ context.Context) ([]models.CabinCrewApplication, error) {
	return s.cabinCrew.list(), nil
}

// CreateAtcApplication appends an ATC submission.
func (s *Store) CreateAtcApplication(_ context.Context, app models.AtcApplication) error {
	s.atc.add(app)
	return nil
}

// ListAtcApplications returns all ATC submissions in insertion order.
func (s *Store) ListAtcApplications(_ context.Context) ([]models.AtcApplication, error) {
	return s.atc.list(), nil
}

type appendOnly[T any] struct {
	mu   sync.RWMutex
	rows []T
}

func (a *appendOnly[T]) add(row T) {
	a.mu.Lock()
	a.rows = append(a.rows, row)
	a.mu.Unlock()
}

func (a *appendOnly[T]) list() []T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]T, len(a.rows))
	copy(out, a.rows)
	return out
}
