package airline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/logger"
	"github.com/hongminglow/va-ops-be/internal/metrics"
	"github.com/hongminglow/va-ops-be/internal/models"
	"github.com/hongminglow/va-ops-be/internal/storage"
)

var (
	// ErrUnauthorized is returned for a wrong password or when an admin-only
	// operation is called from an unprivileged session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a reservation names an unknown flight.
	ErrNotFound = errors.New("not found")
)

// Operations is the full set of calls the backend exposes to clients.
type Operations interface {
	Authenticate(ctx context.Context, session *auth.Session, password string) error

	AddFlight(ctx context.Context, session *auth.Session, flight models.Flight) error
	GetAllFlights(ctx context.Context) ([]models.Flight, error)

	SetFlightStatus(ctx context.Context, session *auth.Session, status string) (models.FlightStatus, error)
	GetFlightStatus(ctx context.Context) (*models.FlightStatus, error)

	SaveReservation(ctx context.Context, passengerName, discordUsername, robloxUsername, flightNumber string) (models.Reservation, error)
	GetAllReservations(ctx context.Context, session *auth.Session) ([]models.Reservation, error)

	SubmitCabinCrewApplication(ctx context.Context, app models.CabinCrewApplication) error
	SubmitAtcApplication(ctx context.Context, app models.AtcApplication) error
	GetAllCabinCrewApplications(ctx context.Context, session *auth.Session) ([]models.CabinCrewApplication, error)
	GetAllAtcApplications(ctx context.Context, session *auth.Session) ([]models.AtcApplication, error)
}

// Ensure Service satisfies Operations at compile time.
var _ Operations = (*Service)(nil)

// Service owns the airline's record stores and enforces the admin gate.
type Service struct {
	gate    *auth.Gate
	store   storage.Store
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewService wires the gate and store together. m may be nil.
func NewService(gate *auth.Gate, store storage.Store, log logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		gate:    gate,
		store:   store,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// Authenticate promotes session to admin when password matches the configured secret.
func (s *Service) Authenticate(ctx context.Context, session *auth.Session, password string) error {
	if err := s.gate.Authenticate(session, password); err != nil {
		s.log.Warn("authentication failed", "session", session.ID)
		return s.done("authenticate", ErrUnauthorized)
	}
	s.log.Info("session authenticated", "session", session.ID)
	return s.done("authenticate", nil)
}

// AddFlight publishes a flight, replacing any flight with the same number.
func (s *Service) AddFlight(ctx context.Context, session *auth.Session, flight models.Flight) error {
	if err := s.requireAdmin("add_flight", session); err != nil {
		return err
	}
	if err := s.store.PutFlight(ctx, flight); err != nil {
		return s.done("add_flight", fmt.Errorf("add flight %s: %w", flight.FlightNumber, err))
	}
	return s.done("add_flight", nil)
}

// GetAllFlights lists every published flight in insertion order.
func (s *Service) GetAllFlights(ctx context.Context) ([]models.Flight, error) {
	flights, err := s.store.ListFlights(ctx)
	if err != nil {
		return nil, s.done("get_all_flights", fmt.Errorf("list flights: %w", err))
	}
	return nonNil(flights), s.done("get_all_flights", nil)
}

// SetFlightStatus replaces the airline-wide status and stamps it with the current time.
func (s *Service) SetFlightStatus(ctx context.Context, session *auth.Session, status string) (models.FlightStatus, error) {
	if err := s.requireAdmin("set_flight_status", session); err != nil {
		return models.FlightStatus{}, err
	}
	current := models.FlightStatus{Status: status, Timestamp: s.now().UnixNano()}
	if err := s.store.SetStatus(ctx, current); err != nil {
		return models.FlightStatus{}, s.done("set_flight_status", fmt.Errorf("set status: %w", err))
	}
	return current, s.done("set_flight_status", nil)
}

// GetFlightStatus returns the current status, or nil before the first write.
func (s *Service) GetFlightStatus(ctx context.Context) (*models.FlightStatus, error) {
	status, err := s.store.GetStatus(ctx)
	if err != nil {
		return nil, s.done("get_flight_status", fmt.Errorf("get status: %w", err))
	}
	return status, s.done("get_flight_status", nil)
}

// SaveReservation books a passenger onto an existing flight. The flight is
// copied into the reservation, so later changes to the flight do not show.
func (s *Service) SaveReservation(ctx context.Context, passengerName, discordUsername, robloxUsername, flightNumber string) (models.Reservation, error) {
	reservation, err := s.store.CreateReservation(ctx, passengerName, discordUsername, robloxUsername, flightNumber)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Reservation{}, s.done("save_reservation", fmt.Errorf("flight %q: %w", flightNumber, ErrNotFound))
		}
		return models.Reservation{}, s.done("save_reservation", fmt.Errorf("save reservation: %w", err))
	}
	return reservation, s.done("save_reservation", nil)
}

// GetAllReservations lists every reservation in insertion order.
func (s *Service) GetAllReservations(ctx context.Context, session *auth.Session) ([]models.Reservation, error) {
	if err := s.requireAdmin("get_all_reservations", session); err != nil {
		return nil, err
	}
	reservations, err := s.store.ListReservations(ctx)
	if err != nil {
		return nil, s.done("get_all_reservations", fmt.Errorf("list reservations: %w", err))
	}
	return nonNil(reservations), s.done("get_all_reservations", nil)
}

// SubmitCabinCrewApplication stores the application exactly as submitted.
func (s *Service) SubmitCabinCrewApplication(ctx context.Context, app models.CabinCrewApplication) error {
	if err := s.store.CreateCabinCrewApplication(ctx, app); err != nil {
		return s.done("submit_cabin_crew_application", fmt.Errorf("submit cabin crew application: %w", err))
	}
	return s.done("submit_cabin_crew_application", nil)
}

// SubmitAtcApplication stores the application exactly as submitted.
func (s *Service) SubmitAtcApplication(ctx context.Context, app models.AtcApplication) error {
	if err := s.store.CreateAtcApplication(ctx, app); err != nil {
		return s.done("submit_atc_application", fmt.Errorf("submit atc application: %w", err))
	}
	return s.done("submit_atc_application", nil)
}

// GetAllCabinCrewApplications lists cabin crew applications in insertion order.
func (s *Service) GetAllCabinCrewApplications(ctx context.Context, session *auth.Session) ([]models.CabinCrewApplication, error) {
	if err := s.requireAdmin("get_all_cabin_crew_applications", session); err != nil {
		return nil, err
	}
	apps, err := s.store.ListCabinCrewApplications(ctx)
	if err != nil {
		return nil, s.done("get_all_cabin_crew_applications", fmt.Errorf("list cabin crew applications: %w", err))
	}
	return nonNil(apps), s.done("get_all_cabin_crew_applications", nil)
}

// GetAllAtcApplications lists ATC applications in insertion order.
func (s *Service) GetAllAtcApplications(ctx context.Context, session *auth.Session) ([]models.AtcApplication, error) {
	if err := s.requireAdmin("get_all_atc_applications", session); err != nil {
		return nil, err
	}
	apps, err := s.store.ListAtcApplications(ctx)
	if err != nil {
		return nil, s.done("get_all_atc_applications", fmt.Errorf("list atc applications: %w", err))
	}
	return nonNil(apps), s.done("get_all_atc_applications", nil)
}

func (s *Service) requireAdmin(operation string, session *auth.Session) error {
	if session.Privileged() {
		return nil
	}
	return s.done(operation, fmt.Errorf("%s requires admin: %w", operation, ErrUnauthorized))
}

// done records the outcome of an operation and passes err through.
func (s *Service) done(operation string, err error) error {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, ErrUnauthorized):
		outcome = metrics.OutcomeUnauthorized
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
		s.log.Error("operation failed", "operation", operation, "error", err)
	}
	s.metrics.Observe(operation, outcome)
	return err
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
