package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/hongminglow/va-ops-be/internal/airline"
	"github.com/hongminglow/va-ops-be/internal/auth"
	"github.com/hongminglow/va-ops-be/internal/models"
)

var _ airline.Operations = (*MockOperations)(nil)

// MockOperations is a mock implementation of airline.Operations
type MockOperations struct {
	mock.Mock
}

func (m *MockOperations) Authenticate(ctx context.Context, session *auth.Session, password string) error {
	args := m.Called(ctx, session, password)
	return args.Error(0)
}

func (m *MockOperations) AddFlight(ctx context.Context, session *auth.Session, flight models.Flight) error {
	args := m.Called(ctx, session, flight)
	return args.Error(0)
}

func (m *MockOperations) GetAllFlights(ctx context.Context) ([]models.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flight), args.Error(1)
}

func (m *MockOperations) SetFlightStatus(ctx context.Context, session *auth.Session, status string) (models.FlightStatus, error) {
	args := m.Called(ctx, session, status)
	return args.Get(0).(models.FlightStatus), args.Error(1)
}

func (m *MockOperations) GetFlightStatus(ctx context.Context) (*models.FlightStatus, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FlightStatus), args.Error(1)
}

func (m *MockOperations) SaveReservation(ctx context.Context, passengerName, discordUsername, robloxUsername, flightNumber string) (models.Reservation, error) {
	args := m.Called(ctx, passengerName, discordUsername, robloxUsername, flightNumber)
	return args.Get(0).(models.Reservation), args.Error(1)
}

func (m *MockOperations) GetAllReservations(ctx context.Context, session *auth.Session) ([]models.Reservation, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Reservation), args.Error(1)
}

func (m *MockOperations) SubmitCabinCrewApplication(ctx context.Context, app models.CabinCrewApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockOperations) SubmitAtcApplication(ctx context.Context, app models.AtcApplication) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockOperations) GetAllCabinCrewApplications(ctx context.Context, session *auth.Session) ([]models.CabinCrewApplication, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CabinCrewApplication), args.Error(1)
}

func (m *MockOperations) GetAllAtcApplications(ctx context.Context, session *auth.Session) ([]models.AtcApplication, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AtcApplication), args.Error(1)
}
