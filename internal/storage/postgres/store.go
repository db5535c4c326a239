package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/hongminglow/va-ops-be/internal/models"
	"github.com/hongminglow/va-ops-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store provides Postgres-backed persistence for every airline record.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and runs migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS flights (
			seq BIGSERIAL,
			flight_number TEXT PRIMARY KEY,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			aircraft_type TEXT NOT NULL,
			departure_time BIGINT NOT NULL,
			arrival_time BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS flight_status (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			status TEXT NOT NULL,
			updated_at BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGSERIAL PRIMARY KEY,
			passenger_name TEXT NOT NULL,
			discord_username TEXT NOT NULL,
			roblox_username TEXT NOT NULL,
			flight_number TEXT NOT NULL,
			origin TEXT NOT NULL,
			destination TEXT NOT NULL,
			aircraft_type TEXT NOT NULL,
			departure_time BIGINT NOT NULL,
			arrival_time BIGINT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS cabin_crew_applications (
			id BIGSERIAL PRIMARY KEY,
			applicant_name TEXT NOT NULL,
			discord_username TEXT NOT NULL,
			roblox_username TEXT NOT NULL,
			experience TEXT NOT NULL,
			motivation TEXT NOT NULL,
			availability TEXT NOT NULL,
			languages TEXT NOT NULL,
			previous_roles TEXT NOT NULL,
			training_received TEXT NOT NULL,
			customer_service_skills TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS atc_applications (
			id BIGSERIAL PRIMARY KEY,
			applicant_name TEXT NOT NULL,
			discord_username TEXT NOT NULL,
			roblox_username TEXT NOT NULL,
			experience TEXT NOT NULL,
			motivation TEXT NOT NULL,
			preferred_position TEXT NOT NULL,
			availability TEXT NOT NULL,
			understanding_of_atc_procedures TEXT NOT NULL,
			previous_roles TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// PutFlight upserts by flight number; seq is untouched on conflict so the
// flight keeps its listing position.
func (s *Store) PutFlight(ctx context.Context, f models.Flight) error {
	const query = `
	INSERT INTO flights (flight_number, origin, destination, aircraft_type, departure_time, arrival_time)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (flight_number) DO UPDATE SET
		origin = EXCLUDED.origin,
		destination = EXCLUDED.destination,
		aircraft_type = EXCLUDED.aircraft_type,
		departure_time = EXCLUDED.departure_time,
		arrival_time = EXCLUDED.arrival_time;
	`
	if _, err := s.pool.Exec(ctx, query, f.FlightNumber, f.Origin, f.Destination, f.AircraftType, f.DepartureTime, f.ArrivalTime); err != nil {
		return fmt.Errorf("put flight: %w", err)
	}
	return nil
}

// GetFlight fetches a flight by number.
func (s *Store) GetFlight(ctx context.Context, flightNumber string) (models.Flight, error) {
	const query = `
	SELECT flight_number, origin, destination, aircraft_type, departure_time, arrival_time
	FROM flights
	WHERE flight_number = $1;
	`
	return scanFlight(s.pool.QueryRow(ctx, query, flightNumber))
}

// ListFlights returns every flight in insertion order.
func (s *Store) ListFlights(ctx context.Context) ([]models.Flight, error) {
	const query = `
	SELECT flight_number, origin, destination, aircraft_type, departure_time, arrival_time
	FROM flights
	ORDER BY seq;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query flights: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Flight, error) {
		return scanFlight(row)
	})
}

// SetStatus overwrites the single status row.
func (s *Store) SetStatus(ctx context.Context, status models.FlightStatus) error {
	const query = `
	INSERT INTO flight_status (id, status, updated_at)
	VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.pool.Exec(ctx, query, status.Status, status.Timestamp); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// GetStatus returns the current status, or nil if none was ever written.
func (s *Store) GetStatus(ctx context.Context) (*models.FlightStatus, error) {
	var status models.FlightStatus
	err := s.pool.QueryRow(ctx, `SELECT status, updated_at FROM flight_status WHERE id = 1;`).
		Scan(&status.Status, &status.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get status: %w", err)
	}
	return &status, nil
}

// CreateReservation copies the flight row into the reservation in one
// statement, so a missing flight inserts nothing.
func (s *Store) CreateReservation(ctx context.Context, passengerName, discordUsername, robloxUsername, flightNumber string) (models.Reservation, error) {
	const query = `
	INSERT INTO reservations (passenger_name, discord_username, roblox_username,
		flight_number, origin, destination, aircraft_type, departure_time, arrival_time)
	SELECT $1, $2, $3, f.flight_number, f.origin, f.destination, f.aircraft_type, f.departure_time, f.arrival_time
	FROM flights f
	WHERE f.flight_number = $4
	RETURNING passenger_name, discord_username, roblox_username,
		flight_number, origin, destination, aircraft_type, departure_time, arrival_time;
	`
	row := s.pool.QueryRow(ctx, query, passengerName, discordUsername, robloxUsername, flightNumber)
	return scanReservation(row)
}

// ListReservations returns every reservation in insertion order.
func (s *Store) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	const query = `
	SELECT passenger_name, discord_username, roblox_username,
		flight_number, origin, destination, aircraft_type, departure_time, arrival_time
	FROM reservations
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query reservations: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Reservation, error) {
		return scanReservation(row)
	})
}

// CreateCabinCrewApplication inserts a cabin crew submission.
func (s *Store) CreateCabinCrewApplication(ctx context.Context, a models.CabinCrewApplication) error {
	const query = `
	INSERT INTO cabin_crew_applications (applicant_name, discord_username, roblox_username, experience,
		motivation, availability, languages, previous_roles, training_received, customer_service_skills)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := s.pool.Exec(ctx, query, a.ApplicantName, a.DiscordUsername, a.RobloxUsername, a.Experience,
		a.Motivation, a.Availability, a.Languages, a.PreviousRoles, a.TrainingReceived, a.CustomerServiceSkills)
	if err != nil {
		return fmt.Errorf("insert cabin crew application: %w", err)
	}
	return nil
}

// ListCabinCrewApplications returns cabin crew submissions in insertion order.
func (s *Store) ListCabinCrewApplications(ctx context.Context) ([]models.CabinCrewApplication, error) {
	const query = `
	SELECT applicant_name, discord_username, roblox_username, experience,
		motivation, availability, languages, previous_roles, training_received, customer_service_skills
	FROM cabin_crew_applications
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query cabin crew applications: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CabinCrewApplication, error) {
		var a models.CabinCrewApplication
		err := row.Scan(&a.ApplicantName, &a.DiscordUsername, &a.RobloxUsername, &a.Experience,
			&a.Motivation, &a.Availability, &a.Languages, &a.PreviousRoles, &a.TrainingReceived, &a.CustomerServiceSkills)
		return a, err
	})
}

// CreateAtcApplication inserts an ATC submission.
func (s *Store) CreateAtcApplication(ctx context.Context, a models.AtcApplication) error {
	const query = `
	INSERT INTO atc_applications (applicant_name, discord_username, roblox_username, experience,
		motivation, preferred_position, availability, understanding_of_atc_procedures, previous_roles)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := s.pool.Exec(ctx, query, a.ApplicantName, a.DiscordUsername, a.RobloxUsername, a.Experience,
		a.Motivation, a.PreferredPosition, a.Availability, a.UnderstandingOfAtcProcedures, a.PreviousRoles)
	if err != nil {
		return fmt.Errorf("insert atc application: %w", err)
	}
	return nil
}

// ListAtcApplications returns ATC submissions in insertion order.
func (s *Store) ListAtcApplications(ctx context.Context) ([]models.AtcApplication, error) {
	const query = `
	SELECT applicant_name, discord_username, roblox_username, experience,
		motivation, preferred_position, availability, understanding_of_atc_procedures, previous_roles
	FROM atc_applications
	ORDER BY id;
	`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query atc applications: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AtcApplication, error) {
		var a models.AtcApplication
		err := row.Scan(&a.ApplicantName, &a.DiscordUsername, &a.RobloxUsername, &a.Experience,
			&a.Motivation, &a.PreferredPosition, &a.Availability, &a.UnderstandingOfAtcProcedures, &a.PreviousRoles)
		return a, err
	})
}

func scanFlight(row pgx.Row) (models.Flight, error) {
	var f models.Flight
	if err := row.Scan(&f.FlightNumber, &f.Origin, &f.Destination, &f.AircraftType, &f.DepartureTime, &f.ArrivalTime); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Flight{}, storage.ErrNotFound
		}
		return models.Flight{}, err
	}
	return f, nil
}

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var r models.Reservation
	f := &r.FlightDetails
	err := row.Scan(&r.PassengerName, &r.DiscordUsername, &r.RobloxUsername,
		&f.FlightNumber, &f.Origin, &f.Destination, &f.AircraftType, &f.DepartureTime, &f.ArrivalTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, storage.ErrNotFound
		}
		return models.Reservation{}, err
	}
	return r, nil
}
