package models

// Flight is a published flight. Times are nanoseconds since the Unix epoch.
type Flight struct {
	FlightNumber  string `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	AircraftType  string `json:"aircraftType"`
	DepartureTime int64  `json:"departureTime"`
	ArrivalTime   int64  `json:"arrivalTime"`
}

// Labels the departures board knows how to render. Any other text is stored as-is.
const (
	StatusOnTime    = "On Time"
	StatusDelayed   = "Delayed"
	StatusCancelled = "Cancelled"
	StatusBoarding  = "Boarding"
)

// FlightStatus is the airline-wide operational banner.
type FlightStatus struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}
