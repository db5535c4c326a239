package dto

type AddFlightRequest struct {
	FlightNumber  string `json:"flightNumber"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	AircraftType  string `json:"aircraftType"`
	DepartureTime int64  `json:"departureTime"`
	ArrivalTime   int64  `json:"arrivalTime"`
}

type SetFlightStatusRequest struct {
	Status string `json:"status"`
}

type SaveReservationRequest struct {
	PassengerName   string `json:"passengerName"`
	DiscordUsername string `json:"discordUsername"`
	RobloxUsername  string `json:"robloxUsername"`
	FlightNumber    string `json:"flightNumber"`
}
