package models

// Reservation holds a passenger booking. FlightDetails is a copy of the
// flight as it was when the booking was made.
type Reservation struct {
	PassengerName   string `json:"passengerName"`
	DiscordUsername string `json:"discordUsername"`
	RobloxUsername  string `json:"robloxUsername"`
	FlightDetails   Flight `json:"flightDetails"`
}
