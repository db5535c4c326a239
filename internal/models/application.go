package models

// CabinCrewApplication is a recruitment submission for cabin crew.
type CabinCrewApplication struct {
	ApplicantName         string `json:"applicantName"`
	DiscordUsername       string `json:"discordUsername"`
	RobloxUsername        string `json:"robloxUsername"`
	Experience            string `json:"experience"`
	Motivation            string `json:"motivation"`
	Availability          string `json:"availability"`
	Languages             string `json:"languages"`
	PreviousRoles         string `json:"previousRoles"`
	TrainingReceived      string `json:"trainingReceived"`
	CustomerServiceSkills string `json:"customerServiceSkills"`
}

// AtcApplication is a recruitment submission for air traffic control.
type AtcApplication struct {
	ApplicantName                string `json:"applicantName"`
	DiscordUsername              string `json:"discordUsername"`
	RobloxUsername               string `json:"robloxUsername"`
	Experience                   string `json:"experience"`
	Motivation                   string `json:"motivation"`
	PreferredPosition            string `json:"preferredPosition"`
	Availability                 string `json:"availability"`
	UnderstandingOfAtcProcedures string `json:"understandingOfAtcProcedures"`
	PreviousRoles                string `json:"previousRoles"`
}
