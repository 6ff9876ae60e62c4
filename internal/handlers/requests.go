package handlers

// LeagueSelectRequest represents a request to activate a league
type LeagueSelectRequest struct {
	League string `json:"league"`
}

// PickRequest represents a request to confirm a draft pick
type PickRequest struct {
	Slot   string `json:"slot"`
	Player string `json:"player"`
}
