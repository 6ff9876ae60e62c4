package handlers

import "github.com/draftspin/draftspin/internal/models"

// LeagueResponse describes one selectable league
type LeagueResponse struct {
	Key   string   `json:"key"`
	Name  string   `json:"name"`
	Slots []string `json:"slots"`
	Live  bool     `json:"live"`
}

// StateResponse is the full session view the UI renders from
type StateResponse struct {
	State       models.SessionState `json:"state"`
	League      string              `json:"league,omitempty"`
	Slots       []string            `json:"slots,omitempty"`
	OpenSlots   []string            `json:"open_slots,omitempty"`
	HumanRoster models.DraftRoster  `json:"human_roster,omitempty"`
	AIRoster    models.DraftRoster  `json:"ai_roster,omitempty"`
	SpunTeam    *models.Team        `json:"spun_team,omitempty"`
	Live        bool                `json:"live"`
}

// EligibleResponse lists the candidates for one slot on the spun team
type EligibleResponse struct {
	Slot    string               `json:"slot"`
	Players []models.RosterEntry `json:"players"`
}

// MatchupResponse presents both completed rosters
type MatchupResponse struct {
	League      string             `json:"league"`
	Slots       []string           `json:"slots"`
	HumanRoster models.DraftRoster `json:"human_roster"`
	AIRoster    models.DraftRoster `json:"ai_roster"`
}
