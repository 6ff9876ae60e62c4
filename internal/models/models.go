package models

import (
	"maps"
	"time"
)

// EmptyPick is the sentinel value for an unfilled roster slot.
const EmptyPick = "---"

// Team is one professional team from a league feed.
// ID is the opaque key used to request the team's roster.
type Team struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	Nickname string `json:"nickname"`
}

// RosterEntry is one player on a fetched team roster. Position holds the
// native position code as returned by the feed, which may encode multiple
// positions in one string (e.g. "F-C").
type RosterEntry struct {
	Player   string `json:"player"`
	Position string `json:"position"`
}

// DraftRoster maps slot identifiers to drafted player names.
// Slots that have not been filled hold EmptyPick.
type DraftRoster map[string]string

// NewDraftRoster creates an empty roster with one entry per slot.
func NewDraftRoster(slots []string) DraftRoster {
	r := make(DraftRoster, len(slots))
	for _, slot := range slots {
		r[slot] = EmptyPick
	}
	return r
}

// Clone returns an independent copy of the roster. Callers that hand a
// roster outside the session lock must hand a clone, never the live map.
func (r DraftRoster) Clone() DraftRoster {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// Complete reports whether every slot has been filled.
func (r DraftRoster) Complete() bool {
	if len(r) == 0 {
		return false
	}
	for _, player := range r {
		if player == EmptyPick {
			return false
		}
	}
	return true
}

// OpenSlots returns the unfilled slots in the order given by slots.
func (r DraftRoster) OpenSlots(slots []string) []string {
	var open []string
	for _, slot := range slots {
		if r[slot] == EmptyPick {
			open = append(open, slot)
		}
	}
	return open
}

// SessionState identifies where a draft session is in its lifecycle.
type SessionState string

const (
	StateSelectingLeague SessionState = "selecting_league"
	StateDrafting        SessionState = "drafting"
	StateTeamSpun        SessionState = "team_spun"
	StateMatchupReady    SessionState = "matchup_ready"
)

// DraftSession holds one user's in-progress draft. All fields are owned by
// the session manager; callers must mutate it only while holding the
// session lock.
type DraftSession struct {
	Token       string
	League      string
	HumanRoster DraftRoster
	AIRoster    DraftRoster
	SpunTeam    *Team
	AIDraftDone bool
	LastActive  time.Time
}

// State derives the session's lifecycle state from its fields.
func (s *DraftSession) State() SessionState {
	switch {
	case s.League == "":
		return StateSelectingLeague
	case s.AIDraftDone:
		return StateMatchupReady
	case s.SpunTeam != nil:
		return StateTeamSpun
	default:
		return StateDrafting
	}
}

// WSMessage is the envelope for messages pushed to browser clients.
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
