package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/draftspin/draftspin/internal/league"
	"github.com/draftspin/draftspin/internal/models"
)

// handleIndex serves the single game page
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.sessionFromRequest(w, r)
	h.templates.Index.Execute(w, map[string]interface{}{
		"Leagues": league.List(),
	})
}

// handleWS upgrades to a websocket scoped to the request's session
func (h *Handlers) handleWS(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)
	h.Hub.ServeWs(w, r, sess.Token)
}

// handleGetLeagues returns the selectable leagues
func (h *Handlers) handleGetLeagues(w http.ResponseWriter, r *http.Request) {
	configs := league.List()
	leagues := make([]LeagueResponse, 0, len(configs))
	for _, cfg := range configs {
		leagues = append(leagues, LeagueResponse{
			Key:   cfg.Key,
			Name:  cfg.Name,
			Slots: cfg.Slots,
			Live:  cfg.Live,
		})
	}
	respondOK(w, leagues)
}

// handleGetState returns the session's full draft state. The rosters are
// snapshotted under the session lock so encoding never races a concurrent
// pick from another tab.
func (h *Handlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	sess.Lock()
	resp := StateResponse{
		State:       sess.State(),
		League:      sess.League,
		HumanRoster: sess.HumanRoster.Clone(),
		AIRoster:    sess.AIRoster.Clone(),
		SpunTeam:    sess.SpunTeam,
	}
	sess.Unlock()

	if resp.League != "" {
		if cfg, err := league.Get(resp.League); err == nil {
			resp.Slots = cfg.Slots
			resp.Live = cfg.Live
			if resp.HumanRoster != nil {
				resp.OpenSlots = resp.HumanRoster.OpenSlots(cfg.Slots)
			}
		}
	}

	respondOK(w, resp)
}

// handleSelectLeague activates (or switches) the session's league
func (h *Handlers) handleSelectLeague(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	var req LeagueSelectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.League == "" {
		respondError(w, BadRequest("Missing league"))
		return
	}

	cfg, err := h.Draft.SelectLeague(sess, req.League)
	if err != nil {
		respondError(w, err)
		return
	}

	respondOK(w, LeagueResponse{
		Key:   cfg.Key,
		Name:  cfg.Name,
		Slots: cfg.Slots,
		Live:  cfg.Live,
	})
}

// handleSpin draws the next team to draft from
func (h *Handlers) handleSpin(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	result, err := h.Draft.Spin(r.Context(), sess)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleGetEligible lists the spun team's candidates for a slot
func (h *Handlers) handleGetEligible(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	slot := chi.URLParam(r, "slot")
	if slot == "" {
		respondError(w, BadRequest("Missing slot"))
		return
	}

	players, err := h.Draft.EligiblePlayers(r.Context(), sess, slot)
	if err != nil {
		respondError(w, err)
		return
	}
	if players == nil {
		players = []models.RosterEntry{}
	}

	respondOK(w, EligibleResponse{Slot: slot, Players: players})
}

// handleConfirmPick writes a confirmed pick into the session's roster
func (h *Handlers) handleConfirmPick(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	var req PickRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Slot == "" || req.Player == "" {
		respondError(w, BadRequest("Missing slot or player"))
		return
	}

	result, err := h.Draft.ConfirmPick(r.Context(), sess, req.Slot, req.Player)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, result)
}

// handleReSpin discards the spun team without filling a slot
func (h *Handlers) handleReSpin(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	if err := h.Draft.ReSpin(sess); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"status": "respin"})
}

// handleAIDraft retries a failed AI draft
func (h *Handlers) handleAIDraft(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	roster, err := h.Draft.RetryAIDraft(r.Context(), sess)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]interface{}{"ai_roster": roster})
}

// handleGetMatchup returns both completed rosters
func (h *Handlers) handleGetMatchup(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	human, ai, err := h.Draft.Matchup(sess)
	if err != nil {
		respondError(w, err)
		return
	}

	sess.Lock()
	leagueKey := sess.League
	sess.Unlock()

	resp := MatchupResponse{
		League:      leagueKey,
		HumanRoster: human,
		AIRoster:    ai,
	}
	if cfg, err := league.Get(leagueKey); err == nil {
		resp.Slots = cfg.Slots
	}
	respondOK(w, resp)
}

// handleReset clears the session for a new matchup
func (h *Handlers) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := h.sessionFromRequest(w, r)

	if err := h.Draft.Reset(sess); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"status": "reset"})
}
