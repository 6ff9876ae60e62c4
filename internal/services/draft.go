package services

import (
	"context"
	"math/rand"

	"github.com/draftspin/draftspin/internal/errors"
	"github.com/draftspin/draftspin/internal/league"
	"github.com/draftspin/draftspin/internal/logger"
	"github.com/draftspin/draftspin/internal/models"
	"github.com/draftspin/draftspin/internal/session"
	"github.com/draftspin/draftspin/pkg/sportsfeed"
)

// reelLength is how many cosmetic teams a spin shows before settling.
const reelLength = 15

// Broadcaster pushes state-change notifications to a session's open tabs.
type Broadcaster interface {
	BroadcastState(token string, state models.SessionState)
}

// DraftService drives the draft state machine for every session: league
// selection, spins, picks, the AI draft hand-off, and resets.
type DraftService struct {
	log         logger.Logger
	feed        sportsfeed.Client
	engine      *Engine
	rng         *rand.Rand
	broadcaster Broadcaster
}

// NewDraftService creates a DraftService. The rng is owned by the service
// and must not be shared with the engine's.
func NewDraftService(log logger.Logger, feed sportsfeed.Client, engine *Engine, rng *rand.Rand) *DraftService {
	return &DraftService{
		log:    log,
		feed:   feed,
		engine: engine,
		rng:    rng,
	}
}

// SetBroadcaster wires the websocket hub in after construction (the hub
// itself depends on the session manager).
func (s *DraftService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// notify pushes the session's new state to its connected tabs
func (s *DraftService) notify(sess *session.Session, state models.SessionState) {
	if s.broadcaster != nil {
		s.broadcaster.BroadcastState(sess.Token, state)
	}
}

// SpinResult is the outcome of one spin: the cosmetic reel the UI
// animates through and the team actually selected. The final team is an
// independent uniform draw; the reel has no effect on it.
type SpinResult struct {
	Reel []models.Team `json:"reel"`
	Team models.Team   `json:"team"`
}

// PickResult is the outcome of a confirmed pick.
type PickResult struct {
	Slot           string             `json:"slot"`
	Player         string             `json:"player"`
	RosterComplete bool               `json:"roster_complete"`
	AIRoster       models.DraftRoster `json:"ai_roster,omitempty"`
}

// SelectLeague activates a league for the session. Switching to a
// different league resets both rosters to the new league's slot set;
// reselecting the active league is a no-op.
func (s *DraftService) SelectLeague(sess *session.Session, key string) (league.Config, error) {
	cfg, err := league.Get(key)
	if err != nil {
		return league.Config{}, err
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.League == key {
		return cfg, nil
	}

	sess.League = key
	sess.HumanRoster = models.NewDraftRoster(cfg.Slots)
	sess.AIRoster = models.NewDraftRoster(cfg.Slots)
	sess.SpunTeam = nil
	sess.AIDraftDone = false

	s.log.Info("League selected", "token", sess.Token, "league", key)
	s.notify(sess, sess.State())
	return cfg, nil
}

// Spin draws the next team to draft from. Only legal while drafting with
// no team currently spun.
func (s *DraftService) Spin(ctx context.Context, sess *session.Session) (*SpinResult, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.League == "" {
		return nil, ErrNoLeagueSelected
	}
	if sess.SpunTeam != nil {
		return nil, ErrTeamAlreadySpun
	}
	if sess.HumanRoster.Complete() {
		return nil, ErrRosterComplete
	}

	teams, err := s.feed.ListTeams(ctx, sess.League)
	if err != nil {
		return nil, errors.Unavailable("could not load teams, try spinning again", err)
	}
	if len(teams) == 0 {
		return nil, errors.Unavailable("league has no teams", nil)
	}

	result := &SpinResult{
		Reel: make([]models.Team, reelLength),
		Team: teams[s.rng.Intn(len(teams))],
	}
	for i := range result.Reel {
		result.Reel[i] = teams[s.rng.Intn(len(teams))]
	}

	sess.SpunTeam = &result.Team
	s.log.Info("Team spun", "token", sess.Token, "team", result.Team.Nickname)
	s.notify(sess, sess.State())
	return result, nil
}

// EligiblePlayers returns the spun team's players that can fill slot. An
// empty result means the user must re-spin.
func (s *DraftService) EligiblePlayers(ctx context.Context, sess *session.Session, slot string) ([]models.RosterEntry, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.League == "" {
		return nil, ErrNoLeagueSelected
	}
	if sess.SpunTeam == nil {
		return nil, ErrNoTeamSpun
	}

	cfg, err := league.Get(sess.League)
	if err != nil {
		return nil, err
	}
	if !cfg.HasSlot(slot) {
		return nil, errors.InvalidInputf("unknown slot %q for league %s", slot, cfg.Key)
	}

	entries, err := s.feed.GetRoster(ctx, sess.League, sess.SpunTeam.ID)
	if err != nil {
		return nil, errors.Unavailable("could not load the team roster, try spinning again", err)
	}

	return Eligible(slot, entries, cfg)
}

// ConfirmPick writes player into the session's roster at slot and clears
// the spun team. When the pick completes the human roster, the AI draft
// runs once before returning.
func (s *DraftService) ConfirmPick(ctx context.Context, sess *session.Session, slot, player string) (*PickResult, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.League == "" {
		return nil, ErrNoLeagueSelected
	}
	if sess.SpunTeam == nil {
		return nil, ErrNoTeamSpun
	}

	cfg, err := league.Get(sess.League)
	if err != nil {
		return nil, err
	}
	if !cfg.HasSlot(slot) {
		return nil, errors.InvalidInputf("unknown slot %q for league %s", slot, cfg.Key)
	}
	if sess.HumanRoster[slot] != models.EmptyPick {
		return nil, ErrSlotFilled
	}

	entries, err := s.feed.GetRoster(ctx, sess.League, sess.SpunTeam.ID)
	if err != nil {
		return nil, errors.Unavailable("could not load the team roster, try spinning again", err)
	}
	eligible, err := Eligible(slot, entries, cfg)
	if err != nil {
		return nil, err
	}
	if !containsPlayer(eligible, player) {
		return nil, ErrPlayerNotEligible
	}

	sess.HumanRoster[slot] = player
	sess.SpunTeam = nil
	s.log.Info("Pick confirmed", "token", sess.Token, "slot", slot, "player", player)

	result := &PickResult{
		Slot:           slot,
		Player:         player,
		RosterComplete: sess.HumanRoster.Complete(),
	}

	if result.RosterComplete && !sess.AIDraftDone {
		if err := s.runAIDraft(ctx, sess); err != nil {
			// The pick stands; the client can retry the AI draft
			s.notify(sess, sess.State())
			return nil, err
		}
		result.AIRoster = sess.AIRoster.Clone()
	}

	s.notify(sess, sess.State())
	return result, nil
}

// ReSpin discards the spun team without filling a slot. This is the
// escape hatch when the chosen slot has no eligible players on the team.
func (s *DraftService) ReSpin(sess *session.Session) error {
	sess.Lock()
	defer sess.Unlock()

	if sess.SpunTeam == nil {
		return ErrNoTeamSpun
	}

	sess.SpunTeam = nil
	s.log.Info("Re-spin requested", "token", sess.Token)
	s.notify(sess, sess.State())
	return nil
}

// RetryAIDraft reruns the AI draft after a failed attempt. It is a no-op
// once the AI roster exists.
func (s *DraftService) RetryAIDraft(ctx context.Context, sess *session.Session) (models.DraftRoster, error) {
	sess.Lock()
	defer sess.Unlock()

	if sess.League == "" {
		return nil, ErrNoLeagueSelected
	}
	if !sess.HumanRoster.Complete() {
		return nil, ErrDraftNotComplete
	}
	if sess.AIDraftDone {
		return sess.AIRoster.Clone(), nil
	}

	if err := s.runAIDraft(ctx, sess); err != nil {
		return nil, err
	}
	s.notify(sess, sess.State())
	return sess.AIRoster.Clone(), nil
}

// runAIDraft generates the opposing roster. Caller must hold the session
// lock and have verified AIDraftDone is false.
func (s *DraftService) runAIDraft(ctx context.Context, sess *session.Session) error {
	teams, err := s.feed.ListTeams(ctx, sess.League)
	if err != nil {
		return errors.Unavailable("could not load teams for the AI draft", err)
	}

	roster, err := s.engine.GenerateRoster(ctx, sess.League, teams)
	if err != nil {
		s.log.Warn("AI draft failed", "token", sess.Token, "error", err)
		return err
	}

	sess.AIRoster = roster
	sess.AIDraftDone = true
	s.log.Info("AI draft complete", "token", sess.Token, "league", sess.League)
	return nil
}

// Matchup returns copies of both completed rosters.
func (s *DraftService) Matchup(sess *session.Session) (human, ai models.DraftRoster, err error) {
	sess.Lock()
	defer sess.Unlock()

	if !sess.AIDraftDone {
		return nil, nil, ErrMatchupNotReady
	}
	return sess.HumanRoster.Clone(), sess.AIRoster.Clone(), nil
}

// Reset clears both rosters and the spun team so a new matchup can start
// in the same league.
func (s *DraftService) Reset(sess *session.Session) error {
	sess.Lock()
	defer sess.Unlock()

	if sess.League == "" {
		return ErrNoLeagueSelected
	}

	cfg, err := league.Get(sess.League)
	if err != nil {
		return err
	}

	sess.HumanRoster = models.NewDraftRoster(cfg.Slots)
	sess.AIRoster = models.NewDraftRoster(cfg.Slots)
	sess.SpunTeam = nil
	sess.AIDraftDone = false

	s.log.Info("Session reset", "token", sess.Token, "league", sess.League)
	s.notify(sess, sess.State())
	return nil
}

// containsPlayer reports whether entries includes player by name
func containsPlayer(entries []models.RosterEntry, player string) bool {
	for _, entry := range entries {
		if entry.Player == player {
			return true
		}
	}
	return false
}
