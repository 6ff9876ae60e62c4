package services

// Service errors
var (
	ErrNoLeagueSelected  = &ServiceError{Message: "no league selected"}
	ErrTeamAlreadySpun   = &ServiceError{Message: "a team has already been spun"}
	ErrNoTeamSpun        = &ServiceError{Message: "no team has been spun"}
	ErrRosterComplete    = &ServiceError{Message: "roster is already complete"}
	ErrSlotFilled        = &ServiceError{Message: "slot is already filled"}
	ErrPlayerNotEligible = &ServiceError{Message: "player is not eligible for this slot"}
	ErrMatchupNotReady   = &ServiceError{Message: "matchup is not ready yet"}
	ErrDraftNotComplete  = &ServiceError{Message: "human roster is not complete"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
