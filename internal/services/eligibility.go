package services

import (
	"strings"

	"github.com/draftspin/draftspin/internal/errors"
	"github.com/draftspin/draftspin/internal/league"
	"github.com/draftspin/draftspin/internal/models"
)

// Eligible returns every roster entry that can fill slot under the
// league's eligibility map. A native position code matches when it
// contains any accepted code as a substring, so a combo code like "F-C"
// satisfies both an "F" filter and a "C" filter. An empty result is a
// normal outcome, not an error: it forces a re-spin upstream.
func Eligible(slot string, entries []models.RosterEntry, cfg league.Config) ([]models.RosterEntry, error) {
	codes, ok := cfg.Eligibility[slot]
	if !ok {
		return nil, errors.InvalidInputf("unknown slot %q for league %s", slot, cfg.Key)
	}

	var eligible []models.RosterEntry
	for _, entry := range entries {
		if matchesAny(entry.Position, codes) {
			eligible = append(eligible, entry)
		}
	}
	return eligible, nil
}

// matchesAny reports whether position contains any of codes as a substring
func matchesAny(position string, codes []string) bool {
	for _, code := range codes {
		if strings.Contains(position, code) {
			return true
		}
	}
	return false
}
