// Package league holds the static catalog of supported leagues: the roster
// slots each league drafts for and the native position codes each slot
// accepts from that league's feed.
package league

import "github.com/draftspin/draftspin/internal/errors"

// Config describes one supported league.
type Config struct {
	// Key is the short league code used in URLs and API requests.
	Key string
	// Name is the user-facing league name.
	Name string
	// Slots lists the roster slot identifiers in display order.
	Slots []string
	// Eligibility maps each slot to the native position codes accepted for
	// it. Matching is by substring, so a combo code like "F-C" satisfies a
	// filter code of "F" or "C".
	Eligibility map[string][]string
	// Live is false for leagues served by synthetic fixture data instead of
	// a real feed. It drives a user-facing advisory only.
	Live bool
}

// HasSlot reports whether slot is one of the league's roster slots.
func (c Config) HasSlot(slot string) bool {
	_, ok := c.Eligibility[slot]
	return ok
}

var catalog = map[string]Config{
	"nba": {
		Key:   "nba",
		Name:  "NBA",
		Slots: []string{"PG", "SG", "SF", "PF", "C"},
		Eligibility: map[string][]string{
			"PG": {"G", "G-F"},
			"SG": {"G", "F-G"},
			"SF": {"F", "G-F"},
			"PF": {"F", "F-C"},
			"C":  {"C", "F-C", "C-F"},
		},
		Live: true,
	},
	"epl": {
		Key:   "epl",
		Name:  "Premier League",
		Slots: []string{"GK", "DEF", "MID", "FWD"},
		Eligibility: map[string][]string{
			"GK":  {"GK"},
			"DEF": {"DEF"},
			"MID": {"MID"},
			"FWD": {"FWD"},
		},
		Live: true,
	},
	"nfl": {
		Key:   "nfl",
		Name:  "NFL",
		Slots: []string{"QB", "RB", "WR", "TE", "K"},
		Eligibility: map[string][]string{
			"QB": {"QB"},
			"RB": {"RB", "FB"},
			"WR": {"WR"},
			"TE": {"TE"},
			"K":  {"K"},
		},
	},
	"nhl": {
		Key:   "nhl",
		Name:  "NHL",
		Slots: []string{"C", "LW", "RW", "D", "G"},
		Eligibility: map[string][]string{
			"C":  {"C"},
			"LW": {"LW", "W"},
			"RW": {"RW", "W"},
			"D":  {"D"},
			"G":  {"G"},
		},
	},
}

// display order for Keys and List
var order = []string{"nba", "epl", "nfl", "nhl"}

// Get returns the configuration for a league key.
func Get(key string) (Config, error) {
	cfg, ok := catalog[key]
	if !ok {
		return Config{}, errors.NotFoundf("unknown league: %s", key)
	}
	return cfg, nil
}

// Keys returns all registered league keys in display order.
func Keys() []string {
	keys := make([]string, len(order))
	copy(keys, order)
	return keys
}

// List returns all registered league configs in display order.
func List() []Config {
	configs := make([]Config, 0, len(order))
	for _, key := range order {
		configs = append(configs, catalog[key])
	}
	return configs
}
