package responses

import (
	"errors"
	"fmt"
	"strings"
)

// Catalog names every pool so content checks can report by name.
var Catalog = map[string]Pool{
	"greetings":          Greetings,
	"purpose_noted":      PurposeNoted,
	"wrong_code":         WrongCode,
	"taunts":             Taunts,
	"filing_clerks":      FilingClerks,
	"filing_system":      FilingSystem,
	"keys":               Keys,
	"inhabitants":        Inhabitants,
	"purposes":           Purposes,
	"record_definitions": RecordDefinitions,
	"hints":              Hints,
	"chatter":            Chatter,
	"misdirection":       Misdirection,
	"loops":              Loops,
	"exits":              Exits,
	"architect":          Architect,
	"decoys":             Decoys,
}

// Validate checks the built-in content: no empty pools or entries, no
// duplicates within a pool, whole hint bands, one %s per decoy, and
// lowercase single-word command keys.
func Validate() error {
	var errs []error

	for name, pool := range Catalog {
		if len(pool) == 0 {
			errs = append(errs, fmt.Errorf("%s: pool is empty", name))
			continue
		}
		seen := make(map[string]bool, len(pool))
		for i, entry := range pool {
			if strings.TrimSpace(entry) == "" {
				errs = append(errs, fmt.Errorf("%s[%d]: entry is blank", name, i))
			}
			if seen[entry] {
				errs = append(errs, fmt.Errorf("%s[%d]: duplicate entry %q", name, i, entry))
			}
			seen[entry] = true
		}
	}

	if len(Hints)%HintBandSize != 0 || len(Hints)/HintBandSize != 3 {
		errs = append(errs, fmt.Errorf("hints: want 3 bands of %d, have %d entries", HintBandSize, len(Hints)))
	}

	for i, d := range Decoys {
		if strings.Count(d, "%s") != 1 || strings.Count(d, "%") != 1 {
			errs = append(errs, fmt.Errorf("decoys[%d]: want exactly one %%s verb", i))
		}
	}

	for cmd, out := range TechnicalCommands {
		if cmd != strings.ToLower(cmd) || strings.ContainsAny(cmd, " \t") {
			errs = append(errs, fmt.Errorf("technical command %q must be a lowercase word", cmd))
		}
		if out == "" {
			errs = append(errs, fmt.Errorf("technical command %q has no output", cmd))
		}
	}

	return errors.Join(errs...)
}
