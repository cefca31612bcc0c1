package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/jwebster45206/castle-clerk/pkg/game"
	"github.com/jwebster45206/castle-clerk/pkg/records"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
)

var recordIDPattern = regexp.MustCompile(`^PHC\d{4}$`)

func main() {
	validator := &ContentValidator{}

	if err := validator.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Castle content is valid!")
}

// ContentValidator checks the clerk's built-in content.
type ContentValidator struct {
	errors []string
}

func (v *ContentValidator) validate() error {
	fmt.Printf("Validating %d response pools...\n", len(responses.Catalog))
	v.errors = nil

	if err := responses.Validate(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			v.addError(line)
		}
	}

	fmt.Printf("Validating %d records...\n", len(records.All()))
	v.validateRecords()

	v.validateRules()

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *ContentValidator) validateRecords() {
	seen := make(map[string]bool)
	for _, r := range records.All() {
		if !recordIDPattern.MatchString(r.ID) {
			v.addError("record %q: ID must look like PHC1234", r.ID)
		}
		if seen[r.ID] {
			v.addError("record %q: duplicate ID", r.ID)
		}
		seen[r.ID] = true

		switch r.Status {
		case records.StatusEscalated, records.StatusRedacted, records.StatusPending:
		default:
			v.addError("record %q: unknown status %q", r.ID, r.Status)
		}
		if r.Subject == "" || r.Body == "" {
			v.addError("record %q: subject and body are required", r.ID)
		}
	}
}

// validateRules checks the fixed ends of the antechamber rule order.
func (v *ContentValidator) validateRules() {
	names := game.RuleNames()
	if len(names) == 0 {
		v.addError("no antechamber rules")
		return
	}
	if names[0] != "passcode" {
		v.addError("first rule is %q, want passcode", names[0])
	}
	if names[len(names)-1] != "chatter" {
		v.addError("last rule is %q, want chatter", names[len(names)-1])
	}
}

func (v *ContentValidator) addError(format string, args ...any) {
	v.errors = append(v.errors, "  - "+fmt.Sprintf(format, args...))
}
