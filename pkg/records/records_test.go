package records

import (
	"strings"
	"testing"
)

func TestFind(t *testing.T) {
	tests := []struct {
		id     string
		found  bool
		status string
	}{
		{"PHC7823", true, StatusEscalated},
		{"PHC9451", true, StatusRedacted},
		{"PHC3367", true, StatusPending},
		{"PHC0000", false, ""},
		{"phc7823", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			r, ok := Find(tt.id)
			if ok != tt.found {
				t.Fatalf("Find(%q) found = %v, want %v", tt.id, ok, tt.found)
			}
			if r.Status != tt.status {
				t.Errorf("Find(%q).Status = %q, want %q", tt.id, r.Status, tt.status)
			}
		})
	}
}

func TestListing(t *testing.T) {
	out := Listing()

	if !strings.HasPrefix(out, "RECORD LOG:\n") {
		t.Errorf("Listing() missing header: %q", out[:20])
	}
	if !strings.Contains(out, "PHC7823 | 2024-12-15 14:23 | ESCALATED | Unauthorized access attempt\n") {
		t.Errorf("Listing() missing escalated row:\n%s", out)
	}
	// shorter statuses are padded so the subject column lines up
	if !strings.Contains(out, "PHC3367 | 2024-12-13 16:12 | PENDING   | Security clearance review\n") {
		t.Errorf("Listing() pending row not aligned:\n%s", out)
	}
	if !strings.Contains(out, `"view PHC7823"`) {
		t.Error("Listing() missing view instructions")
	}
	for _, r := range All() {
		if strings.Contains(out, r.Body) {
			t.Errorf("Listing() leaked body of %s", r.ID)
		}
	}
}

func TestDetail(t *testing.T) {
	out := Detail("PHC7823")
	for _, want := range []string{
		"RECORD DETAIL: PHC7823",
		"Status: ESCALATED",
		"Subject: Unauthorized access attempt",
		"LOG BODY:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Detail(PHC7823) missing %q", want)
		}
	}
	if strings.Contains(out, "NOTE:") {
		t.Error("Detail(PHC7823) has redaction note")
	}

	if !strings.Contains(Detail("PHC9451"), "NOTE: This record contains redacted information") {
		t.Error("Detail(PHC9451) missing redaction note")
	}

	if got, want := Detail("PHC0000"), "Record PHC0000 not found. Please check the record number and try again."; got != want {
		t.Errorf("Detail(PHC0000) = %q, want %q", got, want)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Status = "tampered"
	if r, _ := Find("PHC7823"); r.Status != StatusEscalated {
		t.Error("All() exposed the backing table")
	}
}
