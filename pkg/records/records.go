package records

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	StatusEscalated = "escalated"
	StatusRedacted  = "redacted"
	StatusPending   = "pending"
)

// Record is one entry in the antechamber's record log.
type Record struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Status  string `json:"status"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

var table = []Record{
	{
		ID:      "PHC7823",
		Date:    "2024-12-15 14:23",
		Status:  StatusEscalated,
		Subject: "Unauthorized access attempt",
		Body:    "Subject attempted to access restricted area without proper clearance. Multiple failed authentication attempts detected. Case escalated to Security Division. Awaiting review by Department of Access Control. Standard procedure: 72-hour investigation period. Investigation ongoing.",
	},
	{
		ID:      "PHC9451",
		Date:    "2024-12-14 09:47",
		Status:  StatusRedacted,
		Subject: "Classified document inquiry",
		Body:    "Subject requested access to [REDACTED] documents. Documents contain [REDACTED] information regarding [REDACTED]. Access denied due to [REDACTED] clearance level. Case marked for [REDACTED] review. Further details [REDACTED] by order of [REDACTED]. CYBER security protocols were bypassed during this incident.",
	},
	{
		ID:      "PHC3367",
		Date:    "2024-12-13 16:12",
		Status:  StatusPending,
		Subject: "Security clearance review",
		Body:    "Subject submitted clearance application. Background check in progress. References contacted. Previous employment verification pending. Medical evaluation scheduled. Psychological assessment required. Estimated completion: 30-45 business days. Status: Under Review. Note: Application will be processed in 2025 due to current backlog.",
	},
}

// All returns the record table in log order.
func All() []Record {
	out := make([]Record, len(table))
	copy(out, table)
	return out
}

// Find looks up a record by its exact ID (e.g. "PHC7823").
func Find(id string) (Record, bool) {
	for _, r := range table {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Listing renders the record log followed by usage instructions.
func Listing() string {
	statusWidth := 0
	for _, r := range table {
		if w := runewidth.StringWidth(r.Status); w > statusWidth {
			statusWidth = w
		}
	}

	var b strings.Builder
	b.WriteString("RECORD LOG:\n")
	for _, r := range table {
		status := runewidth.FillRight(strings.ToUpper(r.Status), statusWidth)
		fmt.Fprintf(&b, "%s | %s | %s | %s\n", r.ID, r.Date, status, r.Subject)
	}
	b.WriteString("\nTo view detailed record, type: \"view [record number]\" (e.g., \"view PHC7823\")\n")
	b.WriteString("To speak with filing clerks directly, type: \"speak to clerks\" or \"contact clerks\"")
	return b.String()
}

// Detail renders a single record, or a not-found notice for unknown IDs.
func Detail(id string) string {
	r, ok := Find(id)
	if !ok {
		return fmt.Sprintf("Record %s not found. Please check the record number and try again.", id)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "RECORD DETAIL: %s\n", r.ID)
	fmt.Fprintf(&b, "Date: %s\n", r.Date)
	fmt.Fprintf(&b, "Status: %s\n", strings.ToUpper(r.Status))
	fmt.Fprintf(&b, "Subject: %s\n", r.Subject)
	fmt.Fprintf(&b, "\nLOG BODY:\n%s\n", r.Body)

	if r.Status == StatusRedacted {
		b.WriteString("\nNOTE: This record contains redacted information as per security protocol.")
	}
	return b.String()
}
