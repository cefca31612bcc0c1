package game

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jwebster45206/castle-clerk/pkg/records"
	"github.com/jwebster45206/castle-clerk/pkg/responses"
)

const (
	// Past this many attempts the antechamber starts rolling for loops and
	// misdirection.
	pacingAfter = 5
	loopChance  = 0.3
	loopLimit   = 3

	misdirectChance = 0.3
)

// reply is a rule's answer. win replaces the text when the passcode matched.
type reply struct {
	text string
	win  bool
}

// rule is one step of the antechamber cascade. handle reports false when
// the rule does not apply, and evaluation moves on to the next rule.
type rule struct {
	name   string
	handle func(a *Antechamber, text string) (reply, bool)
}

var (
	exitPattern      = regexp.MustCompile(`^EXIT$|^STOP$|^QUIT$`)
	formPattern      = regexp.MustCompile(`FORM 247-B|SUBMIT FORM|REQUEST FORM`)
	accessPattern    = regexp.MustCompile(`DEPARTMENT OF ACCESS CONTROL|ACCESS CONTROL|CLEARANCE UPGRADE|UPGRADE CLEARANCE`)
	authorityPattern = regexp.MustCompile(`CENTRAL BUREAUCRATIC AUTHORITY|BUREAUCRATIC AUTHORITY|AUTHORITY`)
	recordsPattern   = regexp.MustCompile(`RECORD|LOG|SHOW RECORDS|LIST RECORDS|WHAT RECORDS|RECORDS|FILES|DOCUMENTS|ACCESS LOG|SYSTEM LOG`)
	viewPattern      = regexp.MustCompile(`^VIEW (PHC\d{4})$`)
	speakPattern     = regexp.MustCompile(`SPEAK TO CLERKS|CONTACT CLERKS|TALK TO CLERKS|CLERK ACCESS|ASK CLERKS|CLERK HELP`)
	filingPattern    = regexp.MustCompile(`FILING SYSTEM|HOW RECORDS|WHERE RECORDS|RECORD SYSTEM|DOCUMENT SYSTEM`)
	clerkPattern     = regexp.MustCompile(`FILING CLERK|CLERK`)
	keyPattern       = regexp.MustCompile(`KEY|WHAT KEY`)
	inhabitPattern   = regexp.MustCompile(`INHABITANT|WHO LIVES|LIVE HERE`)
	purposePattern   = regexp.MustCompile(`PURPOSE|WHY|WHAT FOR`)
	recordDefPattern = regexp.MustCompile(`WHAT IS RECORD|RECORD IS`)
	hintPattern      = regexp.MustCompile(`HINT|HELP|CLUE|GIVE ME`)
	architectPattern = regexp.MustCompile(`RUSHEEN`)
	decoyPattern     = regexp.MustCompile(`^PHC\d{4}$`)
)

// antechamberRules is evaluated top to bottom; the first rule that handles
// the input wins.
var antechamberRules = []rule{
	{"passcode", func(a *Antechamber, text string) (reply, bool) {
		return reply{win: true}, text == a.passcode
	}},
	{"exit-loop", func(a *Antechamber, text string) (reply, bool) {
		// Outside a loop exit words are ordinary input and fall through.
		if !exitPattern.MatchString(text) || !a.session.InLoop {
			return reply{}, false
		}
		a.session.InLoop = false
		a.session.LoopIntensity = 0
		return reply{text: responses.LoopBroken}, true
	}},
	fixed("form", formPattern, responses.FormDeadEnd),
	fixed("access-control", accessPattern, responses.AccessDeadEnd),
	fixed("authority", authorityPattern, responses.AuthorityDeadEnd),
	{"records", func(a *Antechamber, text string) (reply, bool) {
		if !recordsPattern.MatchString(text) {
			return reply{}, false
		}
		a.tracker.RecordsViewed()
		return reply{text: records.Listing()}, true
	}},
	{"view-record", func(a *Antechamber, text string) (reply, bool) {
		m := viewPattern.FindStringSubmatch(text)
		if m == nil {
			return reply{}, false
		}
		return reply{text: records.Detail(m[1])}, true
	}},
	pooled("speak-to-clerks", speakPattern, responses.FilingClerks),
	pooled("filing-system", filingPattern, responses.FilingSystem),
	{"technical-command", func(a *Antechamber, text string) (reply, bool) {
		out, ok := responses.TechnicalCommands[strings.ToLower(text)]
		return reply{text: out}, ok
	}},
	pooled("clerk", clerkPattern, responses.FilingClerks),
	pooled("key", keyPattern, responses.Keys),
	pooled("inhabitants", inhabitPattern, responses.Inhabitants),
	pooled("purpose", purposePattern, responses.Purposes),
	pooled("record-definition", recordDefPattern, responses.RecordDefinitions),
	{"hint", func(a *Antechamber, text string) (reply, bool) {
		if !hintPattern.MatchString(text) {
			return reply{}, false
		}
		if !a.session.HintsEnabled {
			return reply{text: responses.HintsUnavailable}, true
		}
		hint := a.pick(responses.Hints)
		a.tracker.HintUsed("hint_requested", a.session.Attempts)
		return reply{text: hint}, true
	}},
	pooled("architect", architectPattern, responses.Architect),
	{"decoy-record", func(a *Antechamber, text string) (reply, bool) {
		if !decoyPattern.MatchString(text) {
			return reply{}, false
		}
		if _, exists := records.Find(text); exists {
			return reply{}, false
		}
		line := fmt.Sprintf(responses.Choose(a.rng, responses.Decoys), text)
		a.session.Remember(line)
		return reply{text: line}, true
	}},
	{"loop", func(a *Antechamber, text string) (reply, bool) {
		s := a.session
		if s.Attempts <= pacingAfter || a.rng.Float64() >= loopChance {
			return reply{}, false
		}
		s.InLoop = true
		s.LoopIntensity++
		if s.LoopIntensity < loopLimit {
			return reply{}, false
		}
		return reply{text: a.pick(responses.Loops)}, true
	}},
	{"misdirection", func(a *Antechamber, text string) (reply, bool) {
		if a.session.Attempts <= pacingAfter || a.rng.Float64() >= misdirectChance {
			return reply{}, false
		}
		return reply{text: a.pick(responses.Misdirection)}, true
	}},
	{"chatter", func(a *Antechamber, text string) (reply, bool) {
		return reply{text: a.pick(responses.Chatter)}, true
	}},
}

func fixed(name string, pattern *regexp.Regexp, text string) rule {
	return rule{name, func(a *Antechamber, input string) (reply, bool) {
		return reply{text: text}, pattern.MatchString(input)
	}}
}

func pooled(name string, pattern *regexp.Regexp, pool responses.Pool) rule {
	return rule{name, func(a *Antechamber, input string) (reply, bool) {
		if !pattern.MatchString(input) {
			return reply{}, false
		}
		return reply{text: a.pick(pool)}, true
	}}
}

// RuleNames lists the antechamber rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(antechamberRules))
	for i, r := range antechamberRules {
		names[i] = r.name
	}
	return names
}
