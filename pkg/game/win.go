package game

import (
	"fmt"
	"time"

	"github.com/jwebster45206/castle-clerk/pkg/responses"
)

const ShareTitle = "Kafka's Castle"

// FormatElapsed renders a completion time as "42s" or "3m 7s".
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	if m := secs / 60; m > 0 {
		return fmt.Sprintf("%dm %ds", m, secs%60)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatClock renders the running timer as "07" or "03:07".
func FormatClock(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	if m := secs / 60; m > 0 {
		return fmt.Sprintf("%02d:%02d", m, secs%60)
	}
	return fmt.Sprintf("%02d", secs)
}

// ShareText is the brag line offered after a win.
func ShareText(elapsed string) string {
	return fmt.Sprintf("I beat the castle in %s - think you can do it faster?", elapsed)
}

// ExitLine picks the line shown in the exit dialog.
func ExitLine(rng responses.Rand) string {
	if rng == nil {
		rng = globalRand{}
	}
	return responses.Choose(rng, responses.Exits)
}
