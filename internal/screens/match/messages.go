package match

import (
	"time"

	sess "eqscout/internal/session"
)

// timerTickMsg is sent every second to drive the scenario countdown.
type timerTickMsg time.Time

// finishDoneMsg is sent when the full-time report pipeline has completed.
type finishDoneMsg struct {
	Result *sess.Result
}
