package approval

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// txRecord is one remembered transaction, used for velocity checks.
type txRecord struct {
	amount decimal.Decimal
	at     time.Time
}

// otpChallenge is the single outstanding one-time code for an account
// within a tier. Overwritten by a newer challenge and deleted on
// successful verification or expiry.
type otpChallenge struct {
	code      string
	expiresAt time.Time
}

// reviewRecord is an Extreme-tier compliance review decision. It
// persists until a reviewer records a new decision.
type reviewRecord struct {
	approved   bool
	reviewer   string
	reviewedAt time.Time
}

// accountState holds the evaluator's per-account counters. The mutex
// serializes evaluations for the same account so the daily-limit and
// single-use-OTP invariants hold under concurrent requests.
type accountState struct {
	mu sync.Mutex

	dailyTotal decimal.Decimal
	dailyDate  string // YYYY-MM-DD of the counters

	recent     []txRecord
	pendingOTP *otpChallenge
	review     *reviewRecord
}

// resetIfNewDay clears the daily counters on the first access after a
// wall-clock date rollover. Lazy; no timers.
func (st *accountState) resetIfNewDay(now time.Time) {
	today := now.Format("2006-01-02")
	if st.dailyDate != today {
		st.dailyDate = today
		st.dailyTotal = decimal.Zero
		st.recent = nil
	}
}

// countLastHour returns how many remembered transactions fall inside
// the trailing one-hour window.
func (st *accountState) countLastHour(now time.Time) int {
	cutoff := now.Add(-time.Hour)
	n := 0
	for _, tx := range st.recent {
		if tx.at.After(cutoff) {
			n++
		}
	}
	return n
}

// record commits a successful transaction: bumps the daily total and
// appends to the recent window, trimming to the retention count.
func (st *accountState) record(amount decimal.Decimal, now time.Time, retention int) {
	st.dailyTotal = st.dailyTotal.Add(amount)
	if retention <= 0 {
		return
	}
	st.recent = append(st.recent, txRecord{amount: amount, at: now})
	if len(st.recent) > retention {
		st.recent = st.recent[len(st.recent)-retention:]
	}
}

// stateStore maps fromAddress to its evaluation state. Each tier
// evaluator owns its own store, so velocity windows and pending
// challenges are tracked per tier.
type stateStore struct {
	mu       sync.Mutex
	accounts map[string]*accountState
}

func newStateStore() *stateStore {
	return &stateStore{accounts: make(map[string]*accountState)}
}

// get returns the state for an account, creating it lazily on first
// use. State lives for the process lifetime.
func (s *stateStore) get(account string) *accountState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.accounts[account]
	if !ok {
		st = &accountState{dailyTotal: decimal.Zero}
		s.accounts[account] = st
	}
	return st
}
