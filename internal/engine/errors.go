package engine

import "fmt"

// InsufficientTokensError is returned when streak protection is requested
// with an empty freeze-token budget. Recoverable; callers show a disabled
// state.
type InsufficientTokensError struct {
	Allowance int
}

func (e InsufficientTokensError) Error() string {
	return fmt.Sprintf("no freeze tokens left (allowance %d per month)", e.Allowance)
}

// AlreadyClaimedError is returned when a quest reward was already claimed
// for the week.
type AlreadyClaimedError struct {
	QuestID   string
	WeekStart string
}

func (e AlreadyClaimedError) Error() string {
	return fmt.Sprintf("quest %q already claimed for week %s", e.QuestID, e.WeekStart)
}

// NotCompleteError is returned when claiming a quest whose target is not
// yet reached.
type NotCompleteError struct {
	QuestID  string
	Progress int
	Target   int
}

func (e NotCompleteError) Error() string {
	return fmt.Sprintf("quest %q not complete (%d/%d)", e.QuestID, e.Progress, e.Target)
}
