package tui

// Messages for the tea program

// CheckCompleteMsg is sent when a credibility check finishes
type CheckCompleteMsg struct {
	Result *CheckResult
	Err    error
}

// EvidenceCountMsg is sent when the evidence count is fetched
type EvidenceCountMsg struct {
	Count int
	Err   error
}
