package tui

// SessionProgress counts elapsed timer seconds against the planned length
// of a session.
type SessionProgress struct {
	total   int
	elapsed int
}

// NewSessionProgress tracks a session of total seconds. A non-positive
// total (stopwatch) never reports progress.
func NewSessionProgress(total int) *SessionProgress {
	return &SessionProgress{total: total}
}

// Advance records one elapsed second.
func (p *SessionProgress) Advance() {
	p.elapsed++
}

// Complete marks the whole session as elapsed.
func (p *SessionProgress) Complete() {
	p.elapsed = max(p.elapsed, p.total)
}

// Known reports whether the session has a fixed length.
func (p *SessionProgress) Known() bool {
	return p.total > 0
}

// Elapsed returns the counted seconds.
func (p *SessionProgress) Elapsed() int {
	return p.elapsed
}

// Percent returns the elapsed share of the session, clamped to 0..1.
func (p *SessionProgress) Percent() float64 {
	if p.total <= 0 {
		return 0
	}
	return min(float64(p.elapsed)/float64(p.total), 1)
}
