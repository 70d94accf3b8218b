package usersync

import "sync/atomic"

// ChangeFeed counts remote modifications reported out of band. Sessions whose
// State.Generation is behind Current refresh on their next render.
type ChangeFeed struct {
	gen atomic.Uint64
}

// NewChangeFeed starts at generation 1 so a new session (generation 0)
// always loads once.
func NewChangeFeed() *ChangeFeed {
	f := &ChangeFeed{}
	f.gen.Store(1)
	return f
}

func (f *ChangeFeed) Current() uint64 {
	return f.gen.Load()
}

func (f *ChangeFeed) Bump() uint64 {
	return f.gen.Add(1)
}
