package usecase

import (
	"sync"
	"time"
)

// NoticeTTL is how long a user-facing error message stays visible.
const NoticeTTL = 5 * time.Second

// Notice holds at most one transient message that clears itself after its TTL.
type Notice struct {
	mu      sync.Mutex
	msg     string
	expires time.Time
	ttl     time.Duration
	now     func() time.Time
}

// NewNotice creates a Notice. A non-positive ttl falls back to NoticeTTL and a nil clock to time.Now.
func NewNotice(ttl time.Duration, now func() time.Time) *Notice {
	if ttl <= 0 {
		ttl = NoticeTTL
	}
	if now == nil {
		now = time.Now
	}
	return &Notice{ttl: ttl, now: now}
}

// Publish replaces the current message and restarts its TTL. An empty message clears it.
func (n *Notice) Publish(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msg = msg
	n.expires = n.now().Add(n.ttl)
}

// Clear drops the current message.
func (n *Notice) Clear() {
	n.Publish("")
}

// Current returns the active message, or "" once it has expired.
func (n *Notice) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.msg == "" || !n.now().Before(n.expires) {
		return ""
	}
	return n.msg
}
