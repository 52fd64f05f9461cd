package interaction

import (
	"sync"
	"time"
)

// Level is the severity of a user-facing notice.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notice is a transient message for the user, e.g. the server's toggle message.
type Notice struct {
	Level Level
	Text  string
	At    time.Time
}

// Notifier surfaces notices to the user.
type Notifier interface {
	Notify(n Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

// NoticeLog records notices until a view drains them. Safe for concurrent use.
type NoticeLog struct {
	mu      sync.Mutex
	notices []Notice
	now     func() time.Time
}

// NewNoticeLog creates an empty log.
func NewNoticeLog() *NoticeLog {
	return &NoticeLog{now: time.Now}
}

func (l *NoticeLog) Notify(n Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n.At.IsZero() {
		n.At = l.now()
	}
	l.notices = append(l.notices, n)
}

// Drain returns and forgets every recorded notice, oldest first.
func (l *NoticeLog) Drain() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.notices
	l.notices = nil
	return out
}

// Last returns the most recent notice without draining.
func (l *NoticeLog) Last() (Notice, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.notices) == 0 {
		return Notice{}, false
	}
	return l.notices[len(l.notices)-1], true
}

// Len returns the number of pending notices.
func (l *NoticeLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.notices)
}
