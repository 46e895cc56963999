package ratelimit

import (
	"sync"
	"time"
)

// Limiter 进程内按调用方限流。窗口到期后在下一次检查时惰性重置，
// 不依赖后台定时器。定位是防止调用方死循环刷写，不是安全边界。
type Limiter struct {
	mu      sync.Mutex
	ceiling int
	window  time.Duration
	callers map[uint64]*windowCounter

	now func() time.Time
}

type windowCounter struct {
	count   int
	resetAt time.Time
}

// NewLimiter 创建限流器，ceiling 为每分钟上限
func NewLimiter(ceiling int) *Limiter {
	if ceiling <= 0 {
		ceiling = 30
	}
	return &Limiter{
		ceiling: ceiling,
		window:  time.Minute,
		callers: make(map[uint64]*windowCounter),
		now:     time.Now,
	}
}

// CheckAndIncrement 检查并占用一次配额，超限返回 false
func (l *Limiter) CheckAndIncrement(callerID uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	c, ok := l.callers[callerID]
	if !ok {
		l.callers[callerID] = &windowCounter{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	// 窗口过期，惰性重置
	if !now.Before(c.resetAt) {
		c.count = 1
		c.resetAt = now.Add(l.window)
		return true
	}

	if c.count >= l.ceiling {
		return false
	}

	c.count++
	return true
}

// Remaining 返回当前窗口剩余配额
func (l *Limiter) Remaining(callerID uint64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.callers[callerID]
	if !ok || !l.now().Before(c.resetAt) {
		return l.ceiling
	}
	if c.count >= l.ceiling {
		return 0
	}
	return l.ceiling - c.count
}
