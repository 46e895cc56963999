package ratelimit

import (
	"testing"
	"time"
)

func TestCeilingWithinWindow(t *testing.T) {
	l := NewLimiter(30)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	for i := 0; i < 30; i++ {
		if !l.CheckAndIncrement(1) {
			t.Fatalf("call %d rejected, want allowed", i+1)
		}
	}

	// 第 31 次：同窗口内必须拒绝
	if l.CheckAndIncrement(1) {
		t.Fatal("31st call allowed, want rejected")
	}
	if got := l.Remaining(1); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
}

func TestWindowLazyReset(t *testing.T) {
	l := NewLimiter(30)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := 0; i < 30; i++ {
		l.CheckAndIncrement(7)
	}
	if l.CheckAndIncrement(7) {
		t.Fatal("call over ceiling allowed")
	}

	// 窗口过期后的第一次调用应成功
	now = now.Add(61 * time.Second)
	if !l.CheckAndIncrement(7) {
		t.Fatal("first call after window reset rejected")
	}
	if got := l.Remaining(7); got != 29 {
		t.Errorf("Remaining after reset = %d, want 29", got)
	}
}

func TestCallersIsolated(t *testing.T) {
	l := NewLimiter(2)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	l.CheckAndIncrement(1)
	l.CheckAndIncrement(1)
	if l.CheckAndIncrement(1) {
		t.Fatal("caller 1 over ceiling allowed")
	}
	if !l.CheckAndIncrement(2) {
		t.Fatal("caller 2 rejected by caller 1's counter")
	}
}
