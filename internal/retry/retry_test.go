package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoRetriesOnce(t *testing.T) {
	calls := 0
	notified := 0
	err := Once(time.Millisecond).Do(context.Background(), func(attempt int) error {
		calls++
		if attempt != calls {
			t.Errorf("attempt = %d, want %d", attempt, calls)
		}
		return errors.New("exit status 1")
	}, func(attempt int, err error, next time.Duration) {
		notified++
		if next != time.Millisecond {
			t.Errorf("next = %v, want 1ms", next)
		}
	})

	if err == nil {
		t.Fatal("Do() error = nil, want last failure")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if notified != 1 {
		t.Errorf("notify calls = %d, want 1", notified)
	}
}

func TestDoStopsOnSuccess(t *testing.T) {
	calls := 0
	err := Once(time.Millisecond).Do(context.Background(), func(attempt int) error {
		calls++
		if attempt == 1 {
			return errors.New("transient")
		}
		return nil
	}, nil)

	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestDoPermanent(t *testing.T) {
	want := errors.New("unsupported")
	calls := 0
	err := Once(time.Millisecond).Do(context.Background(), func(int) error {
		calls++
		return Permanent(want)
	}, nil)

	if !errors.Is(err, want) {
		t.Errorf("Do() error = %v, want %v", err, want)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoCancelledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Once(time.Hour).Do(ctx, func(int) error {
		calls++
		cancel()
		return errors.New("busy")
	}, nil)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Policy{}.Do(context.Background(), func(int) error {
		calls++
		return errors.New("fail")
	}, nil)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
