package core

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestSafeRunRecoversPanic(t *testing.T) {
	ctx := WithLogger(context.Background(), zap.NewNop())

	err := SafeRun(ctx, "official", func(context.Context) error {
		panic("index out of range")
	})
	if err == nil {
		t.Fatal("SafeRun() error = nil, want panic error")
	}
	if !strings.Contains(err.Error(), "official panicked") {
		t.Errorf("SafeRun() error = %v", err)
	}
}

func TestSafeRunPassesThroughError(t *testing.T) {
	want := errors.New("exit status 1")
	err := SafeRun(context.Background(), "aur", func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Errorf("SafeRun() error = %v, want %v", err, want)
	}
}

func TestLoggerFromDefaultsToNop(t *testing.T) {
	if LoggerFrom(context.Background()) == nil {
		t.Fatal("LoggerFrom() returned nil")
	}
}
