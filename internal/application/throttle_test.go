package application

import (
	"context"
	"errors"
	"testing"
)

func TestNewFileThrottleDisabled(t *testing.T) {
	th := newFileThrottle(0)
	if _, ok := th.(unthrottled); !ok {
		t.Fatalf("expected unthrottled for zero rate, got %T", th)
	}
	if err := th.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFileThrottleHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, th := range []throttler{newFileThrottle(0), newFileThrottle(0.001)} {
		if err := th.Wait(ctx); !errors.Is(err, context.Canceled) {
			t.Fatalf("%T: expected context.Canceled, got %v", th, err)
		}
	}
}

func TestFileThrottleAllowsFirstFile(t *testing.T) {
	th := newFileThrottle(1)
	if err := th.Wait(context.Background()); err != nil {
		t.Fatalf("expected first file to pass immediately, got %v", err)
	}
}
