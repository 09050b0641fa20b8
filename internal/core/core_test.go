package core

import (
	"testing"
	"time"
)

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()

	if f.Has(ActionJump) {
		t.Error("new frame should not have any actions")
	}

	f.Set(ActionJump)
	f.Set(ActionLeft)
	if !f.Has(ActionJump) || !f.Has(ActionLeft) {
		t.Error("frame should hold both actions after Set")
	}

	f.Release(ActionJump)
	if f.Has(ActionJump) {
		t.Error("Release should drop the action")
	}
	if !f.Has(ActionLeft) {
		t.Error("Release should not affect other actions")
	}

	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear should drop all actions")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionRight) {
		t.Error("zero frame should not hold actions")
	}
	f.Release(ActionRight)
	f.Set(ActionRight)
	if !f.Has(ActionRight) {
		t.Error("Set on a zero frame should hold the action")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)

	c := f.Clone()
	c.Set(ActionJump)
	c.Release(ActionRight)

	if !f.Has(ActionRight) || f.Has(ActionJump) {
		t.Error("mutating a clone should not affect the original")
	}
}

func TestInputFrameString(t *testing.T) {
	var f InputFrame
	if got := f.String(); got != "-" {
		t.Errorf("empty frame = %q", got)
	}
	f.Set(ActionJump)
	f.Set(ActionLeft)
	f.Set(ActionNone)
	if got := f.String(); got != "Left+Jump" {
		t.Errorf("String() = %q, expected Left+Jump", got)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionLeft, "Left"},
		{ActionRight, "Right"},
		{ActionJump, "Jump"},
		{ActionPause, "Pause"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.want {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.want)
		}
	}
}

func TestSimClock(t *testing.T) {
	var c SimClock
	if c.Now() != 0 {
		t.Fatalf("new clock should start at 0, got %v", c.Now())
	}

	c.Advance(8 * time.Millisecond)
	c.Advance(2 * time.Millisecond)
	c.Advance(-time.Second)
	if c.Now() != 10*time.Millisecond {
		t.Errorf("Now() = %v, expected 10ms", c.Now())
	}

	c.Reset()
	if c.Now() != 0 {
		t.Errorf("after Reset, Now() = %v, expected 0", c.Now())
	}
}

func TestParseColor(t *testing.T) {
	if c, ok := ParseColor("bright_cyan"); !ok || c != ColorBrightCyan {
		t.Errorf("ParseColor(bright_cyan) = %v, %v", c, ok)
	}
	if c, ok := ParseColor("plaid"); ok || c != ColorDefault {
		t.Errorf("ParseColor(plaid) = %v, %v, expected default and false", c, ok)
	}
}
