package clips

import (
	"testing"
	"time"
)

func TestLimits_Validate(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		wantErr bool
	}{
		{"defaults", DefaultLimits(), false},
		{"zero min", Limits{Min: 0, Max: 60 * time.Second, Ideal: 30 * time.Second}, true},
		{"max below min", Limits{Min: 20 * time.Second, Max: 10 * time.Second, Ideal: 15 * time.Second}, true},
		{"zero ideal", Limits{Min: 10 * time.Second, Max: 60 * time.Second, Ideal: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLimits_Bands(t *testing.T) {
	b := DefaultLimits().Bands()
	if b.Strict.Min != 10*time.Second || b.Strict.Max != 60*time.Second {
		t.Fatalf("unexpected strict band: %+v", b.Strict)
	}
	if b.Relaxed.Min != 7*time.Second {
		t.Fatalf("relaxed min should be 70%% of min, got %v", b.Relaxed.Min)
	}
	if b.Relaxed.Max != 60*time.Second {
		t.Fatalf("relaxed max should cap at 60s, got %v", b.Relaxed.Max)
	}
	if b.VeryShort != 5*time.Second {
		t.Fatalf("unexpected very-short floor: %v", b.VeryShort)
	}
}

func TestLimits_BandsClampsRelaxedFloor(t *testing.T) {
	l := Limits{Min: 4 * time.Second, Max: 20 * time.Second, Ideal: 12 * time.Second}
	b := l.Bands()
	if b.Relaxed.Min != 5*time.Second {
		t.Fatalf("relaxed min should never drop below 5s, got %v", b.Relaxed.Min)
	}
	if b.Relaxed.Max != 30*time.Second {
		t.Fatalf("relaxed max should be 150%% of max, got %v", b.Relaxed.Max)
	}
}
