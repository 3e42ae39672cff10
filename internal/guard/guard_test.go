package guard

import "testing"

func TestTransitions(t *testing.T) {
	g := New(nil)

	if g.State() != Clean {
		t.Fatalf("new guard state = %v, want clean", g.State())
	}

	g.MarkDirty()
	if g.State() != Dirty {
		t.Errorf("state after MarkDirty = %v, want dirty", g.State())
	}

	// Dirty -> Dirty is a no-op
	g.MarkDirty()
	if g.State() != Dirty {
		t.Errorf("state after repeated MarkDirty = %v, want dirty", g.State())
	}

	g.MarkClean()
	if g.State() != Clean {
		t.Errorf("state after MarkClean = %v, want clean", g.State())
	}
}

func TestShouldBlockUnload(t *testing.T) {
	g := New(nil)
	if g.ShouldBlockUnload() {
		t.Error("clean guard should not block unload")
	}
	g.MarkDirty()
	if !g.ShouldBlockUnload() {
		t.Error("dirty guard should block unload")
	}
}

func TestNavigate(t *testing.T) {
	internal := Navigation{Internal: true}

	tests := []struct {
		name         string
		dirty        bool
		nav          Navigation
		confirm      bool
		wantProceed  bool
		wantNavCalls int
		wantState    State
	}{
		{
			name:         "clean internal navigation proceeds",
			nav:          internal,
			wantProceed:  true,
			wantNavCalls: 1,
			wantState:    Clean,
		},
		{
			name:         "dirty internal navigation confirmed",
			dirty:        true,
			nav:          internal,
			confirm:      true,
			wantProceed:  true,
			wantNavCalls: 1,
			wantState:    Clean,
		},
		{
			name:         "dirty internal navigation declined",
			dirty:        true,
			nav:          internal,
			confirm:      false,
			wantProceed:  false,
			wantNavCalls: 0,
			wantState:    Dirty,
		},
		{
			name:         "external link exempt even when dirty",
			dirty:        true,
			nav:          Navigation{Internal: false},
			wantProceed:  true,
			wantNavCalls: 1,
			wantState:    Dirty,
		},
		{
			name:         "new tab exempt even when dirty",
			dirty:        true,
			nav:          Navigation{Internal: true, NewTab: true},
			wantProceed:  true,
			wantNavCalls: 1,
			wantState:    Dirty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompted := 0
			g := New(func() bool {
				prompted++
				return tt.confirm
			})
			if tt.dirty {
				g.MarkDirty()
			}

			navCalls := 0
			proceeded := g.Navigate(tt.nav, func() { navCalls++ })

			if proceeded != tt.wantProceed {
				t.Errorf("Navigate() = %v, want %v", proceeded, tt.wantProceed)
			}
			if navCalls != tt.wantNavCalls {
				t.Errorf("navigate calls = %d, want %d", navCalls, tt.wantNavCalls)
			}
			if g.State() != tt.wantState {
				t.Errorf("state = %v, want %v", g.State(), tt.wantState)
			}
			if !tt.dirty && prompted > 0 {
				t.Error("clean navigation must not prompt")
			}
			if tt.dirty && !tt.nav.Internal && prompted > 0 {
				t.Error("external navigation must not prompt")
			}
		})
	}
}

func TestNavigateNilConfirmCancelsWhenDirty(t *testing.T) {
	g := New(nil)
	g.MarkDirty()

	navCalls := 0
	if g.Navigate(Navigation{Internal: true}, func() { navCalls++ }) {
		t.Error("Navigate() with no confirm prompt should cancel while dirty")
	}
	if navCalls != 0 {
		t.Errorf("navigate calls = %d, want 0", navCalls)
	}
}
