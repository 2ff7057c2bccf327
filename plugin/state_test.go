package plugin

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateRegistered, "registered"},
		{StatePreflighted, "preflighted"},
		{StateInitialized, "initialized"},
		{StateShutdown, "shutdown"},
		{StateFailed, "failed"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_IsTerminal(t *testing.T) {
	if StateInitialized.IsTerminal() {
		t.Error("Initialized should not be terminal")
	}
	if !StateFailed.IsTerminal() {
		t.Error("Failed should be terminal")
	}
	if !StateShutdown.IsTerminal() {
		t.Error("Shutdown should be terminal")
	}
}
