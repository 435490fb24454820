package setup

import (
	"strings"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    InstallMode
		wantErr bool
	}{
		{"system", ModeSystem, false},
		{"user", ModeUser, false},
		{" User ", ModeUser, false},
		{"SYSTEM", ModeSystem, false},
		{"invalid", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInstallMode_Describe(t *testing.T) {
	for _, m := range []InstallMode{ModeSystem, ModeUser} {
		if !strings.HasPrefix(strings.ToLower(m.Describe()), m.String()) {
			t.Errorf("Describe() = %q, want it to start with %q", m.Describe(), m.String())
		}
	}
	if got := InstallMode(9).String(); got != "unknown" {
		t.Errorf("String() = %q, want unknown", got)
	}
}

func TestResolvePaths_UserMode(t *testing.T) {
	p := ResolvePaths(ModeUser)
	if p.BinPath == "" {
		t.Error("BinPath should not be empty")
	}
	if p.ConfigPath == "" {
		t.Error("ConfigPath should not be empty")
	}
}

func TestResolvePaths_SystemMode(t *testing.T) {
	p := ResolvePaths(ModeSystem)
	if p.BinPath == "" {
		t.Error("BinPath should not be empty")
	}
	if p.ConfigDir == "" {
		t.Error("ConfigDir should not be empty")
	}
}
