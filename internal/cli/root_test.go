package cli

import "testing"

func TestRootCommandWiring(t *testing.T) {
	want := map[string]bool{"attack": false, "runs": false, "version": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q is not registered", name)
		}
	}
}

func TestPersistentFlagDefaults(t *testing.T) {
	tests := []struct {
		name string
		def  string
	}{
		{"interface", ""},
		{"wordlist", ""},
		{"handshake-dir", "handshakes"},
		{"results", "airleech.db"},
		{"detect-timeout", "15s"},
		{"capture-timeout", "1m0s"},
		{"deauth-interval", "3s"},
		{"poll-interval", "1s"},
		{"verbose", "0"},
		{"output", ""},
		{"format", "text"},
	}
	flags := rootCmd.PersistentFlags()
	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("flag --%s is not defined", tt.name)
			continue
		}
		if f.DefValue != tt.def {
			t.Errorf("flag --%s default = %q, want %q", tt.name, f.DefValue, tt.def)
		}
	}
}

func TestShorthandFlags(t *testing.T) {
	flags := rootCmd.PersistentFlags()
	shorthands := map[string]string{
		"interface": "i",
		"wordlist":  "w",
		"verbose":   "v",
		"output":    "o",
		"format":    "f",
	}
	for name, short := range shorthands {
		f := flags.Lookup(name)
		if f == nil {
			t.Errorf("flag --%s is not defined", name)
			continue
		}
		if f.Shorthand != short {
			t.Errorf("flag --%s shorthand = %q, want %q", name, f.Shorthand, short)
		}
	}
}
