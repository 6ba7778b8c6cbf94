package engine

import (
	"path/filepath"
	"testing"
)

func TestSignalPercent(t *testing.T) {
	tests := []struct {
		dbm  int
		want int
	}{
		{-100, 0},
		{-120, 0}, // clamped low
		{-72, 40},
		{-61, 55},
		{-51, 70},
		{-30, 100},
		{-10, 100}, // clamped high
	}
	for _, tt := range tests {
		if got := SignalPercent(tt.dbm); got != tt.want {
			t.Errorf("SignalPercent(%d) = %d, want %d", tt.dbm, got, tt.want)
		}
	}
}

func TestEncryptionString(t *testing.T) {
	tests := []struct {
		enc  Encryption
		want string
	}{
		{EncUnknown, "?"},
		{EncOpen, "OPN"},
		{EncWEP, "WEP"},
		{EncWPA, "WPA"},
		{EncWPA2, "WPA2"},
		{EncWPA3, "WPA3"},
		{EncMixed, "WPA/WPA2"},
		{Encryption(99), "?"},
	}
	for _, tt := range tests {
		if got := tt.enc.String(); got != tt.want {
			t.Errorf("Encryption(%d).String() = %q, want %q", tt.enc, got, tt.want)
		}
	}
}

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusSuccess, "success"},
		{StatusHandshakeOnly, "handshake-only"},
		{StatusFailed, "failed"},
		{StatusSkipped, "skipped"},
		{StatusAborted, "aborted"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestSanitizeSSID(t *testing.T) {
	tests := []struct {
		ssid string
		want string
	}{
		{"HomeNet", "HomeNet"},
		{"Cafe WiFi 5G", "Cafe_WiFi_5G"},
		{"net/with\\bad:chars", "net_with_bad_chars"},
		{"ok-name_1.2", "ok-name_1.2"},
		{"", "hidden"},
		{HiddenSSID, "hidden"},
	}
	for _, tt := range tests {
		if got := SanitizeSSID(tt.ssid); got != tt.want {
			t.Errorf("SanitizeSSID(%q) = %q, want %q", tt.ssid, got, tt.want)
		}
	}
}

func TestArtifactPath(t *testing.T) {
	n := Network{SSID: "Cafe WiFi", BSSID: "AA:BB:CC:DD:EE:FF"}
	got := ArtifactPath("handshakes", n)
	want := filepath.Join("handshakes", "Cafe_WiFi_aabbccddeeff.cap")
	if got != want {
		t.Errorf("ArtifactPath() = %q, want %q", got, want)
	}

	hidden := Network{SSID: HiddenSSID, BSSID: "AA:BB:CC:DD:EE:FF"}
	got = ArtifactPath("handshakes", hidden)
	want = filepath.Join("handshakes", "hidden_aabbccddeeff.cap")
	if got != want {
		t.Errorf("ArtifactPath(hidden) = %q, want %q", got, want)
	}
}

func TestRunResultCounts(t *testing.T) {
	res := &RunResult{Outcomes: []TargetOutcome{
		{Captured: true, Status: StatusSuccess},
		{Captured: true, Status: StatusHandshakeOnly},
		{Captured: false, Status: StatusFailed},
		{Captured: false, Status: StatusSkipped},
	}}
	if got := res.CapturedCount(); got != 2 {
		t.Errorf("CapturedCount() = %d, want 2", got)
	}
	if got := res.CrackedCount(); got != 1 {
		t.Errorf("CrackedCount() = %d, want 1", got)
	}
}
