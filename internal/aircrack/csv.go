package aircrack

import (
	"strconv"
	"strings"

	"github.com/0x6d61/airleech/internal/engine"
)

// Column layout of airodump-ng's CSV dump. The file has two sections: the
// access point table (header starts with "BSSID") and the station table
// (header starts with "Station MAC").
const (
	apColBSSID   = 0
	apColChannel = 3
	apColPrivacy = 5
	apColPower   = 8
	apColESSID   = 13

	stColMAC   = 0
	stColBSSID = 5
)

// parseAirodumpCSV parses one CSV dump into samples, networks first, then
// stations. Malformed rows are skipped; airodump truncates the file
// mid-write often enough that partial rows are normal.
func parseAirodumpCSV(data string) []engine.Sample {
	var samples []engine.Sample

	inStations := false
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\x00", ""))
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "BSSID") {
			inStations = false
			continue
		}
		if strings.HasPrefix(line, "Station MAC") {
			inStations = true
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		if inStations {
			if len(parts) <= stColBSSID || parts[stColMAC] == "" {
				continue
			}
			// "(not associated)" stations carry no usable BSSID.
			bssid := parts[stColBSSID]
			if strings.Contains(bssid, "not associated") {
				bssid = ""
			}
			samples = append(samples, engine.Sample{
				Kind:    engine.SampleClient,
				BSSID:   bssid,
				Station: parts[stColMAC],
			})
			continue
		}

		if len(parts) <= apColESSID || !looksLikeMAC(parts[apColBSSID]) {
			continue
		}
		channel, _ := strconv.Atoi(parts[apColChannel])
		power, _ := strconv.Atoi(parts[apColPower])
		essid := parts[apColESSID]
		if strings.HasPrefix(essid, "<length:") {
			essid = "" // hidden SSID placeholder
		}
		samples = append(samples, engine.Sample{
			Kind:       engine.SampleNetwork,
			BSSID:      parts[apColBSSID],
			SSID:       essid,
			Channel:    channel,
			SignalDBM:  power,
			Encryption: parseEncryption(parts[apColPrivacy]),
		})
	}

	return samples
}

// parseEncryption maps airodump's privacy column to the engine enum. The
// column lists protocols space-separated ("WPA2 WPA"), so match on whole
// tokens rather than substrings.
func parseEncryption(privacy string) engine.Encryption {
	tokens := strings.Fields(strings.ToUpper(privacy))
	has := func(want string) bool {
		for _, tok := range tokens {
			if tok == want {
				return true
			}
		}
		return false
	}
	switch {
	case has("WPA3") && has("WPA2"):
		return engine.EncMixed
	case has("WPA3"):
		return engine.EncWPA3
	case has("WPA2") && has("WPA"):
		return engine.EncMixed
	case has("WPA2"):
		return engine.EncWPA2
	case has("WPA"):
		return engine.EncWPA
	case has("WEP"):
		return engine.EncWEP
	case has("OPN"):
		return engine.EncOpen
	default:
		return engine.EncUnknown
	}
}

// looksLikeMAC is a cheap shape check used to reject header and summary
// rows without a full parse.
func looksLikeMAC(s string) bool {
	return len(s) == 17 && strings.Count(s, ":") == 5
}
