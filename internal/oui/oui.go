// Package oui resolves MAC address prefixes to vendor labels from a small
// embedded table of common access point and client vendors. Lookups are a
// map read: they never block and never touch the network, so display paths
// can call them freely. An unknown prefix yields the empty string, which
// callers render silently.
package oui

import "strings"

// vendors maps the first three octets (upper-case, colon-separated) to a
// vendor label. The table covers the OUIs most commonly seen on consumer
// and SMB wireless gear; completeness is not a goal.
var vendors = map[string]string{
	"00:03:7F": "Atheros",
	"00:0C:41": "Cisco-Linksys",
	"00:14:6C": "Netgear",
	"00:17:88": "Philips",
	"00:18:39": "Cisco-Linksys",
	"00:1A:70": "Cisco-Linksys",
	"00:1D:7E": "Cisco-Linksys",
	"00:25:9C": "Cisco-Linksys",
	"00:26:5A": "D-Link",
	"04:18:D6": "Ubiquiti",
	"08:86:3B": "Belkin",
	"0C:80:63": "TP-Link",
	"14:91:82": "Belkin",
	"18:E8:29": "Ubiquiti",
	"1C:7E:E5": "D-Link",
	"20:4E:7F": "Netgear",
	"28:C6:8E": "Netgear",
	"30:B5:C2": "TP-Link",
	"3C:84:6A": "TP-Link",
	"44:94:FC": "Netgear",
	"50:C7:BF": "TP-Link",
	"54:A0:50": "ASUSTek",
	"60:38:E0": "Belkin",
	"68:72:51": "Ubiquiti",
	"6C:70:9F": "Apple",
	"74:AC:B9": "Ubiquiti",
	"78:8A:20": "Ubiquiti",
	"7C:10:C9": "ASUSTek",
	"84:16:F9": "TP-Link",
	"88:36:6C": "EFM Networks",
	"8C:3B:AD": "Netgear",
	"90:9A:4A": "TP-Link",
	"94:10:3E": "Belkin",
	"98:DA:C4": "TP-Link",
	"9C:3D:CF": "Netgear",
	"A0:21:B7": "Netgear",
	"A0:63:91": "Netgear",
	"A4:2B:8C": "Netgear",
	"AC:84:C6": "TP-Link",
	"B0:4E:26": "TP-Link",
	"B0:7F:B9": "Netgear",
	"B8:27:EB": "Raspberry Pi",
	"BC:92:6B": "Apple",
	"C0:25:E9": "TP-Link",
	"C4:6E:1F": "TP-Link",
	"CC:2D:E0": "Routerboard",
	"D8:0D:17": "TP-Link",
	"DC:A6:32": "Raspberry Pi",
	"E4:8D:8C": "Routerboard",
	"E8:94:F6": "TP-Link",
	"EC:08:6B": "TP-Link",
	"F0:9F:C2": "Ubiquiti",
	"F4:F2:6D": "TP-Link",
	"F8:1A:67": "TP-Link",
	"FC:EC:DA": "Ubiquiti",
}

// Lookup returns the vendor label for a MAC address, or "" when the prefix
// is not in the table.
func Lookup(mac string) string {
	mac = strings.ToUpper(strings.TrimSpace(mac))
	mac = strings.ReplaceAll(mac, "-", ":")
	if len(mac) < 8 {
		return ""
	}
	return vendors[mac[:8]]
}
