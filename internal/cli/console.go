package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/eiannone/keyboard"
	"github.com/fatih/color"
	"github.com/rodaine/table"

	"github.com/0x6d61/airleech/internal/engine"
)

// terminalConsole implements engine.Console against the operator's
// terminal: colored status lines, table rendering, keypress waits.
type terminalConsole struct {
	in  *bufio.Reader
	out io.Writer
}

var _ engine.Console = (*terminalConsole)(nil)

func newTerminalConsole() *terminalConsole {
	return &terminalConsole{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}
}

func (c *terminalConsole) Progressf(format string, args ...any) {
	color.New(color.FgCyan).Fprintf(c.out, "[*] "+format+"\n", args...)
}

func (c *terminalConsole) ShowNetworks(networks []engine.Network) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	idFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("ID", "SSID", "BSSID", "CH", "PWR", "ENC", "VENDOR").
		WithWriter(c.out).
		WithHeaderFormatter(headerFmt).
		WithFirstColumnFormatter(idFmt)

	for _, n := range networks {
		tbl.AddRow(n.ID, n.SSID, n.BSSID, n.Channel,
			fmt.Sprintf("%d%%", n.Signal), n.Encryption.String(), n.Vendor)
	}
	tbl.Print()
}

func (c *terminalConsole) ShowClients(clients []engine.Client) {
	if len(clients) == 0 {
		color.New(color.FgYellow).Fprintln(c.out, "[!] no clients detected, proceeding with broadcast deauth")
		return
	}

	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	tbl := table.New("MAC", "VENDOR", "FIRST SEEN").
		WithWriter(c.out).
		WithHeaderFormatter(headerFmt)
	for _, cl := range clients {
		tbl.AddRow(cl.MAC, cl.Vendor, cl.FirstSeen.Format("15:04:05"))
	}
	tbl.Print()
}

// WaitForStop blocks until any key is pressed or ctx is cancelled. When no
// terminal is available (piped stdin) it falls back to a line read.
func (c *terminalConsole) WaitForStop(ctx context.Context) error {
	pressed := make(chan error, 1)
	go func() {
		if _, _, err := keyboard.GetSingleKey(); err != nil {
			// No raw terminal; wait for a newline instead.
			_, rerr := c.in.ReadString('\n')
			pressed <- rerr
			return
		}
		pressed <- nil
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-pressed:
		return err
	}
}

func (c *terminalConsole) ReadSelection(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	color.New(color.FgYellow).Fprint(c.out, "[?] Select target(s) (e.g. 1,3 or 2-4 or all): ")

	type lineResult struct {
		line string
		err  error
	}
	read := make(chan lineResult, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		read <- lineResult{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-read:
		if r.err != nil && r.line == "" {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

func (c *terminalConsole) Confirm(prompt string) bool {
	color.New(color.FgYellow).Fprintf(c.out, "[?] %s (y/n): ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
