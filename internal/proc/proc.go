// Package proc supervises long-running external tool processes: start,
// bounded-grace stop, liveness, and a process-wide registry so a top-level
// interrupt can terminate every child that is still running.
package proc

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// stopGrace is how long Stop waits after SIGTERM before sending SIGKILL.
const stopGrace = 2 * time.Second

// SpawnError reports that an external tool could not be started, usually
// because the binary is missing or an argument was rejected immediately.
type SpawnError struct {
	Tool string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("proc: spawn %s: %v", e.Tool, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Handle is one supervised child process.
type Handle struct {
	name string
	cmd  *exec.Cmd
	done chan struct{}

	mu        sync.Mutex
	stopped   bool
	waitErr   error
	artifacts []string // transient files removed on stop
}

// Option configures a Handle before the process starts.
type Option func(*Handle)

// WithStdout redirects the child's stdout (stderr is always discarded).
func WithStdout(w io.Writer) Option {
	return func(h *Handle) { h.cmd.Stdout = w }
}

// WithArtifacts registers transient files the child leaves behind; they
// are removed when the handle is stopped.
func WithArtifacts(paths ...string) Option {
	return func(h *Handle) { h.artifacts = append(h.artifacts, paths...) }
}

// Start launches tool with args as a supervised child and registers the
// handle in the default registry. A missing binary or immediate launch
// failure is returned as *SpawnError.
func Start(tool string, args []string, opts ...Option) (*Handle, error) {
	if _, err := exec.LookPath(tool); err != nil {
		return nil, &SpawnError{Tool: tool, Err: err}
	}

	h := &Handle{
		name: tool,
		cmd:  exec.Command(tool, args...),
		done: make(chan struct{}),
	}
	h.cmd.Stdout = io.Discard
	h.cmd.Stderr = io.Discard
	for _, opt := range opts {
		opt(h)
	}

	if err := h.cmd.Start(); err != nil {
		return nil, &SpawnError{Tool: tool, Err: err}
	}

	go func() {
		h.waitErr = h.cmd.Wait()
		close(h.done)
	}()

	DefaultRegistry.add(h)
	return h, nil
}

// Stop terminates the child: SIGTERM, a bounded grace wait, then SIGKILL.
// It removes registered transient artifacts and deregisters the handle.
// Stop is idempotent; a second call is a no-op.
func (h *Handle) Stop() error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return nil
	}
	h.stopped = true
	h.mu.Unlock()

	defer DefaultRegistry.remove(h)
	defer h.removeArtifacts()

	select {
	case <-h.done:
		return nil // already exited on its own
	default:
	}

	if err := h.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Process may have exited between the check and the signal.
		select {
		case <-h.done:
			return nil
		default:
			return fmt.Errorf("proc: signal %s: %w", h.name, err)
		}
	}

	select {
	case <-h.done:
		return nil
	case <-time.After(stopGrace):
	}

	_ = h.cmd.Process.Kill()
	<-h.done
	return nil
}

// Alive reports whether the child is still running.
func (h *Handle) Alive() bool {
	select {
	case <-h.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the child exits and returns its wait error. It does
// not stop the process.
func (h *Handle) Wait() error {
	<-h.done
	return h.waitErr
}

// Name returns the tool name this handle supervises.
func (h *Handle) Name() string { return h.name }

func (h *Handle) removeArtifacts() {
	for _, p := range h.artifacts {
		_ = os.Remove(p)
	}
}
