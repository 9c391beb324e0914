package engine

import (
	"context"
	"os/exec"
	"time"

	"github.com/phuslu/log"
	"golang.org/x/sync/errgroup"
)

// powershellCandidates are probed in preference order. pwsh (PowerShell Core)
// is preferred over Windows PowerShell for cross-platform parity.
var powershellCandidates = []string{"pwsh", "pwsh-lts", "powershell"}

const (
	probeTimeout = 10 * time.Second
	probeCommand = "$PSVersionTable.PSVersion"
)

// Discover locates a usable PowerShell executable. All candidates are probed
// concurrently to keep startup latency at one probe round-trip; the
// highest-preference candidate that responds wins regardless of which probe
// finished first.
func Discover(ctx context.Context, logger *log.Logger) (string, error) {
	usable := make([]bool, len(powershellCandidates))

	var g errgroup.Group
	for i, name := range powershellCandidates {
		i, name := i, name
		g.Go(func() error {
			usable[i] = probe(ctx, name)
			return nil
		})
	}
	_ = g.Wait()

	for i, name := range powershellCandidates {
		if usable[i] {
			if logger != nil {
				logger.Debug().Str("engine", name).Msg("resolved PowerShell executable")
			}
			return name, nil
		}
	}
	return "", newError(KindEngineUnavailable, "PowerShell not found; install PowerShell Core (pwsh) or Windows PowerShell")
}

// probe checks that a candidate executable exists and answers a trivial
// version query within the probe timeout.
func probe(ctx context.Context, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, "-NoProfile", "-Command", probeCommand)
	return cmd.Run() == nil
}
