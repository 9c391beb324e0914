package engine

import (
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/phuslu/log"
)

const (
	moduleName         = "PSScriptAnalyzer"
	moduleCheckTimeout = 30 * time.Second
	installTimeout     = 120 * time.Second
)

// ModuleInstalled reports whether the PSScriptAnalyzer module is available to
// the given PowerShell executable.
func ModuleInstalled(ctx context.Context, psPath string) bool {
	ctx, cancel := context.WithTimeout(ctx, moduleCheckTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, psPath, "-NoProfile", "-Command", "Get-Module -ListAvailable -Name "+moduleName)
	out, err := cmd.Output()
	return err == nil && strings.Contains(string(out), moduleName)
}

// EnsureModule makes sure PSScriptAnalyzer is installed, installing it to the
// current user scope when missing.
func EnsureModule(ctx context.Context, psPath string, logger *log.Logger) error {
	if ModuleInstalled(ctx, psPath) {
		return nil
	}

	if logger != nil {
		logger.Info().Str("module", moduleName).Msg("module not found, installing")
	}

	installCtx, cancel := context.WithTimeout(ctx, installTimeout)
	defer cancel()

	cmd := exec.CommandContext(installCtx, psPath, "-NoProfile", "-Command",
		"Install-Module -Name "+moduleName+" -Force -Scope CurrentUser")
	if err := cmd.Run(); err != nil {
		if installCtx.Err() == context.DeadlineExceeded {
			return newError(KindEngineUnavailable, "timed out installing %s after %s", moduleName, installTimeout)
		}
		return newError(KindEngineUnavailable, "failed to install %s: %v", moduleName, err)
	}
	return nil
}
