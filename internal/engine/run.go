package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phuslu/log"

	"psanalyze/internal/config"
	"psanalyze/internal/filter"
	"psanalyze/internal/output"
	"psanalyze/internal/parse"
	"psanalyze/internal/script"
)

// Engine sequences one invocation: build payload, invoke the external
// engine, parse, filter, render, and compute the process exit status. Each
// run is an independent, stateless pipeline; nothing is shared between runs
// beyond the resolved engine and the configuration.
type Engine struct {
	engine DiagnosticEngine
	logger *log.Logger

	// stdout/stderr are test seams; they default to the process streams.
	stdout io.Writer
	stderr io.Writer
}

func New(d DiagnosticEngine, logger *log.Logger) *Engine {
	return &Engine{
		engine: d,
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Run executes the full pipeline and returns the process exit code:
// 0 clean, 1 diagnostics found or files reformatted or formatting failed,
// 2 invalid request or engine failure.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	code, err := e.run(ctx, cfg)
	if err != nil {
		fmt.Fprintln(e.stderr, "Error:", err)
		return 2
	}
	return code
}

func (e *Engine) run(ctx context.Context, cfg *config.Config) (int, error) {
	files := cfg.Inputs.Files

	var payload string
	var err error
	if cfg.Inputs.Format {
		payload, err = script.Format(files)
	} else {
		payload, err = script.Analysis(files)
	}
	if err != nil {
		if errors.Is(err, script.ErrNoFiles) {
			return 0, newError(KindInvalidRequest, "no PowerShell files to process")
		}
		return 0, wrapError(KindInvalidRequest, err)
	}

	raw, err := e.engine.Invoke(ctx, payload)
	if err != nil {
		return 0, err
	}

	// A run with no stdout but complaints on stderr is a process-level crash,
	// not a diagnostic result.
	if strings.TrimSpace(raw.Stdout) == "" && strings.TrimSpace(raw.Stderr) != "" {
		return 0, newError(KindEngineFailure, "engine produced no output: %s", firstLine(raw.Stderr))
	}

	rep := output.Report{
		TargetFiles: files,
		FormatMode:  cfg.Inputs.Format,
	}

	if cfg.Inputs.Format {
		rep.Formats = parse.FormatResults(raw.Stdout)
	} else {
		// A stream that is not JSON at all is an engine-level failure; a bad
		// record inside an otherwise valid stream degrades to a warning.
		diags, warnings, perr := parse.Diagnostics(raw.Stdout)
		if perr != nil {
			return 0, wrapError(KindEngineFailure, perr)
		}
		rep.Diagnostics = filter.Apply(diags, filter.FromConfig(cfg))
		rep.Warnings = warnings
		if e.logger != nil {
			for _, w := range warnings {
				e.logger.Warn().Str("kind", string(KindParseError)).Msg(w)
			}
		}
	}

	if e.logger != nil {
		e.logger.Debug().
			Int("diagnostics", len(rep.Diagnostics)).
			Int("format_results", len(rep.Formats)).
			Int("warnings", len(rep.Warnings)).
			Msg("pipeline finished")
	}

	if err := output.Write(rep, cfg, e.stdout); err != nil {
		return 0, err
	}
	return rep.ExitCode(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
