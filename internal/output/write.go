package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"psanalyze/internal/config"
)

// Write renders rep in the configured encoding and delivers it to the
// configured destination. With an output file the full serialized report goes
// to the file (UTF-8) and only a one-line summary is printed to stdout; with
// no output file the report body goes to stdout, followed by the CI
// annotation side channel when it is active.
func Write(rep Report, cfg *config.Config, stdout io.Writer) error {
	render, err := rendererFor(cfg.Output.Format)
	if err != nil {
		return err
	}

	// Machine encodings have no place for parse warnings in the body, so
	// those surface on stderr instead of being dropped.
	if cfg.Output.Format != "text" {
		for _, warn := range rep.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
		}
	}

	if cfg.Output.File != "" {
		if err := writeFile(cfg.Output.File, rep, render); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s; report written to %s\n", summary(rep), cfg.Output.File)
		return nil
	}

	if err := render(stdout, rep); err != nil {
		return err
	}
	if !rep.FormatMode && AnnotationsEnabled() {
		return Annotations(stdout, rep.Diagnostics)
	}
	return nil
}

func rendererFor(format string) (func(io.Writer, Report) error, error) {
	switch format {
	case "text":
		return Text, nil
	case "json":
		return JSON, nil
	case "sarif":
		return Sarif, nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}

func writeFile(path string, rep Report, render func(io.Writer, Report) error) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := render(f, rep); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func summary(rep Report) string {
	if rep.FormatMode {
		var changed, failed int
		for _, f := range rep.Formats {
			if f.Failed() {
				failed++
			} else if f.Changed {
				changed++
			}
		}
		if failed > 0 {
			return fmt.Sprintf("%d file(s) reformatted, %d failed", changed, failed)
		}
		return fmt.Sprintf("%d file(s) reformatted", changed)
	}
	return fmt.Sprintf("Found %d issue(s)", len(rep.Diagnostics))
}
