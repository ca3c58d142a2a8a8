// Package pipeline runs one filtering pass: games stream from a source
// file through the filter into a temporary sibling of the destination,
// which is atomically renamed into place on success and removed on
// every other exit path. The destination is never partially written.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ianrastall/pgnfilter/internal/errors"
	"github.com/ianrastall/pgnfilter/internal/filter"
	"github.com/ianrastall/pgnfilter/internal/pgn"
)

// Config describes one pipeline invocation. A Config is not shared
// between invocations; Options may be, since it is immutable.
type Config struct {
	SourcePath string
	DestPath   string
	Options    filter.Options

	// Log receives malformed-input warnings. Nil discards them.
	Log io.Writer

	// Observer receives throttled progress reports. Nil disables them.
	Observer Observer
	Throttle Throttle

	// RosterOnly restricts output tags to the Seven Tag Roster.
	RosterOnly bool
}

// Validate checks the config without touching the destination. It runs
// before any file is created, so an invalid config can never leave a
// temp file behind.
func (c Config) Validate() error {
	if err := c.Options.Validate(); err != nil {
		return err
	}
	if c.SourcePath == "" {
		return fmt.Errorf("no source path: %w", errors.ErrInvalidConfig)
	}
	if c.DestPath == "" {
		return fmt.Errorf("no destination path: %w", errors.ErrInvalidConfig)
	}
	if samePath(c.SourcePath, c.DestPath) {
		return errors.Wrapf(errors.ErrSameFile, "%s", c.SourcePath)
	}
	info, err := os.Stat(c.SourcePath)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("source %s is a directory: %w", c.SourcePath, errors.ErrInvalidConfig)
	}
	return nil
}

// samePath reports whether two paths name the same file. Paths that
// cannot be resolved are compared cleaned, so the check still catches
// a destination spelled exactly like the source.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}

// Outcome is the per-run summary.
type Outcome struct {
	// Processed counts games pulled from the source, Kept those that
	// passed the filter, Modified the kept games whose move text the
	// stripper changed.
	Processed int64
	Kept      int64
	Modified  int64
}

// Run executes one filtering pass. On success the destination holds
// the complete result; on any error, including cancellation, the
// destination is untouched and the temp file is gone. An empty source
// is a no-op returning a zero outcome.
func Run(ctx context.Context, cfg Config) (Outcome, error) {
	var out Outcome

	if err := cfg.Validate(); err != nil {
		return out, err
	}

	src, err := pgn.OpenSource(cfg.SourcePath)
	if err != nil {
		return out, err
	}
	defer src.Close()

	tmpPath := cfg.DestPath + ".tmp"
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return out, err
	}
	discard := func() {
		tmp.Close()
		os.Remove(tmpPath)
	}

	var wopts []pgn.WriterOption
	if cfg.RosterOnly {
		wopts = append(wopts, pgn.WithRosterOnly())
	}
	w := pgn.NewWriter(tmp, wopts...)
	reader := pgn.NewReader(src)
	ev := filter.NewEvaluator(cfg.Options, cfg.Log)
	g := newGate(cfg.Throttle)

	for {
		if err := ctx.Err(); err != nil {
			discard()
			return out, err
		}

		rec, err := reader.Next()
		if err != nil {
			discard()
			return out, err
		}
		if rec == nil {
			break
		}
		out.Processed++

		v := ev.Evaluate(rec)
		if v.Keep {
			if out.Kept > 0 {
				if err := w.WriteSeparator(); err != nil {
					discard()
					return out, err
				}
			}
			if err := w.WriteRecord(v.Record); err != nil {
				discard()
				return out, err
			}
			out.Kept++
			if v.Modified {
				out.Modified++
			}
		}

		if cfg.Observer != nil && g.ready(out.Processed) {
			cfg.Observer(Progress{
				Games:     out.Processed,
				BytesRead: src.BytesRead(),
				Total:     src.Size(),
			})
		}
	}

	if out.Processed == 0 {
		discard()
		return out, nil
	}

	if err := w.Flush(); err != nil {
		discard()
		return out, err
	}
	if err := tmp.Sync(); err != nil {
		discard()
		return out, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return out, err
	}
	if err := os.Rename(tmpPath, cfg.DestPath); err != nil {
		os.Remove(tmpPath)
		return out, err
	}

	if cfg.Observer != nil {
		cfg.Observer(Progress{
			Games:     out.Processed,
			BytesRead: src.Size(),
			Total:     src.Size(),
		})
	}
	return out, nil
}
