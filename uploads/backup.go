package uploads

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Backup copies the uploads folder into timestamped snapshots once a day and
// prunes snapshots older than Retention.
type Backup struct {
	Src       string
	Dest      string
	Retention time.Duration
	Hour, Min int
	Log       zerolog.Logger
}

// nextRun is the first hour:min strictly after now.
func nextRun(now time.Time, hour, min int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run blocks until ctx is done.
func (b Backup) Run(ctx context.Context) {
	for {
		next := nextRun(time.Now(), b.Hour, b.Min)
		b.Log.Info().Time("next_run", next).Msg("next uploads backup scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if dest, err := b.Snapshot(time.Now()); err != nil {
			b.Log.Error().Err(err).Msg("uploads backup failed")
		} else {
			b.Log.Info().Str("dest", dest).Msg("uploads backed up")
		}
		b.Prune(time.Now())
	}
}

// Snapshot copies Src into Dest/<timestamp> and returns that folder.
func (b Backup) Snapshot(at time.Time) (string, error) {
	dest := filepath.Join(b.Dest, at.Format("2006-01-02_15-04-05"))
	return dest, copyDir(b.Src, dest)
}

// Prune removes snapshot folders last modified before now-Retention.
func (b Backup) Prune(now time.Time) {
	entries, err := os.ReadDir(b.Dest)
	if err != nil {
		b.Log.Error().Err(err).Msg("failed to read backup directory")
		return
	}

	cutoff := now.Add(-b.Retention)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		folder := filepath.Join(b.Dest, entry.Name())
		info, err := os.Stat(folder)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.RemoveAll(folder); err != nil {
				b.Log.Error().Err(err).Str("folder", folder).Msg("failed to remove old backup")
			} else {
				b.Log.Info().Str("folder", folder).Msg("removed old backup")
			}
		}
	}
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())

		if entry.IsDir() {
			err = copyDir(srcPath, destPath)
		} else {
			err = copyFile(srcPath, destPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
