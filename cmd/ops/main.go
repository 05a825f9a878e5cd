// levelup-ops is the offline maintenance CLI: backups, restore drills, and
// state export/import without a running server.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"levelup/internal/ops"
	"levelup/internal/state"
	"levelup/internal/telemetry"
)

func main() {
	root := &cobra.Command{
		Use:           "levelup-ops",
		Short:         "Offline maintenance for the levelup data directory",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newBackupCmd(),
		newRestoreCmd(),
		newDrillCmd(),
		newExportCmd(),
		newImportCmd(),
		newStatsCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newBackupCmd() *cobra.Command {
	var dataDir, out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the data directory to a tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = filepath.Join("backups", ops.DefaultArchiveName(time.Now().UTC()))
			}
			if err := ops.BackupDataDir(dataDir, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&out, "out", "", "output archive path (.tar.gz)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var archive, target string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Unpack a backup archive into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive == "" {
				return fmt.Errorf("--archive is required")
			}
			return ops.RestoreDataDir(archive, target)
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "input backup archive (.tar.gz)")
	cmd.Flags().StringVar(&target, "target-dir", "data-restored", "restore target directory")
	return cmd
}

// drill runs a backup and an immediate restore, then compares digests, so a
// broken backup is caught before it's needed.
func newDrillCmd() *cobra.Command {
	var dataDir, workDir string
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Backup, restore to a scratch dir, and verify digests match",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(workDir, 0o755); err != nil {
				return err
			}
			ts := time.Now().UTC().Format("20060102T150405Z")
			archive := filepath.Join(workDir, "levelup-drill-"+ts+".tar.gz")
			restoreDir := filepath.Join(workDir, "levelup-drill-restore-"+ts)

			if err := ops.BackupDataDir(dataDir, archive); err != nil {
				return err
			}
			if err := ops.RestoreDataDir(archive, restoreDir); err != nil {
				return err
			}

			srcDigest, err := dirDigest(dataDir)
			if err != nil {
				return err
			}
			restoreDigest, err := dirDigest(restoreDir)
			if err != nil {
				return err
			}
			if srcDigest != restoreDigest {
				return fmt.Errorf("digest mismatch after restore: src=%s restored=%s", srcDigest, restoreDigest)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "backup:", archive)
			fmt.Fprintln(cmd.OutOrStdout(), "restored:", restoreDir)
			fmt.Fprintln(cmd.OutOrStdout(), "digest:", srcDigest)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&workDir, "work-dir", os.TempDir(), "scratch directory for drill artifacts")
	return cmd
}

func newExportCmd() *cobra.Command {
	var dataDir, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the state document as a portable export envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			repo, err := state.NewFileRepo(dataDir, now)
			if err != nil {
				return err
			}
			b, err := state.ExportJSON(repo.Get(), now)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return os.WriteFile(out, b, 0o644)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&out, "out", "", "output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var dataDir, in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the state document with a previously exported one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in == "" {
				return fmt.Errorf("--in is required")
			}
			b, err := os.ReadFile(in)
			if err != nil {
				return err
			}
			now := time.Now()
			s, err := state.Import(b, now)
			if err != nil {
				return err
			}
			repo, err := state.NewFileRepo(dataDir, now)
			if err != nil {
				return err
			}
			if err := repo.Put(s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "imported", in)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().StringVar(&in, "in", "", "export file to import")
	return cmd
}

func newStatsCmd() *cobra.Command {
	var dataDir string
	var days int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate telemetry into balance stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			audit, err := telemetry.OpenSQLite(filepath.Join(dataDir, "telemetry.db"))
			if err != nil {
				return err
			}
			defer audit.Close()

			since := time.Now().AddDate(0, 0, -days)
			events, err := audit.GetEvents(since, nil)
			if err != nil {
				return err
			}
			stats, err := telemetry.CalculateStats(events, since)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "path to data directory")
	cmd.Flags().IntVar(&days, "days", 30, "lookback window in days")
	return cmd
}

func dirDigest(root string) (string, error) {
	root = filepath.Clean(root)
	entries := []string{}
	if err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entries = append(entries, filepath.ToSlash(rel))
		return nil
	}); err != nil {
		return "", err
	}
	sort.Strings(entries)

	h := sha256.New()
	for _, rel := range entries {
		_, _ = io.WriteString(h, rel)
		_, _ = io.WriteString(h, "\n")
		b, err := os.ReadFile(filepath.Join(root, rel))
		if err != nil {
			return "", err
		}
		if _, err := h.Write(b); err != nil {
			return "", err
		}
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
