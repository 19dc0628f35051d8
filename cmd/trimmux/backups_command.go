package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"trimmux/internal/config"
	"trimmux/internal/workspace"
)

func newBackupsCommand(ctx *commandContext) *cobra.Command {
	backupsCmd := &cobra.Command{
		Use:   "backups",
		Short: "Manage the .bakN files left behind by in-place runs",
	}

	backupsCmd.AddCommand(newBackupsListCommand())
	backupsCmd.AddCommand(newBackupsRestoreCommand())
	backupsCmd.AddCommand(newBackupsPruneCommand())

	return backupsCmd
}

func newBackupsListCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:         "list [dir]",
		Short:       "List backup files under a directory",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := backupsDir(args)
			if err != nil {
				return err
			}

			backups, err := workspace.List(dir, recursive)
			if err != nil {
				return err
			}
			if len(backups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No backups found")
				return nil
			}

			rows := make([][]string, 0, len(backups))
			for _, b := range backups {
				rows = append(rows, []string{
					b.Path,
					formatSize(b.Size),
					formatSize(b.OriginalSize),
					b.ModTime.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Backup", "Size", "Current", "Modified"},
				rows,
				1, 2,
			))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}

func newBackupsRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "restore <backup>",
		Short:       "Put a backup back in place of its original",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			backup, err := workspace.Find(path)
			if err != nil {
				return err
			}
			if err := workspace.Restore(backup); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", backup.Original)
			return nil
		},
	}
}

func newBackupsPruneCommand() *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:         "prune [dir]",
		Short:       "Delete backup files under a directory",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		Args:        cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := backupsDir(args)
			if err != nil {
				return err
			}

			backups, err := workspace.List(dir, recursive)
			if err != nil {
				return err
			}
			removed := 0
			var freed int64
			for _, b := range backups {
				if err := workspace.Remove(b); err != nil {
					return err
				}
				removed++
				freed += b.Size
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d backup(s), freed %s\n", removed, formatSize(freed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}

func backupsDir(args []string) (string, error) {
	if len(args) > 0 {
		return config.ExpandPath(args[0])
	}
	return os.Getwd()
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return strconv.FormatInt(size, 10) + " B"
	}
	value := float64(size)
	suffixes := []string{"KiB", "MiB", "GiB", "TiB"}
	for _, suffix := range suffixes {
		value /= unit
		if value < unit || suffix == suffixes[len(suffixes)-1] {
			return fmt.Sprintf("%.1f %s", value, suffix)
		}
	}
	return strconv.FormatInt(size, 10) + " B"
}
