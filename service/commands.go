package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bloglist/app/repositories"
	"bloglist/app/services"

	"github.com/spf13/cobra"
)

func newInitCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := os.Stat(c.cfg.DBPath); err == nil {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}

			if err := os.MkdirAll(c.cfg.DBPath, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err := openDB(c.cfg.DBPath, c.logger)
			if err != nil {
				return err
			}
			if err := db.Close(); err != nil {
				return fmt.Errorf("failed to close database: %w", err)
			}

			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCommand(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := os.Stat(c.cfg.DBPath); os.IsNotExist(err) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.", yes) {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if err := os.RemoveAll(c.cfg.DBPath); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newBackupCommand(c *cli) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := os.Stat(c.cfg.DBPath); os.IsNotExist(err) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			db, err := openDB(c.cfg.DBPath, c.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if _, err := db.Backup(f, 0); err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}

			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "output", "o", "data/backups", "directory to write the backup into")
	return cmd
}

func newRestoreCommand(c *cli) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			backupFile := args[0]

			fi, err := os.Stat(backupFile)
			if os.IsNotExist(err) {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if err != nil {
				return fmt.Errorf("failed to stat backup file: %w", err)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if _, err := os.Stat(c.cfg.DBPath); err == nil {
				if !confirm(cmd, "Existing database found. Do you want to replace it?", yes) {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(c.cfg.DBPath); err != nil {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}

			if err := os.MkdirAll(c.cfg.DBPath, 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err := openDB(c.cfg.DBPath, c.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			f, err := os.Open(backupFile)
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			// Load panics on some malformed input
			err = func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						err = fmt.Errorf("panic occurred during restore: %v", r)
					}
				}()
				return db.Load(f, 4)
			}()
			if err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}

			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}

func newCheckCommand(c *cli) *cobra.Command {
	var repair bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every user's blog list against post ownership",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if _, err := os.Stat(c.cfg.DBPath); os.IsNotExist(err) {
				return errors.New("no database exists to check")
			}

			db, err := openDB(c.cfg.DBPath, c.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			users := services.NewUserService(
				repositories.NewBadgerUserRepository(db),
				repositories.NewBadgerPostRepository(db),
				c.cfg.BcryptCost)
			mismatches, err := users.CheckOwnership(repair)
			if err != nil {
				return err
			}

			if len(mismatches) == 0 {
				fmt.Fprintln(out, "Ownership is consistent")
				return nil
			}
			for _, m := range mismatches {
				fmt.Fprintf(out, "user %s (%s): missing [%s] stale [%s]\n",
					m.Username, m.UserID, strings.Join(m.Missing, ", "), strings.Join(m.Stale, ", "))
			}
			if repair {
				fmt.Fprintf(out, "Repaired %d user(s)\n", len(mismatches))
				return nil
			}
			return fmt.Errorf("%d user(s) have inconsistent blog lists; rerun with --repair", len(mismatches))
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "rewrite drifted blog lists from post ownership")
	return cmd
}

func newStatsCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print like and author statistics for the stored posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(c.cfg.DBPath); os.IsNotExist(err) {
				return errors.New("no database exists to summarize")
			}

			db, err := openDB(c.cfg.DBPath, c.logger)
			if err != nil {
				return err
			}
			defer db.Close()

			posts := services.NewPostService(
				repositories.NewBadgerPostRepository(db),
				repositories.NewBadgerUserRepository(db))
			summary, err := posts.Stats()
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
}
