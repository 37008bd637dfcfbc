// Init and schema inspection commands for the shelf CLI.
package main

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/dukaforge/shelf/internal/paths"
)

func newInitCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf configuration and database file",
		Long: `Create the configuration directory with a default config.yaml (stamped
with a fresh store ID) and the SQLite database file. Model tables are
created lazily, on first save.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(configDirFlag)
			if err != nil {
				return fmt.Errorf("resolving config directory: %w", err)
			}
			configPath, err := writeConfigIfMissing(configDir, dbPath)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := sql.Open("sqlite", cfg.Path)
			if err != nil {
				return fmt.Errorf("opening database %s: %w", cfg.Path, err)
			}
			defer db.Close()
			if err := db.Ping(); err != nil {
				return fmt.Errorf("initializing database %s: %w", cfg.Path, err)
			}

			fmt.Printf("Initialized shelf store at %s (config: %s)\n", cfg.Path, configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", defaultDBPath, "database file path")
	return cmd
}

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the model tables in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := sql.Open("sqlite", cfg.Path)
			if err != nil {
				return fmt.Errorf("opening database %s: %w", cfg.Path, err)
			}
			defer db.Close()

			rows, err := db.Query(
				"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
			if err != nil {
				return fmt.Errorf("listing tables: %w", err)
			}
			defer rows.Close()

			for rows.Next() {
				var name string
				if err := rows.Scan(&name); err != nil {
					return fmt.Errorf("scanning table name: %w", err)
				}
				fmt.Println(name)
			}
			return rows.Err()
		},
	}
}

func newColumnsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "columns <table>",
		Short: "List the columns of a model table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := sql.Open("sqlite", cfg.Path)
			if err != nil {
				return fmt.Errorf("opening database %s: %w", cfg.Path, err)
			}
			defer db.Close()

			rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", args[0]))
			if err != nil {
				return fmt.Errorf("inspecting table %s: %w", args[0], err)
			}
			defer rows.Close()

			found := false
			for rows.Next() {
				var (
					cid     int
					name    string
					ctype   string
					notnull int
					dflt    sql.NullString
					pk      int
				)
				if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
					return fmt.Errorf("scanning column info: %w", err)
				}
				found = true
				if pk != 0 {
					fmt.Printf("%s\t%s\tPRIMARY KEY\n", name, ctype)
				} else {
					fmt.Printf("%s\t%s\n", name, ctype)
				}
			}
			if err := rows.Err(); err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no such table: %s", args[0])
			}
			return nil
		},
	}
}
