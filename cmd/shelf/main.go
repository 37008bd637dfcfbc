// Package main provides the shelf CLI: initialization and inspection of a
// shelf database file.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// configDirFlag is set by the --config-dir flag.
var configDirFlag string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "Shelf is an object persistence engine over embedded SQLite",
	Long: `Shelf maps registered model types onto tables of an embedded SQLite
database, reconciling schema drift and persisting ownership trees. The CLI
initializes a store and inspects the physical schema behind it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDirFlag, "config-dir", "",
		"configuration directory (default: platform config dir)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newTablesCmd())
	rootCmd.AddCommand(newColumnsCmd())
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("shelf v0.1.0")
	},
}
