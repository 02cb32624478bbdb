// Command pqkm manages post-quantum and hybrid key objects: generation,
// inspection, and a small HTTP service exposing the same operations.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables (injected by GoReleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pqkm",
	Short: "Post-quantum key management toolkit",
	Long: `pqkm generates, inspects, and serves post-quantum and hybrid key
objects. Every KEM algorithm is available in three structural forms: pure,
NIST-curve hybrid (p256-/p384-/p521- prefix), and X-curve hybrid
(x25519-/x448- prefix). Hybrid key material is the classical component
immediately followed by the post-quantum component.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("pqkm %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(algorithmsCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveCmd)
}
