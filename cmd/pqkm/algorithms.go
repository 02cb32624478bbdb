package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiblancher/pq-keymgmt/internal/registry"
)

var algorithmsCmd = &cobra.Command{
	Use:   "algorithms",
	Short: "List supported algorithms",
	Long: `List every algorithm in the registry with its family, hybrid
mode, key sizes, and claimed security strength.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("%-24s %-10s %-11s %8s %8s %6s\n",
			"NAME", "FAMILY", "HYBRID", "PUB", "PRIV", "BITS")
		for _, name := range registry.Algorithms() {
			d, err := registry.Describe(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-24s %-10s %-11s %8d %8d %6d\n",
				d.Name, d.Family, d.Hybrid,
				d.PublicKeySize(), d.PrivateKeySize(), d.SecurityBits)
		}
		return nil
	},
}
