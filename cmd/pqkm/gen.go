package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiblancher/pq-keymgmt/internal/keymgmt"
	"github.com/remiblancher/pq-keymgmt/internal/params"
	"github.com/remiblancher/pq-keymgmt/internal/store"
)

var (
	genAlgorithm  string
	genOut        string
	genProperties string
	genPublicOnly bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a key pair",
	Long: `Generate a new key pair and save it as a CBOR keyfile.

Examples:
  # Pure post-quantum KEM key
  pqkm gen --algorithm ml-kem-768 --out kem.key

  # Hybrid KEM key (P-384 + ML-KEM-768)
  pqkm gen --algorithm p384-ml-kem-768 --out hybrid.key

  # Signature key, public half only
  pqkm gen --algorithm ml-dsa-65 --out sig.pub --public-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := keymgmt.NewGenContext(genAlgorithm, keymgmt.SelectKeypair)
		if err != nil {
			return err
		}
		defer ctx.Close()

		if genProperties != "" {
			if err := ctx.Set(params.FieldProperties, genProperties); err != nil {
				return err
			}
		}

		key, err := ctx.Generate()
		if err != nil {
			return err
		}
		defer key.Release()

		sel := keymgmt.SelectKeypair
		if genPublicOnly {
			sel = keymgmt.SelectPublic
		}
		if err := store.Save(genOut, key, sel); err != nil {
			return err
		}

		fmt.Printf("Generated %s key: %s\n", key.Algorithm(), genOut)
		fmt.Printf("Fingerprint: %s\n", store.Fingerprint(key))
		return nil
	},
}

func init() {
	genCmd.Flags().StringVar(&genAlgorithm, "algorithm", "", "algorithm name (see 'pqkm algorithms')")
	genCmd.Flags().StringVar(&genOut, "out", "", "output keyfile path")
	genCmd.Flags().StringVar(&genProperties, "properties", "", "backend-selection property query")
	genCmd.Flags().BoolVar(&genPublicOnly, "public-only", false, "save only the public component")
	_ = genCmd.MarkFlagRequired("algorithm")
	_ = genCmd.MarkFlagRequired("out")
}
