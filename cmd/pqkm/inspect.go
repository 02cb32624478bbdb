package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiblancher/pq-keymgmt/internal/keymgmt"
	"github.com/remiblancher/pq-keymgmt/internal/store"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Inspect a keyfile",
	Long:  `Print the algorithm, sizes, and fingerprint of a CBOR keyfile.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := store.Load(args[0])
		if err != nil {
			return err
		}
		defer key.Release()

		d := key.Descriptor()
		fmt.Printf("Algorithm:      %s\n", d.Name)
		fmt.Printf("Family:         %s\n", d.Family)
		fmt.Printf("Hybrid mode:    %s\n", d.Hybrid)
		if d.IsHybrid() {
			fmt.Printf("Classical:      %s (%d/%d bytes)\n", d.Curve, d.ClassicalPub, d.ClassicalPriv)
			fmt.Printf("Post-quantum:   %s (%d/%d bytes)\n", d.BackendName, d.PQPub, d.PQPriv)
		}
		fmt.Printf("Security bits:  %d\n", key.ParamBits())
		fmt.Printf("Max op size:    %d\n", key.MaxSize())
		fmt.Printf("Has public:     %v\n", key.Has(keymgmt.SelectPublic))
		fmt.Printf("Has private:    %v\n", key.Has(keymgmt.SelectPrivate))
		if q := key.PropertyQuery(); q != "" {
			fmt.Printf("Properties:     %s\n", q)
		}
		if fp := store.Fingerprint(key); fp != "" {
			fmt.Printf("Fingerprint:    %s\n", fp)
		}
		return nil
	},
}
