package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/remiblancher/pq-keymgmt/internal/api"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the key-management HTTP API",
	Long: `Start an HTTP server exposing algorithm enumeration, key
generation, and key inspection. Keys are held in memory; private material
never leaves the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := &http.Server{
			Addr:              serveAddr,
			Handler:           api.NewServer().Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		fmt.Printf("Listening on %s\n", serveAddr)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8470", "listen address")
}
