package cmd

import (
	"github.com/aqlanhadi/pbsm/api"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	servePort     string
	serveTextOnly bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long:  `Starts the HTTP API server that accepts PDF files and returns extracted data as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := api.DefaultConfig()
		cfg.Extraction = *loadConfig()
		cfg.DefaultTextOnly = serveTextOnly
		if servePort != "" {
			cfg.Port = ":" + servePort
		}

		server := api.New(cfg)
		if err := server.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&servePort, "port", "p", "8080", "Port to run the API server on")
	serveCmd.Flags().BoolVar(&serveTextOnly, "text-only", false, "Return page text unless a request sets text_only=false")
}
