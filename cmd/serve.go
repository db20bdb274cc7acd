package cmd

import (
	"github.com/rlejr135/band-archive/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the archive HTTP service",
	Long:  `Starts the REST service backing the band archive: song catalog, media uploads, practice logs, members and the suggestion board.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
