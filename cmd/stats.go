package cmd

import (
	"fmt"
	"sort"

	"github.com/rlejr135/band-archive/client"
	"github.com/rlejr135/band-archive/config"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics from a running archive service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		c := client.New(cfg.ArchiveURL)

		stats, err := c.DashboardStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch dashboard stats: %w", err)
		}

		fmt.Printf("Songs:         %d\n", stats.TotalSongs)
		fmt.Printf("Practice logs: %d\n", stats.TotalPracticeLogs)

		statuses := make([]string, 0, len(stats.StatusCounts))
		for status := range stats.StatusCounts {
			statuses = append(statuses, status)
		}
		sort.Strings(statuses)
		for _, status := range statuses {
			fmt.Printf("  %-10s %d\n", status, stats.StatusCounts[status])
		}

		if len(stats.RecentPracticeLogs) > 0 {
			fmt.Println("Recent practice:")
			for _, log := range stats.RecentPracticeLogs {
				fmt.Printf("  %s song=%d %s\n", log.Date.Format("2006-01-02"), log.SongID, log.Content)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
