package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			h, err := apiClient.Health(context.Background())
			if err != nil {
				fatal("health", err)
			}
			output(h, h.Status, func() ([]string, [][]string) {
				return []string{"STATUS", "VERSION", "SESSIONS", "LOG VIEWERS", "UPTIME"}, [][]string{{
					h.Status, h.Version, strconv.Itoa(h.Sessions), strconv.Itoa(h.LogViewers),
					fmt.Sprintf("%.0fs", h.UptimeSeconds),
				}}
			})
		},
	}
}
