package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
)

func newLogsCmd() *cobra.Command {
	var backlog bool
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Stream the server's log lines",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !backlog {
				err := apiClient.Logs.Tail(ctx, func(line string) error {
					fmt.Println(line)
					return nil
				})
				if err != nil {
					fatal("logs", err)
				}
				return
			}

			lines, err := apiClient.Logs.List(ctx)
			if err != nil {
				fatal("logs", err)
			}
			if flagFmt == "json" {
				formatJSON(lines)
				return
			}
			if flagFmt == "quiet" {
				fmt.Println(strconv.Itoa(len(lines)))
				return
			}
			for _, l := range lines {
				fmt.Println(l)
			}
		},
	}
	cmd.Flags().BoolVar(&backlog, "backlog", false, "Print the buffered lines and exit instead of streaming")
	return cmd
}
