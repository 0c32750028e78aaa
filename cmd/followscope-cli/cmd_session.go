package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var errNoSession = errors.New("no session: pass --session or set FOLLOWSCOPE_SESSION")

// sessionArg picks the positional session id when given, else --session.
func sessionArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if flagSession == "" {
		fatal("session", errNoSession)
	}
	return flagSession
}

func newViewCmd() *cobra.Command {
	var cutoff int64
	cmd := &cobra.Command{
		Use:   "view [session]",
		Short: "Show the session's graph as it stood at a cutoff",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var at *int64
			if cmd.Flags().Changed("cutoff") {
				at = &cutoff
			}
			view, err := apiClient.Sessions.View(context.Background(), sessionArg(args), at)
			if err != nil {
				fatal("view", err)
			}
			if flagFmt == "table" {
				fmt.Fprintf(os.Stderr, "cutoff %s: %d nodes, %d links\n",
					view.CutoffLabel, len(view.Nodes), len(view.Links))
			}
			output(view, strconv.FormatInt(view.Cutoff, 10), func() ([]string, [][]string) {
				labels := make(map[string]string, len(view.Nodes))
				for _, n := range view.Nodes {
					labels[n.ID] = n.Label
				}
				return metricsTable(view.Metrics, labels)
			})
		},
	}
	cmd.Flags().Int64Var(&cutoff, "cutoff", 0, "Unix seconds; snaps to the nearest step (default: latest)")
	return cmd
}

func newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <node-id> <x> <y>",
		Short: "Fix a node's position in the viewer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}
			if err := apiClient.Sessions.Pin(context.Background(), sessionArg(nil), args[0], x, y); err != nil {
				fatal("pin", err)
			}
			return nil
		},
	}
}

func newUnpinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unpin <node-id>",
		Short: "Release a pinned node",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Sessions.Unpin(context.Background(), sessionArg(nil), args[0]); err != nil {
				fatal("unpin", err)
			}
		},
	}
}
