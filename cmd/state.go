package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"botpanel/internal/bot"
	"botpanel/internal/rest"

	"github.com/spf13/cobra"
)

type stateOp func(c *rest.Client, ctx context.Context) (bot.State, error)

func newStateCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Read or change the bot state over the REST API",
		Long: `Reads or changes the bot state with one HTTP request per call, without
opening a real-time session. Reads are retried with the configured backoff,
changes are sent exactly once.`,
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print the state as JSON")

	add := func(use, short string, op stateOp) {
		cmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runState(cmd, op, asJSON)
			},
		})
	}
	add("get", "Print the current bot state", (*rest.Client).State)
	add("enable", "Enable the bot", (*rest.Client).Enable)
	add("disable", "Disable the bot", (*rest.Client).Disable)
	add("toggle", "Flip the enabled flag", (*rest.Client).Toggle)

	return cmd
}

func runState(cmd *cobra.Command, op stateOp, asJSON bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := rest.NewClient(cfg.Endpoint.BaseURL, rest.ClientOptions{Retry: cfg.Policy()})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := op(client, ctx)
	if err != nil {
		return fmt.Errorf("state request to %s failed: %w", cfg.Endpoint.BaseURL, err)
	}
	return printState(cmd.OutOrStdout(), st, asJSON)
}

func printState(w io.Writer, st bot.State, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	_, err := fmt.Fprintf(w, "Bot Status: %s\nCurrent Mode: %s\n", st.StatusLabel(), st.Mode.Label())
	return err
}
