package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newMemoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Store and retrieve assistant memories",
		Long:  `Store values in the assistant's memory and retrieve them later by key.`,
	}

	cmd.AddCommand(a.newMemoryStoreCommand())
	cmd.AddCommand(a.newMemoryGetCommand())

	return cmd
}

func (a *App) newMemoryStoreCommand() *cobra.Command {
	var ttl int

	cmd := &cobra.Command{
		Use:   "store <key> <value>",
		Short: "Store a value under a key",
		Long: `Store a value in the assistant's memory.

The value is stored as a JSON value when it parses as one, otherwise as a
plain string.

Examples:
  infinity memory store favorite-editor vim
  infinity memory store settings '{"theme":"dark"}' --ttl 3600`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			key := args[0]
			value := parseValue(args[1])

			var ttlArg *int
			if cmd.Flags().Changed("ttl") {
				ttlArg = &ttl
			}

			resp, err := client.StoreMemory(cmd.Context(), key, value, ttlArg)
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(resp)
			}

			fmt.Fprintf(a.stdout, "Stored %q.\n", key)
			return nil
		},
	}

	cmd.Flags().IntVar(&ttl, "ttl", 0, "Expiry in seconds (omit for no expiry)")

	return cmd
}

func (a *App) newMemoryGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Retrieve a value by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.RetrieveMemory(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(resp)
			}

			if !resp.Found {
				fmt.Fprintf(a.stdout, "No memory stored for %q.\n", args[0])
				return nil
			}

			return a.outputJSON(resp.Value)
		},
	}
}

// parseValue interprets the argument as JSON when possible, falling back to a
// plain string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}
