package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newAPIKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikeys",
		Short: "Manage provisioned API keys",
		Long:  `Provision, list, and revoke API keys for the account.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List provisioned API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.ListAPIKeys(cmd.Context())
			if err != nil {
				return a.handleAPIError(err)
			}
			return a.outputJSON(resp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a new API key",
		Long: `Create a new API key with the given display name.

The full key value is only returned once, in this response. Store it
immediately; it cannot be retrieved again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.CreateAPIKey(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			return a.outputJSON(resp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Revoke an API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.DeleteAPIKey(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			if a.jsonOutput {
				return a.outputJSON(resp)
			}
			fmt.Fprintf(a.stdout, "API key %s revoked.\n", args[0])
			return nil
		},
	})

	return cmd
}
