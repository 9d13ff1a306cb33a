package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) newHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check service health",
		Long:  `Query the service health endpoint. Health checks do not require an API key.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Health needs no key; use one when available so the request
			// reflects the caller's credentials.
			apiKey, _ := a.resolveAPIKey()

			client, err := a.newClient(apiKey, a.cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Health(cmd.Context())
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(resp)
			}

			if status, ok := resp["status"].(string); ok {
				fmt.Fprintf(a.stdout, "Status: %s\n", status)
				return nil
			}
			return a.outputJSON(resp)
		},
	}
}
