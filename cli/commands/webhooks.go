package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) newWebhooksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage registered webhooks",
		Long:  `Register, list, and remove webhook endpoints for event notifications.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered webhooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.ListWebhooks(cmd.Context())
			if err != nil {
				return a.handleAPIError(err)
			}
			return a.outputJSON(resp)
		},
	})

	var events []string
	create := &cobra.Command{
		Use:   "create <url>",
		Short: "Register a webhook",
		Long: `Register a webhook endpoint for event notifications.

Examples:
  infinity webhooks create https://example.com/hook --events chat.completed
  infinity webhooks create https://example.com/hook --events chat.completed,research.done`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.CreateWebhook(cmd.Context(), args[0], events)
			if err != nil {
				return a.handleAPIError(err)
			}
			if a.jsonOutput {
				return a.outputJSON(resp)
			}
			fmt.Fprintf(a.stdout, "Webhook registered for events: %s\n", strings.Join(events, ", "))
			return a.outputJSON(resp)
		},
	}
	create.Flags().StringSliceVar(&events, "events", nil, "Event types to subscribe to (required)")
	_ = create.MarkFlagRequired("events")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a webhook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.DeleteWebhook(cmd.Context(), args[0])
			if err != nil {
				return a.handleAPIError(err)
			}
			if a.jsonOutput {
				return a.outputJSON(resp)
			}
			fmt.Fprintf(a.stdout, "Webhook %s removed.\n", args[0])
			return nil
		},
	})

	return cmd
}
