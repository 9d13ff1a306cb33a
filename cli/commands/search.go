package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brianonbased-dev/infinity-assistant/infinity"
)

func (a *App) newSearchCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search the Infinity Assistant knowledge base.

Examples:
  infinity search "deployment checklist"
  infinity search "onboarding" --limit 5 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.SearchKnowledge(cmd.Context(), infinity.KnowledgeSearchRequest{
				Query: args[0],
				Limit: limit,
			})
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(resp)
			}

			if len(resp.Results) == 0 {
				fmt.Fprintln(a.stdout, "No results.")
				return nil
			}

			fmt.Fprintf(a.stdout, "%d result(s):\n", resp.Total)
			for i, result := range resp.Results {
				fmt.Fprintf(a.stdout, "%d. %v\n", i+1, summarizeResult(result))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of results (0 = server default)")

	return cmd
}

// summarizeResult picks a display string out of an untyped search hit.
func summarizeResult(result map[string]any) any {
	for _, key := range []string{"title", "name", "summary", "content"} {
		if v, ok := result[key]; ok {
			return v
		}
	}
	return result
}
