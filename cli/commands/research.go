package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brianonbased-dev/infinity-assistant/infinity"
)

func (a *App) newResearchCommand() *cobra.Command {
	var (
		depth   string
		sources int
	)

	cmd := &cobra.Command{
		Use:   "research <query>",
		Short: "Run a web research task",
		Long: `Run a web research task and print the findings.

Examples:
  infinity research "state of WebAssembly runtimes"
  infinity research "Go garbage collector" --depth deep --sources 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Research(cmd.Context(), infinity.ResearchRequest{
				Query:   args[0],
				Depth:   infinity.ResearchDepth(depth),
				Sources: sources,
			})
			if err != nil {
				return a.handleAPIError(err)
			}

			if a.jsonOutput {
				return a.outputJSON(resp)
			}

			if resp.Summary != "" {
				fmt.Fprintln(a.stdout, resp.Summary)
				fmt.Fprintln(a.stdout)
			}
			for i, result := range resp.Results {
				fmt.Fprintf(a.stdout, "%d. %v\n", i+1, summarizeResult(result))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&depth, "depth", "", "Research depth (shallow, medium, deep)")
	cmd.Flags().IntVar(&sources, "sources", 0, "Maximum sources to consult (0 = server default)")

	return cmd
}
