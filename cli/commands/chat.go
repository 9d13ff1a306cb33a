package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brianonbased-dev/infinity-assistant/infinity"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitValidation = 1
	ExitAPI        = 2
	ExitNetwork    = 3
)

func (a *App) newChatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send a chat message to the assistant",
		Long: `Send a chat message to the Infinity Assistant.

Examples:
  infinity chat --message "Hello"
  infinity chat --message "Summarize my notes" --mode search
  infinity chat --message "Hello" --stream
  infinity chat --message "Hello" --json`,
		RunE: a.runChat,
	}

	cmd.Flags().StringVarP(&a.chatMessage, "message", "m", "", "User message (required)")
	cmd.Flags().BoolVar(&a.chatStream, "stream", false, "Stream the response as it is generated")
	cmd.Flags().StringVar(&a.chatUser, "user", "", "User ID to attach to the request")
	cmd.Flags().StringVar(&a.chatSession, "session", "", "Session ID for conversation continuity")

	_ = cmd.MarkFlagRequired("message")

	return cmd
}

func (a *App) runChat(cmd *cobra.Command, args []string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	defer client.Close()

	req := infinity.ChatRequest{
		Message:   a.chatMessage,
		UserID:    a.chatUser,
		Mode:      infinity.ChatMode(a.mode),
		SessionID: a.chatSession,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if a.chatStream {
		return a.runStreamingChat(ctx, client, req)
	}
	return a.runSingleChat(ctx, client, req)
}

func (a *App) runSingleChat(ctx context.Context, client *infinity.Client, req infinity.ChatRequest) error {
	resp, err := client.Chat(ctx, req)
	if err != nil {
		return a.handleAPIError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(resp)
	}

	fmt.Fprintf(a.stdout, "> %s\n", req.Message)
	fmt.Fprintln(a.stdout, resp.Response)

	if a.verbose && resp.ConversationID != "" {
		a.logger.Debug("chat complete",
			"conversationId", resp.ConversationID,
			"messageId", resp.MessageID)
	}

	return nil
}

func (a *App) runStreamingChat(ctx context.Context, client *infinity.Client, req infinity.ChatRequest) error {
	stream, err := client.StreamChat(ctx, req)
	if err != nil {
		return a.handleAPIError(err)
	}
	defer stream.Close()

	if a.jsonOutput {
		// Accumulate for JSON output.
		text, err := stream.Drain()
		if err != nil {
			return a.handleAPIError(err)
		}
		return a.outputJSON(map[string]any{"response": text})
	}

	fmt.Fprintf(a.stdout, "> %s\n", req.Message)

	for {
		chunk, err := stream.Next()
		if err != nil {
			if errors.Is(err, infinity.Done) {
				break
			}
			fmt.Fprintln(a.stdout)
			return a.handleAPIError(err)
		}

		switch chunk.Type {
		case infinity.ChunkText:
			fmt.Fprint(a.stdout, chunk.Content)
		case infinity.ChunkMetadata:
			if a.verbose {
				a.logger.Debug("stream metadata", "metadata", chunk.Metadata)
			}
		case infinity.ChunkError:
			fmt.Fprintln(a.stdout)
			return a.handleAPIError(&infinity.APIError{
				Message: chunk.Error,
				Err:     infinity.ErrStream,
			})
		case infinity.ChunkDone:
			fmt.Fprintln(a.stdout)
			return nil
		}
	}

	fmt.Fprintln(a.stdout)
	return nil
}

// handleAPIError prints an API failure and wraps it with the proper exit code.
func (a *App) handleAPIError(err error) error {
	var apiErr *infinity.APIError
	if errors.As(err, &apiErr) {
		if a.jsonOutput {
			a.outputErrorJSON(apiErr)
		} else {
			fmt.Fprintf(a.stderr, "Error: %s\n", apiErr.Message)
			if apiErr.Code != "" {
				fmt.Fprintf(a.stderr, "  Code: %s, Status: %d\n", apiErr.Code, apiErr.StatusCode)
			}
		}

		switch {
		case errors.Is(err, infinity.ErrNetwork), errors.Is(err, infinity.ErrTimeout):
			return exitWithCode(ExitNetwork, err)
		default:
			return exitWithCode(ExitAPI, err)
		}
	}

	if a.jsonOutput {
		a.outputSimpleErrorJSON("error", err.Error())
	} else {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
	}
	return exitWithCode(ExitAPI, err)
}

func (a *App) outputJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *App) outputErrorJSON(apiErr *infinity.APIError) {
	output := map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
			"status":  apiErr.StatusCode,
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func (a *App) outputSimpleErrorJSON(errType, message string) {
	output := map[string]any{
		"error": map[string]any{
			"type":    errType,
			"message": message,
		},
	}

	enc := json.NewEncoder(a.stderr)
	enc.SetIndent("", "  ")
	enc.Encode(output)
}

func errNoAPIKey(ref string) error {
	return fmt.Errorf("no API key found: set %s or run 'infinity keys set %s'",
		infinity.APIKeyEnvVar, ref)
}

// exitError wraps an error with an exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) ExitCode() int {
	return e.code
}

func exitWithCode(code int, err error) error {
	return &exitError{code: code, err: err}
}
