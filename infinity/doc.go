// Package infinity provides the Go client SDK for the Infinity Assistant API.
//
// The entry point is [Client], created with [New] or [NewFromEnv]:
//
//	client := infinity.New(os.Getenv("INFINITY_ASSISTANT_API_KEY"))
//	defer client.Close()
//
//	resp, err := client.Chat(ctx, infinity.ChatRequest{Message: "Hello!"})
//
// Every operation takes a context.Context and maps to one API endpoint. The
// client is safe for concurrent use; issue calls from as many goroutines as
// needed against one shared instance.
//
// # Streaming
//
// [Client.StreamChat] returns a pull-based [ChatStream] over decoded
// [StreamChunk] values:
//
//	stream, err := client.StreamChat(ctx, infinity.ChatRequest{Message: "Hi"})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//
//	for {
//	    chunk, err := stream.Next()
//	    if errors.Is(err, infinity.Done) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(chunk.Content)
//	}
//
// On Go 1.23+, [ChatStream.All] supports range-over-func iteration.
//
// # Errors
//
// Failures surface as [*APIError] values wrapping sentinel errors
// ([ErrRateLimited], [ErrTimeout], [ErrNetwork], ...) for errors.Is checks.
// Rate limits and connection failures are retried up to the configured
// budget; every other failure is terminal.
package infinity

// Version is the SDK release version.
const Version = "1.0.0"
