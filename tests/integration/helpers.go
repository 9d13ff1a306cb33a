//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"testing"

	"github.com/brianonbased-dev/infinity-assistant/infinity"
)

// isCI returns true if running in a CI environment.
func isCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "JENKINS_URL"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// skipIfNoAPIKey skips the test when INFINITY_ASSISTANT_API_KEY is not set.
// In CI it fails loudly instead, unless INFINITY_SKIP_INTEGRATION is set.
func skipIfNoAPIKey(t *testing.T) {
	t.Helper()
	if os.Getenv(infinity.APIKeyEnvVar) != "" {
		return
	}
	if isCI() && os.Getenv("INFINITY_SKIP_INTEGRATION") == "" {
		t.Fatalf("%s not set (CI environment detected; set INFINITY_SKIP_INTEGRATION=1 to skip)", infinity.APIKeyEnvVar)
	}
	t.Skipf("%s not set", infinity.APIKeyEnvVar)
}

// getAPIKey returns the API key from the environment.
func getAPIKey(t *testing.T) string {
	t.Helper()
	key := os.Getenv(infinity.APIKeyEnvVar)
	if key == "" {
		t.Fatalf("%s not set", infinity.APIKeyEnvVar)
	}
	return key
}

// cliResult captures one CLI invocation.
type cliResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// runCLI executes the infinity CLI with the pre-built binary from TestMain.
// HOME points at a throwaway directory so the real keystore is never touched.
func runCLI(t *testing.T, args ...string) cliResult {
	return runCLIWithStdin(t, "", args...)
}

// runCLIWithStdin executes the infinity CLI with stdin input.
func runCLIWithStdin(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	if cliBinary == "" {
		t.Fatal("CLI binary not built - TestMain may not have run")
	}

	cmd := exec.Command(cliBinary, args...)
	cmd.Env = append(os.Environ(), "HOME="+testHome, "USERPROFILE="+testHome)
	if stdin != "" {
		cmd.Stdin = bytes.NewBufferString(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("Failed to run CLI: %v", err)
		}
	}

	return cliResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
