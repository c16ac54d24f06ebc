package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSampleCommandPrintsCompletion(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"新規事業のアイデアは？"}}]}`))
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_URL", server.URL+"/v1/chat/completions")
	t.Setenv("OPENAI_API_KEY", "cli-key")
	logPath := filepath.Join(t.TempDir(), "cli.log")

	out, err := runRoot(t, "sample", "--env-file", "", "--log-file", logPath)
	require.NoError(t, err)

	assert.Equal(t, "新規事業のアイデアは？\n", out)
	assert.Equal(t, "Bearer cli-key", auth)

	_, err = os.Stat(logPath)
	assert.NoError(t, err)
}

func TestSampleCommandReportsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	t.Setenv("OPENAI_API_URL", server.URL+"/v1/chat/completions")
	_, err := runRoot(t, "sample", "--env-file", "", "--log-file", filepath.Join(t.TempDir(), "cli.log"))

	assert.ErrorContains(t, err, "sample request failed")
}

func TestSetupRejectsInvalidConfig(t *testing.T) {
	t.Setenv("LOGICTREE_LOG_LEVEL", "loud")
	_, err := runRoot(t, "sample", "--env-file", "", "--log-file", filepath.Join(t.TempDir(), "cli.log"))

	assert.ErrorContains(t, err, "invalid configuration")
}
