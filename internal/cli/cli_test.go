package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const completeTable = `{
  "positive_high": ["tada"],
  "positive_low": ["slightly_smiling_face"],
  "negative_high": ["rage", "sob"],
  "negative_low": ["pensive"]
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func sentimentServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &key
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestVersion_Long(t *testing.T) {
	out, err := run(t, "version", "--long")

	require.NoError(t, err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "moodreact", info["name"])
	assert.Equal(t, "dev", info["version"])
}

func TestTableValidate_Complete(t *testing.T) {
	path := writeTable(t, "emoji.json", completeTable)

	out, err := run(t, "table", "validate", path)

	require.NoError(t, err)
	assert.Contains(t, out, "negative_high  2  rage sob")
	assert.Contains(t, out, "positive_high  1  tada")
}

func TestTableValidate_PathFromEnv(t *testing.T) {
	path := writeTable(t, "emoji.yaml", `
positive_high: [tada]
positive_low: [thumbsup]
negative_high: [rage]
negative_low: [pensive]
`)
	t.Setenv("EMOJI_TABLE_PATH", path)

	out, err := run(t, "table", "validate")

	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestTableValidate_EmptyClassFails(t *testing.T) {
	path := writeTable(t, "emoji.json", `{"positive_high":["tada"],"positive_low":[],"negative_high":["rage"],"negative_low":["pensive"]}`)

	out, err := run(t, "table", "validate", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive_low")
	assert.Contains(t, out, "positive_low   0")
}

func TestTableValidate_UnknownClassFails(t *testing.T) {
	path := writeTable(t, "emoji.json", `{"positive_high":["tada"],"positive_low":["a"],"negative_high":["b"],"negative_low":["c"],"neutral":["d"]}`)

	_, err := run(t, "table", "validate", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}

func TestTableValidate_MissingFile(t *testing.T) {
	_, err := run(t, "table", "validate", filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	srv, key := sentimentServer(t, http.StatusOK, `{"documentSentiment":{"score":-0.7,"magnitude":3.1}}`)
	path := writeTable(t, "emoji.json", completeTable)

	out, err := run(t, "classify", "--key", "k-123", "--api-url", srv.URL, "--table", path, "this", "is", "awful")

	require.NoError(t, err)
	assert.Equal(t, "k-123", *key)
	assert.Contains(t, out, "score:     -0.700")
	assert.Contains(t, out, "magnitude: 3.100")
	assert.Contains(t, out, "class:     negative_high")
	assert.Regexp(t, `emoji:     :(rage|sob):`, out)
}

func TestClassify_KeyFromEnv(t *testing.T) {
	srv, key := sentimentServer(t, http.StatusOK, `{"documentSentiment":{"score":0.2,"magnitude":0.3}}`)
	t.Setenv("GCP_KEY", "env-key")
	t.Setenv("SENTIMENT_API_URL", srv.URL)

	out, err := run(t, "classify", "--no-emoji", "fine")

	require.NoError(t, err)
	assert.Equal(t, "env-key", *key)
	assert.Contains(t, out, "class:     positive_low")
	assert.NotContains(t, out, "emoji:")
}

func TestClassify_MissingKey(t *testing.T) {
	t.Setenv("GCP_KEY", "")

	_, err := run(t, "classify", "--no-emoji", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCP_KEY")
}

func TestClassify_ServiceError(t *testing.T) {
	srv, _ := sentimentServer(t, http.StatusForbidden, `{"error":{"code":403}}`)

	_, err := run(t, "classify", "--key", "k", "--api-url", srv.URL, "--no-emoji", "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "analyzing sentiment")
}

func TestClassify_RequiresText(t *testing.T) {
	_, err := run(t, "classify")

	require.Error(t, err)
}
