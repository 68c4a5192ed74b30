package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiawesome/wes-io-live/smallid/internal/generator"
)

var idLine = regexp.MustCompile(`^\d{3}-[a-z]{4}$`)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := Run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestRun_NoArgumentsPrintsOneID(t *testing.T) {
	// -c keeps a stray ./config/config.yaml from leaking in.
	out, _, err := runCLI(t, "-c", t.TempDir())
	require.NoError(t, err)

	require.True(t, strings.HasSuffix(out, "\n"), "missing trailing newline: %q", out)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Regexp(t, idLine, lines[0])
	assert.Len(t, lines[0], 8)
}

func TestRun_RepeatedInvocationsAreIndependent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 50; i++ {
		out, _, err := runCLI(t, "-c", dir)
		require.NoError(t, err)
		assert.Regexp(t, idLine, strings.TrimSpace(out))
	}
}

func TestRun_Generate(t *testing.T) {
	out, _, err := runCLI(t, "-c", t.TempDir(), "generate", "-n", "25")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 25)
	for _, line := range lines {
		assert.Regexp(t, idLine, line)
	}

	_, _, err = runCLI(t, "-c", t.TempDir(), "generate", "-n", "0")
	assert.ErrorIs(t, err, generator.ErrInvalidCount)
}

func TestRun_SeededMathSourceIsReproducible(t *testing.T) {
	dir := writeConfig(t, "generator:\n  source: math\n  seed: 42\n")

	first, _, err := runCLI(t, "-c", dir, "generate", "-n", "10")
	require.NoError(t, err)
	second, _, err := runCLI(t, "-c", dir, "generate", "-n", "10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_Validate(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, "-c", dir, "validate", "482-qzkt", "000-aaaa")
	require.NoError(t, err)
	assert.Equal(t, "482-qzkt\tvalid\n000-aaaa\tvalid\n", out)

	out, _, err = runCLI(t, "-c", dir, "validate", "482-qzkt", "ABC-defg")
	assert.ErrorIs(t, err, ErrInvalidIDs)
	assert.Contains(t, out, "482-qzkt\tvalid\n")
	assert.Contains(t, out, "ABC-defg\tinvalid: character 'A' at position 0 is not a digit\n")

	_, _, err = runCLI(t, "-c", dir, "validate")
	assert.Error(t, err, "validate requires at least one id")
}

func TestRun_Parse(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, "-c", dir, "parse", "731-hell")
	require.NoError(t, err)
	assert.Equal(t, "digits=731 letters=hell\n", out)

	_, _, err = runCLI(t, "-c", dir, "parse", "7311-hell")
	assert.ErrorIs(t, err, generator.ErrInvalidID)
}

func TestRun_Stats(t *testing.T) {
	out, _, err := runCLI(t, "-c", t.TempDir(), "stats", "-n", "2000")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+generator.DigitCount+generator.LetterCount+1)
	assert.True(t, strings.HasPrefix(lines[0], "position"))
	assert.Contains(t, lines[1], "digits")
	assert.Contains(t, lines[len(lines)-2], "letters")
	assert.Contains(t, lines[len(lines)-1], "n=2000")
}

func TestRun_Help(t *testing.T) {
	out, _, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "generate")
	assert.Contains(t, out, "serve")
}

func TestRun_Errors(t *testing.T) {
	_, _, err := runCLI(t, "-c", t.TempDir(), "extra")
	assert.Error(t, err)

	_, _, err = runCLI(t, "--no-such-flag")
	assert.Error(t, err)

	dir := writeConfig(t, "generator:\n  source: dice\n")
	_, _, err = runCLI(t, "-c", dir)
	assert.ErrorIs(t, err, generator.ErrUnknownSource)
}

func TestRun_VerboseLogsToStderr(t *testing.T) {
	out, errOut, err := runCLI(t, "-v", "-c", t.TempDir())
	require.NoError(t, err)

	assert.Regexp(t, idLine, strings.TrimSpace(out))
	assert.Contains(t, errOut, "generator initialized")
	assert.NotContains(t, out, "generator initialized")
}

func TestRun_Serve(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	// Server goroutines log concurrently, so stderr must be goroutine safe.
	app := newApp(ctx, io.Discard, io.Discard)
	app.serveReady = ready

	done := make(chan error, 1)
	go func() {
		done <- app.run([]string{"-c", t.TempDir(), "serve", "--addr", "127.0.0.1:0"})
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("serve exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not start")
	}

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("serve did not shut down")
	}
}
