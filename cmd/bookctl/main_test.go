package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/erauner12/bookcatalog/internal/books"
	"github.com/erauner12/bookcatalog/internal/catalog"
	"github.com/erauner12/bookcatalog/internal/httpapi"
	"github.com/erauner12/bookcatalog/internal/storage"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_FlagOverrides(t *testing.T) {
	os.Unsetenv("BOOKCTL_API_BASE_URL")
	os.Unsetenv("BOOKCTL_LOG_LEVEL")

	cfg, err := loadConfig(flags{apiURL: "http://books.internal:9000", timeout: 5, debug: true, yes: true})
	require.NoError(t, err)
	assert.Equal(t, "http://books.internal:9000", cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
	assert.True(t, cfg.AssumeYes)
	assert.Equal(t, "debug", cfg.LogLevel)

	cfg, err = loadConfig(flags{debug: true, logLevel: "warn"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)

	_, err = loadConfig(flags{apiURL: "not a url"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLogLevel("bogus"))
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "0", "-1", "abc"} {
		_, err := parseID(bad)
		assert.Error(t, err, bad)
	}
}

func TestPromptConfirmer(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name        string
		input       string
		assumeYes   bool
		interactive bool
		want        bool
	}{
		{name: "assume yes", assumeYes: true, want: true},
		{name: "not a terminal", input: "y\n", want: false},
		{name: "yes", input: "y\n", interactive: true, want: true},
		{name: "YES", input: "YES\n", interactive: true, want: true},
		{name: "no", input: "n\n", interactive: true, want: false},
		{name: "empty", input: "\n", interactive: true, want: false},
		{name: "eof", input: "", interactive: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &promptConfirmer{
				in:          bufio.NewScanner(strings.NewReader(tt.input)),
				out:         &out,
				assumeYes:   tt.assumeYes,
				interactive: tt.interactive,
			}
			assert.Equal(t, tt.want, p.Confirm(ctx, `Are you sure you want to delete "Dune"?`))
			if tt.interactive && !tt.assumeYes {
				assert.Contains(t, out.String(), `delete "Dune"? [y/N]`)
			}
		})
	}
}

// runCLI executes bookctl against a live test server
func runCLI(t *testing.T, serverURL, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		in:     bufio.NewScanner(strings.NewReader(stdin)),
		out:    &out,
		errOut: &errOut,
	}
	root := a.rootCommand()
	root.SetArgs(append([]string{"--api", serverURL, "--log-level", "error"}, args...))
	root.SetOut(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func newBackend(t *testing.T, seed ...books.Draft) string {
	t.Helper()
	srv := &httpapi.Server{
		Books:           storage.NewMemory(seed),
		RateLimitConfig: httpapi.RateLimitInfo{WindowSeconds: 60, MaxRequests: 600, Burst: 120},
	}
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestCLI_Commands(t *testing.T) {
	url := newBackend(t, books.Draft{Title: "Dune", Author: "Herbert", PublishedYear: 1965})

	out, _, err := runCLI(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Book List (1 book)")
	assert.Contains(t, out, "Dune")

	out, _, err = runCLI(t, url, "", "add", "--title", "Emma", "--author", "Austen", "--year", "1815")
	require.NoError(t, err)
	assert.Contains(t, out, "Book added.")

	_, errOut, err := runCLI(t, url, "", "add", "--title", "Bad", "--author", "X", "--year", "99")
	assert.Error(t, err)
	assert.Contains(t, errOut, "published year must be between 1000 and 2100")

	out, _, err = runCLI(t, url, "", "update", "2", "--title", "Emma (Annotated)")
	require.NoError(t, err)
	assert.Contains(t, out, "Book updated.")

	_, errOut, err = runCLI(t, url, "", "update", "99", "--title", "X")
	assert.Error(t, err)
	assert.Contains(t, errOut, "book #99 not found")

	// stdin is not a terminal, so delete needs --yes
	out, _, err = runCLI(t, url, "", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete cancelled.")

	out, _, err = runCLI(t, url, "", "delete", "1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Book deleted.")

	out, _, err = runCLI(t, url, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Emma (Annotated)")
	assert.NotContains(t, out, "Dune")
}

func TestCLI_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, errOut, err := runCLI(t, ts.URL, "", "list")
	assert.Error(t, err)
	assert.Contains(t, errOut, "failed to fetch")
}

func TestCLI_Shell(t *testing.T) {
	url := newBackend(t)

	script := strings.Join([]string{
		"add",
		"1984",
		"Orwell",
		"1949",
		"edit 1",
		"",
		"George Orwell",
		"",
		"bogus",
		"exit",
	}, "\n") + "\n"

	out, _, err := runCLI(t, url, script, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "No books available")
	assert.Contains(t, out, "George Orwell")
	assert.Contains(t, out, "Unknown command")
	assert.Contains(t, out, "Goodbye!")
}

func TestFormHints(t *testing.T) {
	f := catalog.NewForm(func() time.Time { return time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC) })

	hints := formHints(f)
	assert.Equal(t, "", hints[books.FieldTitle])
	assert.Equal(t, "2025", hints[books.FieldPublishedYear])

	// unparsable year input leaves the year absent
	require.NoError(t, f.SetField(books.FieldTitle, "1984"))
	require.NoError(t, f.SetField(books.FieldPublishedYear, "abc"))
	hints = formHints(f)
	assert.Equal(t, "1984", hints[books.FieldTitle])
	assert.Equal(t, "", hints[books.FieldPublishedYear])

	err := f.Submit(context.Background(), func(context.Context, catalog.SubmitIntent) error { return nil })
	require.Error(t, err)
	hints = formHints(f)
	assert.Equal(t, "published year must be between 1000 and 2100", hints[books.FieldPublishedYear])
	assert.Equal(t, "author is required", hints[books.FieldAuthor])
}

func TestCLI_ShellRetryShowsYearError(t *testing.T) {
	url := newBackend(t)

	script := strings.Join([]string{
		"add",
		"1984",
		"Orwell",
		"abc",
		"",
		"",
		".",
		"exit",
	}, "\n") + "\n"

	out, _, err := runCLI(t, url, script, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Published year [published year must be between 1000 and 2100]")
	assert.NotContains(t, out, "Published year [0]")
	assert.Contains(t, out, "Cancelled.")
}
