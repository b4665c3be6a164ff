package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brogergvhs/xkcdbot/internal/xkcdtest"
)

func init() {
	color.NoColor = true
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func site(t *testing.T) *xkcdtest.Server {
	t.Helper()

	srv := xkcdtest.NewServer(
		xkcdtest.Page{Number: 1, Title: "Barrel - Part 1", Hover: "Don't we all."},
		xkcdtest.Page{Number: 2, Title: "Petit Trees (sketch)", Hover: "'Petit' being a reference to Le Petit Prince"},
		xkcdtest.Page{Number: 3, Title: "Island (sketch)", Hover: "Hello, island"},
	)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetCommand(t *testing.T) {
	srv := site(t)

	out, err := execute(t, "--ignore-config", "--base-url", srv.URL, "get", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Petit Trees (sketch)")
	assert.Contains(t, out, "Le Petit Prince")
	assert.Contains(t, out, "xkcd #2")
}

func TestGetCommandRejectsNonNumber(t *testing.T) {
	_, err := execute(t, "--ignore-config", "get", "two")
	require.Error(t, err)
}

func TestLatestCommand(t *testing.T) {
	srv := site(t)

	out, err := execute(t, "--ignore-config", "--base-url", srv.URL, "latest")
	require.NoError(t, err)
	assert.Contains(t, out, "xkcd #3")
}

func TestLookupCommand(t *testing.T) {
	srv := site(t)

	out, err := execute(t, "--ignore-config", "--base-url", srv.URL, "lookup", "island", "(sketch)")
	require.NoError(t, err)
	assert.Contains(t, out, "xkcd #3")

	out, err = execute(t, "--ignore-config", "--base-url", srv.URL, "lookup", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "no comic title found")
}

func TestIndexCommand(t *testing.T) {
	srv := site(t)

	out, err := execute(t, "--ignore-config", "--base-url", srv.URL, "index")
	require.NoError(t, err)
	assert.Contains(t, out, "Indexed 3 comics")
}

func TestRangeCommand(t *testing.T) {
	srv := site(t)

	out, err := execute(t, "--ignore-config", "--base-url", srv.URL, "range", "1-3")
	require.NoError(t, err)

	first := bytes.Index([]byte(out), []byte("xkcd #1"))
	last := bytes.Index([]byte(out), []byte("xkcd #3"))
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, last, first)
	assert.Contains(t, out, "Comics:   3")
}

func TestRangeCommandTooLarge(t *testing.T) {
	srv := site(t)

	_, err := execute(t, "--ignore-config", "--base-url", srv.URL, "range", "1", "20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot get more than 10 comics at once")
	assert.Zero(t, srv.TotalHits())
}

func TestRangeArgs(t *testing.T) {
	first, last, err := rangeArgs([]string{"5-12"})
	require.NoError(t, err)
	assert.Equal(t, 5, first)
	assert.Equal(t, 12, last)

	first, last, err = rangeArgs([]string{"7", "9"})
	require.NoError(t, err)
	assert.Equal(t, 7, first)
	assert.Equal(t, 9, last)

	_, _, err = rangeArgs([]string{"a", "9"})
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "xkcdbot version: dev")
}
