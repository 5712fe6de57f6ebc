package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/eventboard/config"
	"github.com/spektr-org/eventboard/dashboard"
	"github.com/spektr-org/eventboard/internal/testutil"
	"github.com/spektr-org/eventboard/logging"
	"github.com/spektr-org/eventboard/registrants"
)

// run executes the CLI in a scratch directory against the sample workbook.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	chdirTest(t, dir)
	data := testutil.SampleWorkbook(t, dir)

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--no-color", "--data", data}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootHelp(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	for _, sub := range []string{"summary", "options", "chart", "export", "serve", "version"} {
		assert.Contains(t, buf.String(), sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	pf := newRootCmd().PersistentFlags()
	for _, name := range []string{"config", "data", "verbose", "quiet", "no-color"} {
		assert.NotNil(t, pf.Lookup(name), name)
	}
	assert.Equal(t, "verbose", pf.ShorthandLookup("v").Name)
	assert.Equal(t, "quiet", pf.ShorthandLookup("q").Name)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "eventboard dev\n", out)
}

func TestSummary_Text(t *testing.T) {
	out, err := run(t, "summary", "--table")
	require.NoError(t, err)

	assert.Contains(t, out, "FY25 Event Registration Dashboard")
	assert.Contains(t, out, "Total Registrants")
	assert.Contains(t, out, "57")
	assert.Contains(t, out, "Average Registrants per Event")
	assert.Contains(t, out, "Registrants by Chapter/Group")
	assert.Contains(t, out, "Registrants by Event Type")
	assert.Contains(t, out, "Mystery Night")
	assert.Contains(t, out, "Total (4 records)")
	assert.Contains(t, out, "(blank)")
	assert.Contains(t, out, "Logo not found")
	assert.Less(t, strings.Index(out, "Dallas"), strings.Index(out, "Houston"))
}

func TestSummary_JSONWithSelection(t *testing.T) {
	out, err := run(t, "summary", "--format", "json", "--paid-only", "--type", "Webinar", "--type", "Meetup")
	require.NoError(t, err)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 38.0, snap.Metrics.TotalRegistrants)
	assert.Equal(t, 2, snap.Metrics.Events)
	assert.True(t, snap.Criteria.PaidOnly)
}

func TestSummary_GroupWithComma(t *testing.T) {
	dir := t.TempDir()
	chdirTest(t, dir)
	rows := append(testutil.SampleRows(),
		[]any{5, "Fort Worth, TX", "Webinar", "Yes", 9, 4, "2025-04-01", "Cowtown Q&A"})
	data := testutil.WriteWorkbook(t, dir, "registrants.xlsx", testutil.Header, rows)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--no-color", "--data", data, "summary", "-f", "json", "--group", "Fort Worth, TX"})
	require.NoError(t, cmd.Execute())

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(out.Bytes(), &snap))
	assert.Equal(t, []string{"Fort Worth, TX"}, snap.Criteria.Groups)
	assert.Equal(t, 1, snap.Metrics.Events)
	assert.Equal(t, 9.0, snap.Metrics.TotalRegistrants)
}

func TestSummary_NullTypeOnly(t *testing.T) {
	out, err := run(t, "summary", "-f", "json", "--null-type")
	require.NoError(t, err)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 7.0, snap.Metrics.TotalRegistrants)
}

func TestSummary_AllGroups(t *testing.T) {
	out, err := run(t, "summary", "-f", "json", "--all-groups")
	require.NoError(t, err)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Equal(t, 5, snap.Metrics.Events)
}

func TestSummary_UnknownFormat(t *testing.T) {
	_, err := run(t, "summary", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestSummary_MissingData(t *testing.T) {
	chdirTest(t, t.TempDir())
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"summary", "--data", "missing.xlsx"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "source file not found")
}

func TestOptions(t *testing.T) {
	out, err := run(t, "options", "-f", "json")
	require.NoError(t, err)

	var opts registrants.Options
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, []string{"Dallas", "Houston", "Austin"}, opts.Groups)

	out, err = run(t, "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Event Type")
	assert.Contains(t, out, "(blank)")
}

func TestChart(t *testing.T) {
	target := filepath.Join(t.TempDir(), "chapters.svg")
	out, err := run(t, "chart", "chapters", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Chart written")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")

	_, err = run(t, "chart", "pie", "--out", filepath.Join(t.TempDir(), "pie.png"))
	assert.ErrorContains(t, err, "unknown chart")
}

func TestExport(t *testing.T) {
	target := filepath.Join(t.TempDir(), "events.csv")
	out, err := run(t, "export", "--out", target, "--group", "Dallas")
	require.NoError(t, err)
	assert.Contains(t, out, "2 events written")

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = run(t, "export", "--out", filepath.Join(t.TempDir(), "events.ods"))
	assert.Error(t, err)
}

func TestServe_GracefulShutdown(t *testing.T) {
	dir := t.TempDir()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := config.Default()
	cfg.DataFile = testutil.SampleWorkbook(t, dir)
	cfg.Server.Addr = addr
	a := &app{cfg: cfg, logger: logging.Setup(logging.Options{Writer: &bytes.Buffer{}, Quiet: true})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, a) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

// chdirTest changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdirTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
