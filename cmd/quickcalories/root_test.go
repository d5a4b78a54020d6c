package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"quickcalories/internal/config"
	"quickcalories/internal/nutrition"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestRootHelp(t *testing.T) {
	out, err := run(t, "--help")
	if err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	for _, sub := range []string{"serve", "target", "estimate", "log", "summary", "settings", "version"} {
		if !strings.Contains(out, sub) {
			t.Fatalf("expected %q in help output", sub)
		}
	}
}

func TestServeFlagDefaultsFollowConfig(t *testing.T) {
	defaults := config.Default()
	if got := serveCmd.Flags().Lookup("host").DefValue; got != defaults.Server.Host {
		t.Fatalf("host default %q, config default %q", got, defaults.Server.Host)
	}
	if got := serveCmd.Flags().Lookup("port").DefValue; got != strconv.Itoa(defaults.Server.Port) {
		t.Fatalf("port default %q, config default %d", got, defaults.Server.Port)
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil || !strings.Contains(out, "quickcalories version") {
		t.Fatalf("unexpected version output %q err %v", out, err)
	}
}

func TestTargetManual(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qc.db")
	out, err := run(t, "--db", path, "target", "--calories", "2000", "--split", "balanced")
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if !strings.Contains(out, "Daily target: 2000 kcal (balanced)") || !strings.Contains(out, "Protein: 150g") {
		t.Fatalf("unexpected target output:\n%s", out)
	}
}

func TestLogAndSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qc.db")
	if _, err := run(t, "--db", path, "log", "food", "--name", "Oatmeal", "--calories", "150", "--servings", "2"); err != nil {
		t.Fatalf("log food: %v", err)
	}
	if _, err := run(t, "--db", path, "log", "workout", "--name", "Run", "--calories", "100"); err != nil {
		t.Fatalf("log workout: %v", err)
	}

	out, err := run(t, "--db", path, "summary", "--week=false")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !strings.Contains(out, "Eaten: 300 kcal") || !strings.Contains(out, "Net: 200 / 2000 kcal") {
		t.Fatalf("unexpected summary:\n%s", out)
	}
}

func TestLogFoodRejectsServings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qc.db")
	_, err := run(t, "--db", path, "log", "food", "--name", "Cake", "--calories", "300", "--servings", "50")
	if err == nil || !strings.Contains(err.Error(), "servings") {
		t.Fatalf("expected servings error, got %v", err)
	}
	// reset for later tests sharing the command tree
	logFoodServings = 1
}

func TestEstimateWithoutGateway(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qc.db")
	t.Setenv("QUICKCALORIES_GATEWAY_URL", "")
	_, err := run(t, "--db", path, "estimate", "--log=false", "--image=", "an", "apple")
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected missing gateway error, got %v", err)
	}
}

func TestDescribeError(t *testing.T) {
	cases := map[error]string{
		nutrition.ErrRateLimitExceeded:                       "Daily AI limit reached",
		&nutrition.APIError{Status: 401, Message: "bad key"}: "AI service error: bad key",
		&nutrition.NetworkError{Err: errors.New("dial")}:     "Network error",
		nutrition.ErrInvalidResponse:                         "Unable to parse nutritional data",
	}
	for err, want := range cases {
		if got := describeError(err); !strings.Contains(got, want) {
			t.Fatalf("describeError(%v) = %q, want %q", err, got, want)
		}
	}
}
