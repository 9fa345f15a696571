package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPrintsEveryTable(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-rate", "48000", "-env", ""}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}

	out := stdout.String()
	for _, name := range []string{
		"sin", "raised_cos", "xfade_in", "xfade_out",
		"preset_times", "preset_velos", "preset_pans", "preset_types", "preset_sizes",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("summary misses %q:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "1281") {
		t.Fatalf("summary misses sine length:\n%s", out)
	}
}

func TestRunAnalyze(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-rate", "32000", "-env", "", "-analyze", "-xfade-scale", "equal-power"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "worst spur") {
		t.Fatalf("missing analysis:\n%s", stdout.String())
	}
}

func TestRunReadsSampleRateFromEnvFile(t *testing.T) {
	t.Setenv(sampleRateEnv, "")
	os.Unsetenv(sampleRateEnv)
	path := filepath.Join(t.TempDir(), "build.env")
	if err := os.WriteFile(path, []byte("SAMPLE_RATE=44100\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-env", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
}

func TestRunFailsWithoutSampleRate(t *testing.T) {
	t.Setenv(sampleRateEnv, "")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-env", filepath.Join(t.TempDir(), "missing.env")}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no tables on failure, got:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "SAMPLE_RATE") {
		t.Fatalf("stderr = %q", stderr.String())
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	tests := [][]string{
		{"-rate", "48000", "-env", "", "-order", "random"},
		{"-rate", "48000", "-env", "", "-mode", "x"},
		{"-rate", "48000", "-env", "", "-xfade-scale", "loud"},
		{"-rate", "-5", "-env", ""},
	}
	for _, args := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(args, &stdout, &stderr); code == 0 {
			t.Fatalf("run(%v) succeeded, want failure", args)
		}
	}
}

func TestRunRejectsExplicitZeroRate(t *testing.T) {
	t.Setenv(sampleRateEnv, "48000")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-rate", "0", "-env", ""}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no tables, got:\n%s", stdout.String())
	}
	if !strings.Contains(stderr.String(), "-rate") {
		t.Fatalf("stderr = %q", stderr.String())
	}

	stdout.Reset()
	stderr.Reset()
	if code := run([]string{"-env", ""}, &stdout, &stderr); code != 0 {
		t.Fatalf("unset -rate with SAMPLE_RATE: exit code = %d, stderr = %s", code, stderr.String())
	}
}
