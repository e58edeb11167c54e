package main

import (
	"bytes"
	"strings"
	"testing"

	"ladle/internal/ipc"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds int64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{90, "1:30"},
		{3600, "1:00:00"},
		{5400, "1:30:00"},
		{-5, "0:00"},
	}
	for _, tc := range cases {
		if got := formatDuration(tc.seconds); got != tc.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestSettled(t *testing.T) {
	running := []ipc.ProgressEntry{
		{Step: "READY", State: "SUCCESS"},
		{Step: "CAPTION", State: "RUNNING"},
	}
	if settled(running) {
		t.Error("running pipeline should not be settled")
	}

	finished := append(running, ipc.ProgressEntry{Step: "FINISHED", State: "SUCCESS"})
	if !settled(finished) {
		t.Error("finished pipeline should be settled")
	}

	failed := append(running, ipc.ProgressEntry{Step: "CAPTION", State: "FAILED"})
	if !settled(failed) {
		t.Error("failed pipeline should be settled")
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]column{{title: "ID", right: true}, {title: "Status"}},
		[][]string{{"1", "SUCCESS"}, {"2", "FAILED"}},
	)
	if !strings.Contains(out, "SUCCESS") || !strings.Contains(out, "FAILED") {
		t.Fatalf("table missing rows:\n%s", out)
	}
}

func TestRootCommandHelp(t *testing.T) {
	cmd := newRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute help: %v", err)
	}
	for _, sub := range []string{"submit", "show", "progress", "list", "status"} {
		if !strings.Contains(buf.String(), sub) {
			t.Errorf("help output missing %q command", sub)
		}
	}
}
