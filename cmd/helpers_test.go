package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout runs fn while stdout is redirected to a pipe and returns
// everything fn printed.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// resetWorkloadFlags clears the workload selection flags for a test and
// restores the previous values afterwards.
func resetWorkloadFlags(t *testing.T) {
	t.Helper()
	prevFile, prevPreset, prevCount := workloadFile, workloadPreset, count
	t.Cleanup(func() {
		workloadFile, workloadPreset, count = prevFile, prevPreset, prevCount
	})
	workloadFile, workloadPreset = "", ""
}
