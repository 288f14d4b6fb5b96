package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bares/app/lang"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitStats(t *testing.T, done <-chan stats) stats {
	t.Helper()
	select {
	case st := <-done:
		return st
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for evaluation")
	}
	return stats{}
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte("1+1\n"), 0o644))

	opts := &options{jobs: 1, format: "text", color: "never", reporter: lang.DefaultReporter()}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan stats, 16)
	errc := make(chan error, 1)
	go func() { errc <- watchFile(ctx, opts, input, output, done) }()

	st := waitStats(t, done)
	assert.Equal(t, 1, st.lines)
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "2\n", string(data))

	require.NoError(t, os.WriteFile(input, []byte("2*3\n5/0\n"), 0o644))
	require.Eventually(t, func() bool {
		select {
		case <-done:
		default:
		}
		data, err := os.ReadFile(output)
		return err == nil && string(data) == "6\nDivision by zero!\n"
	}, 10*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-errc)
}

func TestWatchFileUnreadDoneChannel(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte("1+1\n"), 0o644))

	opts := &options{jobs: 1, format: "text", color: "never", reporter: lang.DefaultReporter()}
	ctx, cancel := context.WithCancel(context.Background())
	// nobody receives from done; evaluations must still proceed
	done := make(chan stats)
	errc := make(chan error, 1)
	go func() { errc <- watchFile(ctx, opts, input, output, done) }()

	readOutput := func() string {
		data, _ := os.ReadFile(output)
		return string(data)
	}
	require.Eventually(t, func() bool { return readOutput() == "2\n" }, 10*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(input, []byte("3*3\n"), 0o644))
	require.Eventually(t, func() bool { return readOutput() == "9\n" }, 10*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}
