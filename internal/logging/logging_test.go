package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyFileRotatesOnDateChange(t *testing.T) {
	dir := t.TempDir()
	clock := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	file, err := openDailyFile(dir, 7, func() time.Time { return clock })
	require.NoError(t, err)
	defer file.Close()

	_, err = file.Write([]byte("first\n"))
	require.NoError(t, err)
	clock = clock.Add(2 * time.Minute)
	_, err = file.Write([]byte("second\n"))
	require.NoError(t, err)

	first, err := os.ReadFile(filepath.Join(dir, "app-2026-03-10.log"))
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "app-2026-03-11.log"))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(first))
	assert.Equal(t, "second\n", string(second))
	assert.Equal(t, filepath.Join(dir, "app-2026-03-11.log"), file.Name())
}

func TestDailyFileRemovesExpiredLogs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"app-2026-03-01.log", "app-2026-03-08.log", "notes.txt", "app-garbage.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	clock := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	file, err := openDailyFile(dir, 3, func() time.Time { return clock })
	require.NoError(t, err)
	defer file.Close()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := []string{}
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"app-2026-03-08.log", "app-2026-03-10.log", "notes.txt", "app-garbage.log"}, names)
}

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	logger, closeFn, err := New(Options{Dir: dir, RetentionDays: 2, Level: "debug"})
	require.NoError(t, err)
	logger.Debug("hello")
	closeFn()

	data, err := os.ReadFile(filepath.Join(dir, logFileName(time.Now().Format(dateLayout))))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"level":"debug"`)
}
