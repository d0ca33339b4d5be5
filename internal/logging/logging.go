package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const dateLayout = "2006-01-02"

type Options struct {
	Dir           string
	RetentionDays int
	Level         string
}

// New builds a JSON logger writing to stdout and to Dir/app-YYYY-MM-DD.log.
// The returned func flushes the logger and closes the current file.
func New(opts Options) (*zap.Logger, func(), error) {
	level, err := zapcore.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}
	file, err := OpenDailyFile(opts.Dir, opts.RetentionDays)
	if err != nil {
		return nil, nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.NewMultiWriteSyncer(zapcore.Lock(os.Stdout), file),
		zap.NewAtomicLevelAt(level),
	)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return logger, func() {
		_ = logger.Sync()
		_ = file.Close()
	}, nil
}

// DailyFile is a WriteSyncer that switches to a new file when the date
// changes and removes files older than the retention window.
type DailyFile struct {
	mu            sync.Mutex
	dir           string
	retentionDays int
	now           func() time.Time
	currentDate   string
	file          *os.File
}

func OpenDailyFile(dir string, retentionDays int) (*DailyFile, error) {
	return openDailyFile(dir, retentionDays, time.Now)
}

func openDailyFile(dir string, retentionDays int, now func() time.Time) (*DailyFile, error) {
	if dir == "" {
		dir = "storage/logs"
	}
	if retentionDays < 1 || retentionDays > 7 {
		retentionDays = 7
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	d := &DailyFile{dir: dir, retentionDays: retentionDays, now: now}
	if err := d.rotate(now().Format(dateLayout)); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if date := d.now().Format(dateLayout); date != d.currentDate {
		if err := d.rotate(date); err != nil {
			return 0, err
		}
	}
	return d.file.Write(p)
}

func (d *DailyFile) Sync() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	return d.file.Sync()
}

func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}

// Name is the path of the file currently written to.
func (d *DailyFile) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return filepath.Join(d.dir, logFileName(d.currentDate))
}

func (d *DailyFile) rotate(date string) error {
	next, err := os.OpenFile(filepath.Join(d.dir, logFileName(date)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if d.file != nil {
		_ = d.file.Close()
	}
	d.file = next
	d.currentDate = date
	cleanupOldLogs(d.dir, d.retentionDays, d.now())
	return nil
}

func logFileName(date string) string {
	return "app-" + date + ".log"
}

func cleanupOldLogs(dir string, retentionDays int, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -(retentionDays - 1)).Format(dateLayout)
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}
		datePart := strings.TrimSuffix(strings.TrimPrefix(name, "app-"), ".log")
		if _, err := time.Parse(dateLayout, datePart); err != nil {
			continue
		}
		if datePart < cutoff {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
