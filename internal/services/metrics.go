package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type MetricSample struct {
	ID                string    `db:"id" json:"-"`
	CapturedAt        time.Time `db:"captured_at" json:"capturedAt"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes" json:"processRssBytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes" json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes" json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes" json:"diskTotalBytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes" json:"diskUsedBytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load" json:"processCpuLoad"`
	SystemCpuLoad     float64   `db:"system_cpu_load" json:"systemCpuLoad"`
}

// SampleHost reads process and host usage. Probes that fail report zero.
func SampleHost(diskPath string) MetricSample {
	sample := MetricSample{CapturedAt: now()}
	if memStat, err := mem.VirtualMemory(); err == nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, err = disk.Usage("/")
	}
	if err == nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}
	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, _ := proc.MemoryInfo(); rss != nil {
			sample.ProcessRSSBytes = int64(rss.RSS)
		}
		if cpuPerc, err := proc.CPUPercent(); err == nil {
			sample.ProcessCpuLoad = cpuPerc / 100.0
		}
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		sample.SystemCpuLoad = sysCPU[0] / 100.0
	}
	return sample
}

func RecordMetrics(ctx context.Context, db *sqlx.DB, sample MetricSample) (MetricSample, error) {
	sample.ID = uuid.NewString()
	_, err := db.NamedExecContext(ctx, `
INSERT INTO server_metric_samples (
  id, captured_at, process_rss_bytes, system_memory_total_bytes, system_memory_used_bytes,
  disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
) VALUES (
  :id, :captured_at, :process_rss_bytes, :system_memory_total_bytes, :system_memory_used_bytes,
  :disk_total_bytes, :disk_used_bytes, :process_cpu_load, :system_cpu_load
)`, sample)
	if err != nil {
		return MetricSample{}, WrapError(err, "insert metric sample")
	}
	return sample, nil
}

func CaptureMetrics(ctx context.Context, db *sqlx.DB, diskPath string) (MetricSample, error) {
	return RecordMetrics(ctx, db, SampleHost(diskPath))
}

// LatestMetrics returns up to limit samples, oldest first.
func LatestMetrics(ctx context.Context, db *sqlx.DB, limit int) ([]MetricSample, error) {
	if limit < 1 {
		limit = 60
	}
	rows := []MetricSample{}
	if err := selectAll(ctx, db, &rows, `
SELECT id, captured_at, process_rss_bytes, system_memory_total_bytes, system_memory_used_bytes,
       disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT ?`, limit); err != nil {
		return nil, err
	}
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows, nil
}

// PruneMetrics drops samples captured before cutoff.
func PruneMetrics(ctx context.Context, db *sqlx.DB, cutoff time.Time) (int64, error) {
	res, err := execQuery(ctx, db, `DELETE FROM server_metric_samples WHERE captured_at < ?`, cutoff)
	if err != nil {
		return 0, WrapError(err, "prune metric samples")
	}
	return res.RowsAffected()
}

// MetricsHub fans samples out to connected websocket clients.
type MetricsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	ch      chan MetricSample
}

func NewMetricsHub() *MetricsHub {
	return &MetricsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan MetricSample, 16),
	}
}

func (h *MetricsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteJSON(sample); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		case <-ctx.Done():
			h.mu.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Broadcast queues sample for delivery, dropping it when the hub is behind.
func (h *MetricsHub) Broadcast(sample MetricSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *MetricsHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

func (h *MetricsHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

func (h *MetricsHub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
