package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/process"
)

// RecentAnalysisInfo représente un fichier passé dans le pipeline d'analyse
type RecentAnalysisInfo struct {
	ID        string `json:"id"`
	Path      string `json:"path"`
	Mime      string `json:"mime"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
}

// MonitoringStats agrège toutes les métriques pour l'UI
type MonitoringStats struct {
	// --- PIPELINE METRICS ---
	AnalysisSpeed     float64 `json:"analysis_speed"` // Mo/s (octets analysés)
	AnalysesCompleted uint64  `json:"analyses_completed"`
	AnalysesFailed    uint64  `json:"analyses_failed"`

	// --- SESSION METRICS ---
	SessionsStarted  uint64 `json:"sessions_started"`
	UploadsCompleted uint64 `json:"uploads_completed"`
	UploadsFailed    uint64 `json:"uploads_failed"`
	PendingUploads   int64  `json:"pending_uploads"`

	// --- SYSTEM METRICS ---
	ProcessCPUPercent float64              `json:"process_cpu_percent"`
	ProcessRAMPercent float32              `json:"process_ram_percent"`
	AllocMemMb        uint64               `json:"alloc_mem_mb"`
	NumGC             uint32               `json:"num_gc"`
	RecentAnalyses    []RecentAnalysisInfo `json:"recent_analyses"`
}

// MonitoringManager gère la télémétrie en temps réel
type MonitoringManager struct {
	log         *slog.Logger
	self        *process.Process
	mu          sync.RWMutex
	latestStats MonitoringStats

	// Compteurs atomiques (débits en bytes, cumuls)
	AnalysisBytes     uint64
	AnalysesCompleted uint64
	AnalysesFailed    uint64
	SessionsStarted   uint64
	UploadsCompleted  uint64
	UploadsFailed     uint64
	PendingUploads    int64
	LastCheck         time.Time
}

func NewMonitoringManager(log *slog.Logger) *MonitoringManager {
	self, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Process metrics unavailable", "err", err)
		self = nil
	}
	return &MonitoringManager{
		log:       log,
		self:      self,
		LastCheck: time.Now(),
		latestStats: MonitoringStats{
			RecentAnalyses: make([]RecentAnalysisInfo, 0),
		},
	}
}

func (mm *MonitoringManager) IncrAnalysesCompleted() {
	atomic.AddUint64(&mm.AnalysesCompleted, 1)
}

func (mm *MonitoringManager) IncrAnalysesFailed() {
	atomic.AddUint64(&mm.AnalysesFailed, 1)
}

func (mm *MonitoringManager) IncrSessionsStarted() {
	atomic.AddUint64(&mm.SessionsStarted, 1)
}

func (mm *MonitoringManager) IncrUploadsCompleted() {
	atomic.AddUint64(&mm.UploadsCompleted, 1)
}

func (mm *MonitoringManager) IncrUploadsFailed() {
	atomic.AddUint64(&mm.UploadsFailed, 1)
}

// IncrAnalysisBytes ajoute des bytes consommés par le pipeline d'analyse
func (mm *MonitoringManager) IncrAnalysisBytes(n uint64) {
	atomic.AddUint64(&mm.AnalysisBytes, n)
}

func (mm *MonitoringManager) UploadStarted() {
	atomic.AddInt64(&mm.PendingUploads, 1)
}

func (mm *MonitoringManager) UploadFinished() {
	atomic.AddInt64(&mm.PendingUploads, -1)
}

// AddAnalysis ajoute une analyse récente à la liste (thread-safe)
func (mm *MonitoringManager) AddAnalysis(id, path, mime, category string) {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	info := RecentAnalysisInfo{
		ID:        id,
		Path:      path,
		Mime:      mime,
		Category:  category,
		Timestamp: time.Now().Format("15:04:05"),
	}

	// Ajouter au début de la liste
	mm.latestStats.RecentAnalyses = append([]RecentAnalysisInfo{info}, mm.latestStats.RecentAnalyses...)

	// Garder seulement les 20 dernières
	if len(mm.latestStats.RecentAnalyses) > 20 {
		mm.latestStats.RecentAnalyses = mm.latestStats.RecentAnalyses[:20]
	}
}

// Listen recalcule les métriques chaque seconde jusqu'à l'annulation du contexte
func (mm *MonitoringManager) Listen(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mm.log.Info("🛑 Monitoring manager arrêté")
			return
		case <-ticker.C:
			mm.updateStats()
		}
	}
}

func (mm *MonitoringManager) updateStats() {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	now := time.Now()
	duration := now.Sub(mm.LastCheck).Seconds()

	if duration > 0 {
		// Lire et réinitialiser le compteur de bytes
		aBytes := atomic.SwapUint64(&mm.AnalysisBytes, 0)
		mm.latestStats.AnalysisSpeed = (float64(aBytes) / 1024 / 1024) / duration
	}
	mm.LastCheck = now

	// Charger les compteurs cumulés
	mm.latestStats.AnalysesCompleted = atomic.LoadUint64(&mm.AnalysesCompleted)
	mm.latestStats.AnalysesFailed = atomic.LoadUint64(&mm.AnalysesFailed)
	mm.latestStats.SessionsStarted = atomic.LoadUint64(&mm.SessionsStarted)
	mm.latestStats.UploadsCompleted = atomic.LoadUint64(&mm.UploadsCompleted)
	mm.latestStats.UploadsFailed = atomic.LoadUint64(&mm.UploadsFailed)
	mm.latestStats.PendingUploads = atomic.LoadInt64(&mm.PendingUploads)

	// Métriques système Go
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	mm.latestStats.AllocMemMb = m.Alloc / 1024 / 1024
	mm.latestStats.NumGC = m.NumGC

	// Métriques du processus lui-même
	if mm.self != nil {
		if cpu, err := mm.self.CPUPercent(); err == nil {
			mm.latestStats.ProcessCPUPercent = cpu
		} else {
			mm.log.Debug("Error while finding process cpu usage", "err", err)
		}
		if ram, err := mm.self.MemoryPercent(); err == nil {
			mm.latestStats.ProcessRAMPercent = ram
		} else {
			mm.log.Debug("Error while finding process ram usage", "err", err)
		}
	}

	mm.log.Debug("📊 Stats mises à jour",
		"analysis_speed", mm.latestStats.AnalysisSpeed,
		"analyses_completed", mm.latestStats.AnalysesCompleted,
		"pending_uploads", mm.latestStats.PendingUploads,
		"mem_mb", mm.latestStats.AllocMemMb,
	)
}

func (mm *MonitoringManager) GetLatest() MonitoringStats {
	mm.mu.RLock()
	defer mm.mu.RUnlock()
	return mm.latestStats
}

// StatsMap expose le snapshot courant sous la forme attendue par le
// serveur d'inspection.
func (mm *MonitoringManager) StatsMap() map[string]any {
	stats := mm.GetLatest()
	return map[string]any{
		"Analyses OK":    stats.AnalysesCompleted,
		"Analyses KO":    stats.AnalysesFailed,
		"Sessions":       stats.SessionsStarted,
		"Uploads OK":     stats.UploadsCompleted,
		"Uploads KO":     stats.UploadsFailed,
		"Uploads en vol": stats.PendingUploads,
		"Débit (Mo/s)":   fmt.Sprintf("%.2f", stats.AnalysisSpeed),
		"CPU (%)":        fmt.Sprintf("%.1f", stats.ProcessCPUPercent),
		"RAM (%)":        fmt.Sprintf("%.1f", stats.ProcessRAMPercent),
		"Heap (Mo)":      stats.AllocMemMb,
	}
}
