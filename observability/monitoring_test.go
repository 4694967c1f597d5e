package observability

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newTestManager() *MonitoringManager {
	return NewMonitoringManager(logs.GetLoggerFromLevel(slog.LevelDebug))
}

func TestMonitoringManager_CountersFlowIntoStats(t *testing.T) {
	req := require.New(t)
	mm := newTestManager()

	// Given: Activity on every counter
	mm.IncrAnalysesCompleted()
	mm.IncrAnalysesCompleted()
	mm.IncrAnalysesFailed()
	mm.IncrSessionsStarted()
	mm.IncrUploadsCompleted()
	mm.IncrUploadsFailed()
	mm.UploadStarted()

	// When: Recomputing the stats
	mm.updateStats()

	// Then: Every cumulated value shows up in the snapshot
	stats := mm.GetLatest()
	req.Equal(uint64(2), stats.AnalysesCompleted)
	req.Equal(uint64(1), stats.AnalysesFailed)
	req.Equal(uint64(1), stats.SessionsStarted)
	req.Equal(uint64(1), stats.UploadsCompleted)
	req.Equal(uint64(1), stats.UploadsFailed)
	req.Equal(int64(1), stats.PendingUploads)
}

func TestMonitoringManager_AnalysisSpeedFromByteCounter(t *testing.T) {
	req := require.New(t)
	mm := newTestManager()

	// Given: 2 MiB analyzed over roughly one second
	mm.IncrAnalysisBytes(2 * 1024 * 1024)
	mm.LastCheck = time.Now().Add(-1 * time.Second)

	// When: Recomputing the stats
	mm.updateStats()

	// Then: Speed lands near 2 Mo/s and the byte counter resets
	stats := mm.GetLatest()
	req.InDelta(2.0, stats.AnalysisSpeed, 0.5)
	req.Zero(atomic.LoadUint64(&mm.AnalysisBytes))
}

func TestMonitoringManager_PendingUploadsBalance(t *testing.T) {
	req := require.New(t)
	mm := newTestManager()

	mm.UploadStarted()
	mm.UploadStarted()
	mm.UploadFinished()
	mm.updateStats()

	req.Equal(int64(1), mm.GetLatest().PendingUploads)
}

func TestMonitoringManager_RecentAnalysesCappedAt20(t *testing.T) {
	req := require.New(t)
	mm := newTestManager()

	// Given: 25 analyses flowing through
	for i := 0; i < 25; i++ {
		mm.AddAnalysis(fmt.Sprintf("id-%d", i), "/tmp/in.wav", "audio/wav", "Good")
	}

	// Then: Only the 20 most recent remain, newest first
	stats := mm.GetLatest()
	req.Len(stats.RecentAnalyses, 20)
	req.Equal("id-24", stats.RecentAnalyses[0].ID)
	req.Equal("id-5", stats.RecentAnalyses[19].ID)
}

func TestMonitoringManager_SystemMetricsPopulated(t *testing.T) {
	req := require.New(t)
	mm := newTestManager()

	before := mm.LastCheck
	mm.updateStats()

	stats := mm.GetLatest()
	req.GreaterOrEqual(stats.ProcessCPUPercent, 0.0)
	req.GreaterOrEqual(stats.ProcessRAMPercent, float32(0))
	req.False(mm.LastCheck.Before(before))
}

func TestMonitoringManager_ConcurrentAccess(t *testing.T) {
	mm := newTestManager()

	// Counters, recent list and snapshots racing each other
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				mm.IncrAnalysesCompleted()
				mm.IncrAnalysisBytes(1024)
				mm.AddAnalysis(fmt.Sprintf("id-%d-%d", n, j), "/tmp/in.wav", "audio/wav", "Fair")
				_ = mm.GetLatest()
			}
		}(i)
	}
	wg.Wait()

	mm.updateStats()
	require.Equal(t, uint64(400), mm.GetLatest().AnalysesCompleted)
}
