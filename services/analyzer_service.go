//go:generate go run go.uber.org/mock/mockgen -source=analyzer_service.go -destination=../mocks/mock_analyzer_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"voice-lab/audio"
	"voice-lab/domain"
	"voice-lab/observability"
)

type IAnalyzerService interface {
	Analyze(ctx context.Context, path, declaredType string) (domain.AnalysisReport, error)
}

// AnalyzerService fronts the audio pipeline: it feeds the telemetry
// counters and keeps the recent-analysis board current. declaredType is
// the content type the caller claims for the file; the pipeline sniffs
// the real one, the claim is only recorded for telemetry.
type AnalyzerService struct {
	log      *slog.Logger
	pipeline *audio.Analyzer
	monitor  *observability.MonitoringManager
}

func NewAnalyzerService(
	log *slog.Logger,
	pipeline *audio.Analyzer,
	monitor *observability.MonitoringManager,
) *AnalyzerService {
	return &AnalyzerService{
		log:      log,
		pipeline: pipeline,
		monitor:  monitor,
	}
}

func (s *AnalyzerService) Analyze(ctx context.Context, path, declaredType string) (domain.AnalysisReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		s.monitor.IncrAnalysesFailed()
		return domain.AnalysisReport{}, fmt.Errorf("inspecting input file: %w", err)
	}
	s.monitor.IncrAnalysisBytes(uint64(info.Size()))

	report, err := s.pipeline.Analyze(ctx, path)
	if err != nil {
		s.monitor.IncrAnalysesFailed()
		return domain.AnalysisReport{}, err
	}

	s.monitor.IncrAnalysesCompleted()
	s.monitor.AddAnalysis(uuid.NewString(), path, declaredType, string(report.QualityCategory))
	s.log.Info("audio analyzed",
		"path", path,
		"pesq_score", report.PESQScore,
		"category", report.QualityCategory,
		"snr_db", report.SNRdB,
	)
	return *report, nil
}
