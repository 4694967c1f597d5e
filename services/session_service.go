//go:generate go run go.uber.org/mock/mockgen -source=session_service.go -destination=../mocks/mock_session_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"voice-lab/domain"
	apperrors "voice-lab/errors"
	"voice-lab/observability"
	"voice-lab/repositories"
	"voice-lab/storage"
)

const defaultUploadWait = 30 * time.Second

type ISessionService interface {
	Start(request domain.StartSessionRequest) (domain.RecordingSession, error)
	Get(id uuid.UUID) (domain.RecordingSession, error)
	AnalyzeSession(ctx context.Context, id uuid.UUID, path, contentType string) (domain.AnalysisReport, error)
}

// SessionService owns the recording session lifecycle: opening sessions,
// fetching them, and enriching them with an analysis outcome plus the
// uploaded recording's location.
type SessionService struct {
	log        *slog.Logger
	repository repositories.ISessionRepository
	analyzer   IAnalyzerService
	store      storage.IRecordingStore
	monitor    *observability.MonitoringManager
	validate   *validator.Validate
	uploadWait time.Duration
}

// NewSessionService builds the service. A nil store disables recording
// uploads: sessions are still enriched with analysis results, only the
// location stays empty.
func NewSessionService(
	log *slog.Logger,
	repository repositories.ISessionRepository,
	analyzer IAnalyzerService,
	store storage.IRecordingStore,
	monitor *observability.MonitoringManager,
	uploadWait time.Duration,
) *SessionService {
	if uploadWait <= 0 {
		uploadWait = defaultUploadWait
	}
	return &SessionService{
		log:        log,
		repository: repository,
		analyzer:   analyzer,
		store:      store,
		monitor:    monitor,
		validate:   validator.New(),
		uploadWait: uploadWait,
	}
}

func (s *SessionService) Start(request domain.StartSessionRequest) (domain.RecordingSession, error) {
	// 1. Validate business rules before touching storage
	if err := s.validate.Struct(request); err != nil {
		return domain.RecordingSession{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidSessionRequest, err)
	}

	// 2. Persist with a fresh identifier
	now := time.Now().UTC()
	session := domain.RecordingSession{
		ID:                uuid.New(),
		DeviceName:        request.DeviceName,
		IPAddress:         request.IPAddress,
		AudioFormat:       request.AudioFormat,
		MicrophoneDetails: request.MicrophoneDetails,
		SpeakerDetails:    request.SpeakerDetails,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repository.Store(session); err != nil {
		return domain.RecordingSession{}, err // Will propagate ErrSessionExists on an id collision
	}

	s.monitor.IncrSessionsStarted()
	s.log.Info("recording session started",
		"recording_session_id", session.ID,
		"device_name", session.DeviceName,
	)
	return session, nil
}

func (s *SessionService) Get(id uuid.UUID) (domain.RecordingSession, error) {
	return s.repository.Get(id)
}

// AnalyzeSession analyzes the recording at path on behalf of an existing
// session. The upload to the recording store runs in the background while
// the analysis works on the same file; afterwards the session is updated
// with the analysis outcome, and with the upload location only when the
// upload finished in time. An upload failure never withholds the report.
func (s *SessionService) AnalyzeSession(ctx context.Context, id uuid.UUID, path, contentType string) (domain.AnalysisReport, error) {
	// 1. The session must exist before any expensive work starts
	session, err := s.repository.Get(id)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	// 2. Start the upload in the background. The goroutine gets its own
	// context: the upload may outlive this request if we give up waiting.
	var uploads <-chan uploadResult
	if s.store != nil {
		uploads = s.uploadInBackground(path, contentType)
	}

	// 3. Analyze while the bytes fly to the store
	report, err := s.analyzer.Analyze(ctx, path, contentType)
	if err != nil {
		return domain.AnalysisReport{}, err
	}

	// 4. Enrich the session. The report is kept even when the upload fails.
	session.AnalysisOutput = &report
	session.AnalysisScore = lo.ToPtr(report.PESQScore)
	if uploads != nil {
		select {
		case result := <-uploads:
			if result.err != nil {
				s.log.Error("Background upload failed", "recording_session_id", id, "error", result.err)
				s.monitor.IncrUploadsFailed()
			} else {
				session.S3Location = lo.ToPtr(result.location)
				s.monitor.IncrUploadsCompleted()
			}
		case <-time.After(s.uploadWait):
			s.log.Error("Gave up waiting for the background upload",
				"recording_session_id", id,
				"after", s.uploadWait,
			)
			s.monitor.IncrUploadsFailed()
		}
	}

	session.UpdatedAt = time.Now().UTC()
	if err := s.repository.Update(session); err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("saving analysis outcome: %w", err)
	}
	return report, nil
}

type uploadResult struct {
	location string
	err      error
}

func (s *SessionService) uploadInBackground(path, contentType string) <-chan uploadResult {
	results := make(chan uploadResult, 1)
	s.monitor.UploadStarted()
	go func() {
		defer s.monitor.UploadFinished()
		location, err := s.store.Upload(context.Background(), path, contentType)
		results <- uploadResult{location: location, err: err}
	}()
	return results
}
