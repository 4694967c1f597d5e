package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"voice-lab/domain"
	apperrors "voice-lab/errors"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	path, contentType, cleanup, err := s.stageUpload(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	report, err := s.analyzer.Analyze(r.Context(), path, contentType)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var request domain.StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	session, err := s.sessions.Start(request)
	switch {
	case errors.Is(err, apperrors.ErrInvalidSessionRequest):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrSessionExists):
		s.writeError(w, http.StatusConflict, err.Error())
	case err != nil:
		s.log.Error("Session start failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to start recording session")
	default:
		s.writeJSON(w, http.StatusOK, map[string]string{
			"recording_session_id": session.ID.String(),
		})
	}
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid recording session id")
		return
	}

	session, err := s.sessions.Get(id)
	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		s.log.Error("Session lookup failed", "recording_session_id", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load recording session")
	default:
		s.writeJSON(w, http.StatusOK, session)
	}
}

func (s *Server) handleAnalyzeSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid recording session id")
		return
	}

	path, contentType, cleanup, err := s.stageUpload(w, r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer cleanup()

	report, err := s.sessions.AnalyzeSession(r.Context(), id, path, contentType)
	if errors.Is(err, apperrors.ErrSessionNotFound) {
		s.writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTokenStatus(w http.ResponseWriter, _ *http.Request) {
	if s.tokens == nil {
		s.writeError(w, http.StatusServiceUnavailable, "recording uploads are disabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.tokens.Status())
}

func (s *Server) handleTokenRefresh(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil {
		s.writeError(w, http.StatusServiceUnavailable, "recording uploads are disabled")
		return
	}
	status, err := s.tokens.ForceRefresh(r.Context())
	if err != nil {
		s.log.Error("Token refresh failed", "error", err)
		s.writeError(w, http.StatusBadGateway, fmt.Sprintf("token refresh failed: %v", err))
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleTokenExpire(w http.ResponseWriter, _ *http.Request) {
	if s.tokens == nil {
		s.writeError(w, http.StatusServiceUnavailable, "recording uploads are disabled")
		return
	}
	s.writeJSON(w, http.StatusOK, s.tokens.ForceExpire())
}

// writeAnalysisError maps a pipeline failure onto its status code. Only
// an unsupported input format is the client's fault.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var formatErr *apperrors.UnsupportedFormatError
	if errors.As(err, &formatErr) {
		s.writeError(w, http.StatusUnsupportedMediaType, formatErr.Error())
		return
	}
	s.log.Error("Analysis failed", "error", err)
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

// stageUpload copies the multipart "file" field to a private temp file the
// pipeline can read, keeping the upload's extension. The returned cleanup
// always removes that staging file; the converter's own intermediates are
// not this handler's concern.
func (s *Server) stageUpload(w http.ResponseWriter, r *http.Request) (string, string, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		return "", "", nil, apperrors.ErrNoFileUploaded
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", "", nil, fmt.Errorf("staging upload: %w", err)
	}
	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", "", nil, fmt.Errorf("staging upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", "", nil, fmt.Errorf("staging upload: %w", err)
	}

	cleanup := func() {
		if err := os.Remove(tmp.Name()); err != nil {
			s.log.Warn("Staged upload removal failed", "path", tmp.Name(), "error", err)
		}
	}
	return tmp.Name(), header.Header.Get("Content-Type"), cleanup, nil
}
