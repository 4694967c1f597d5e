package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"voice-lab/services"
	"voice-lab/storage"
)

// Server exposes the analysis pipeline and the recording session
// lifecycle over HTTP. A nil token manager disables the s3-token
// endpoints (local setups without an identity pool).
type Server struct {
	log            *slog.Logger
	analyzer       services.IAnalyzerService
	sessions       services.ISessionService
	tokens         *storage.TokenManager
	maxUploadBytes int64
}

func NewServer(
	log *slog.Logger,
	analyzer services.IAnalyzerService,
	sessions services.ISessionService,
	tokens *storage.TokenManager,
	maxUploadBytes int64,
) *Server {
	return &Server{
		log:            log,
		analyzer:       analyzer,
		sessions:       sessions,
		tokens:         tokens,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes registers every endpoint on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/v1/recording-session/start", s.handleStartSession)
	mux.HandleFunc("GET /api/v1/recording-session/{id}", s.handleGetSession)
	mux.HandleFunc("POST /api/v1/recording-session/{id}/analyze", s.handleAnalyzeSession)
	mux.HandleFunc("GET /api/v1/s3-token/status", s.handleTokenStatus)
	mux.HandleFunc("POST /api/v1/s3-token/refresh", s.handleTokenRefresh)
	mux.HandleFunc("POST /api/v1/s3-token/expire", s.handleTokenExpire)

	return mux
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Error("Response serialization failed", "error", err)
		http.Error(w, `{"detail":"internal serialization error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, code int, detail string) {
	s.writeJSON(w, code, map[string]string{"detail": detail})
}
