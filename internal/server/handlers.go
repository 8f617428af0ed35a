package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/ava/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/shutdown", s.handleShutdown)

	// Chat
	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/sessions/", s.routeSessions)

	// Reference data
	mux.HandleFunc("/api/instruments", s.handleInstruments)
}

// ChatRequest is the POST /api/chat payload. SessionID may be empty to
// start a new conversation.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse carries the reply and the session id to use on the next
// turn.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
}

// handleChat handles POST /api/chat.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteError(w, http.StatusBadRequest, "message is required")
		return
	}

	dispatcher, sessionID := s.sessions.acquire(req.SessionID)

	reply, err := dispatcher.Reply(r.Context(), req.Message)
	if err != nil {
		s.logger.Error().Str("session", sessionID).Err(err).Msg("Chat turn failed")
		WriteError(w, http.StatusBadGateway, "Reply could not be produced: "+err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, ChatResponse{SessionID: sessionID, Reply: reply})
}

// routeSessions dispatches /api/sessions/{id}/reset.
func (s *Server) routeSessions(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/reset") {
		if !RequireMethod(w, r, http.MethodPost) {
			return
		}
		id := PathParam(r, "/api/sessions/", "/reset")
		if id == "" {
			WriteError(w, http.StatusBadRequest, "session id is required in path")
			return
		}
		if !s.sessions.reset(id) {
			WriteError(w, http.StatusNotFound, "Unknown session")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "reset", "session_id": id})
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

// handleInstruments handles GET /api/instruments.
func (s *Server) handleInstruments(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.app.Config.Instruments)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":          s.app.Config.Environment,
		"confidence_threshold": s.app.Config.Chat.ConfidenceThreshold,
		"history_depth":        s.app.Config.Chat.HistoryDepth,
		"instrument_count":     len(s.app.Config.Instruments),
		"active_sessions":      s.sessions.count(),
		"uptime":               time.Since(s.app.StartupTime).String(),
	})
}

// handleShutdown handles POST /api/shutdown (dev mode only).
func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s.app.Config.IsProduction() {
		WriteError(w, http.StatusForbidden, "Shutdown endpoint disabled in production")
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		go func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		}()
	}
}
