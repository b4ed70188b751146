package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wardwatch/internal/alerts"
	"wardwatch/internal/auth"
	"wardwatch/internal/config"
	"wardwatch/internal/export"
	"wardwatch/internal/model"
	"wardwatch/internal/vitals"
)

const sessionCookie = "wardwatch_session"

// Feed is what the presentation boundary needs from the vitals engine.
type Feed interface {
	Refresh() vitals.Snapshot
	Latest() []model.VitalReading
	ListBeds() []int
	Assign(bed int, staffName string)
	Reset()
	UpdateConfig(cfg *config.Config)
}

type Server struct {
	cfg      *config.Manager
	feed     Feed
	sessions *auth.Registry
	creds    []model.Credential
	alerts   *alerts.Store
	logger   *slog.Logger
	version  string
}

type statusResponse struct {
	Status     string `json:"status"`
	Time       string `json:"time"`
	Version    string `json:"version"`
	ConfigPath string `json:"config_path"`
	Simulator  bool   `json:"simulator"`
	Beds       int    `json:"beds"`
	Ingest     struct {
		REST  bool `json:"rest"`
		Kafka bool `json:"kafka"`
	} `json:"ingest"`
	API struct {
		Enabled bool   `json:"enabled"`
		Addr    string `json:"addr"`
	} `json:"api"`
}

func Start(ctx context.Context, cfg *config.Manager, feed Feed, sessions *auth.Registry, creds []model.Credential, alertsStore *alerts.Store, logger *slog.Logger, version string) *http.Server {
	if cfg == nil {
		return nil
	}
	current := cfg.Get().API
	if !current.Enabled {
		if logger != nil {
			logger.Info("api disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("api enabled", "addr", current.Addr)
	}
	server := &Server{
		cfg:      cfg,
		feed:     feed,
		sessions: sessions,
		creds:    creds,
		alerts:   alertsStore,
		logger:   logger,
		version:  version,
	}
	httpServer := &http.Server{Addr: current.Addr, Handler: server.routes()}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctxShutdown)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Error("api server error", "err", err)
			}
		}
	}()
	return httpServer
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/dashboard", s.handleDashboard)
	mux.HandleFunc("/assign", s.handleAssign)
	mux.HandleFunc("/export", s.handleExport)
	mux.HandleFunc("/alerts", s.handleAlerts)
	mux.HandleFunc("/admin/restart", s.handleRestart)
	return mux
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cfg := s.cfg.Get()
	resp := statusResponse{
		Status:     "ok",
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Version:    s.version,
		ConfigPath: s.cfg.Path(),
		Simulator:  cfg.Simulator.Enabled,
		Beds:       cfg.Simulator.Beds,
	}
	resp.Ingest.REST = cfg.Ingest.REST.Enabled
	resp.Ingest.Kafka = cfg.Ingest.Kafka.Enabled
	resp.API.Enabled = cfg.API.Enabled
	resp.API.Addr = cfg.API.Addr
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	cfg := s.cfg.Get()
	session, err := auth.Login(req.Email, req.Password, s.creds, cfg.Auth.RequiredDomain)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("login rejected", "email", strings.TrimSpace(req.Email), "reason", err)
		}
		status := http.StatusUnauthorized
		if !errors.Is(err, auth.ErrDomainRejected) && !errors.Is(err, auth.ErrInvalidCredentials) {
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, map[string]any{"error": err.Error()})
		return
	}
	token := s.sessions.Create(session)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	if s.logger != nil {
		s.logger.Info("login accepted", "email", session.Email)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"token":   token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := s.token(r); token != "" {
		s.sessions.Delete(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, map[string]any{"session": auth.Logout(model.Session{})})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session, ok := s.session(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
		return
	}
	snapshot := s.feed.Refresh()
	writeJSON(w, http.StatusOK, map[string]any{
		"session":  session,
		"snapshot": snapshot,
	})
}

func (s *Server) handleAssign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.session(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	var req model.BedAssignment
	if err := json.Unmarshal(body, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	req.StaffName = strings.TrimSpace(req.StaffName)
	if req.Bed < 1 || req.StaffName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "bed must be >= 1 and staff_name non-empty"})
		return
	}
	s.feed.Assign(req.Bed, req.StaffName)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.session(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
		return
	}
	readings := s.feed.Latest()
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(time.Now())+`"`)
	if err := export.WriteCSV(w, readings); err != nil && s.logger != nil {
		s.logger.Error("export write error", "err", err)
	}
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.session(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	var list []model.AlertEvent
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		ts, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		list = s.alerts.Since(ts)
	} else {
		list = s.alerts.List(limit)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"alerts": list,
		"count":  len(list),
	})
}

func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if _, ok := s.session(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "not authenticated"})
		return
	}
	if s.feed != nil {
		s.feed.Reset()
	}
	if s.alerts != nil {
		s.alerts.Clear()
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// token extracts the session token from the cookie or a bearer header.
func (s *Server) token(r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// session re-evaluates the guard on every request, so a logged-out token
// stops authorizing immediately.
func (s *Server) session(r *http.Request) (model.Session, bool) {
	token := s.token(r)
	if token == "" {
		return model.Session{}, false
	}
	session, ok := s.sessions.Get(token)
	if !ok || !session.Authenticated {
		return model.Session{}, false
	}
	return session, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
