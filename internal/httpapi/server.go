package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/proximark/server/internal/attendance/service"
	"github.com/proximark/server/internal/attendance/store"
	"github.com/proximark/server/internal/attendance/types"
	"github.com/proximark/server/internal/auth"
)

type Dependencies struct {
	Logger         *log.Logger
	Addr           string
	Auth           *auth.Service
	SessionService *service.SessionService
	VerifyService  *service.VerifyService
	StatsService   *service.StatsService
}

type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	mux        *http.ServeMux
	auth       *auth.Service
	sessions   *service.SessionService
	verify     *service.VerifyService
	stats      *service.StatsService
}

func NewServer(d Dependencies) *Server {
	mux := http.NewServeMux()

	s := &Server{
		logger:   d.Logger,
		mux:      mux,
		auth:     d.Auth,
		sessions: d.SessionService,
		verify:   d.VerifyService,
		stats:    d.StatsService,
	}

	mux.HandleFunc("POST /v1/auth/login", s.handleLogin)

	mux.HandleFunc("POST /v1/sessions/start", s.withRole(store.RoleFaculty, s.handleStartSession))
	mux.HandleFunc("POST /v1/sessions/stop", s.withRole(store.RoleFaculty, s.handleStopSession))
	mux.HandleFunc("GET /v1/faculty/courses", s.withRole(store.RoleFaculty, s.handleFacultyCourses))
	mux.HandleFunc("GET /v1/courses/{course_id}/stats", s.withRole(store.RoleFaculty, s.handleCourseStats))

	mux.HandleFunc("POST /v1/attendance", s.withRole(store.RoleStudent, s.handleAttendance))
	mux.HandleFunc("POST /v1/face/register", s.withRole(store.RoleStudent, s.handleRegisterFace))
	mux.HandleFunc("GET /v1/student/courses", s.withRole(store.RoleStudent, s.handleStudentCourses))

	handler := loggingMiddleware(d.Logger, mux)

	s.httpServer = &http.Server{
		Addr:              d.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
			return
		}
		s.logger.Printf("login error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}

	writeJSON(w, http.StatusOK, types.LoginResponse{Token: token, Role: user.Role, Name: user.Name})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req types.StartSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	sess, err := s.sessions.Start(r.Context(), principalFrom(r).UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCourseID):
			writeError(w, http.StatusBadRequest, "invalid_course_id", err.Error())
		case errors.Is(err, service.ErrInvalidMode):
			writeError(w, http.StatusBadRequest, "invalid_mode", err.Error())
		case errors.Is(err, store.ErrCourseNotFound):
			writeError(w, http.StatusNotFound, "course_not_found", err.Error())
		case errors.Is(err, store.ErrSessionActive):
			writeError(w, http.StatusConflict, "session_active", err.Error())
		default:
			s.logger.Printf("start session error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleStopSession(w http.ResponseWriter, r *http.Request) {
	var req types.StopSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if err := s.sessions.Stop(r.Context(), req.SessionID); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSessionID):
			writeError(w, http.StatusBadRequest, "invalid_session_id", err.Error())
		case errors.Is(err, store.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "session_not_found", err.Error())
		default:
			s.logger.Printf("stop session error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleFacultyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.stats.FacultyCourses(r.Context(), principalFrom(r).UserID)
	if err != nil {
		s.logger.Printf("faculty courses error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleCourseStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.stats.CourseStats(r.Context(), r.PathValue("course_id"))
	if err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			writeError(w, http.StatusNotFound, "course_not_found", err.Error())
			return
		}
		s.logger.Printf("course stats error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	var req types.VerifyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	resp, err := s.verify.Apply(r.Context(), principalFrom(r).UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidSessionID):
			writeError(w, http.StatusBadRequest, "invalid_session_id", err.Error())
		case errors.Is(err, store.ErrStudentNotFound):
			writeError(w, http.StatusNotFound, "student_not_found", err.Error())
		default:
			s.logger.Printf("attendance error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterFace(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterFaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}

	if err := s.verify.RegisterFace(r.Context(), principalFrom(r).UserID, req.FaceDescriptor); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyDescriptor):
			writeError(w, http.StatusBadRequest, "empty_descriptor", err.Error())
		case errors.Is(err, store.ErrStudentNotFound):
			writeError(w, http.StatusNotFound, "student_not_found", err.Error())
		default:
			s.logger.Printf("register face error: %v", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleStudentCourses(w http.ResponseWriter, r *http.Request) {
	overview, err := s.stats.StudentOverview(r.Context(), principalFrom(r).UserID)
	if err != nil {
		if errors.Is(err, store.ErrStudentNotFound) {
			writeError(w, http.StatusNotFound, "student_not_found", err.Error())
			return
		}
		s.logger.Printf("student courses error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unexpected server error")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
