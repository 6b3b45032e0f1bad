package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/internal/service"
	"github.com/limbo/breakfree/pkg/entity"
	"github.com/limbo/breakfree/pkg/httputil"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LogEntryRequest struct {
	Type        string `json:"type"`
	Mood        string `json:"mood"`
	DurationSec int    `json:"duration_sec"`
}

type AmountRequest struct {
	Amount float64 `json:"amount"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type GetEntriesResponse struct {
	UserID  string          `json:"uid"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
	Entries []*entity.Entry `json:"entries"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Register(ctx, &service.RegisterRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			logger.Error("registering error: existed user")
			httputil.WriteErrorResponse(w, http.StatusConflict, "user with such email already exists", nil)
			return
		}
		logger.Error("registering error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"uid": user.ID.String(),
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	user, err := s.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("login error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user with such email doesn't exist", nil)
			return
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "invalid email or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"uid":   user.ID.String(),
		"token": token,
	})
	logger.Info("successful login")
}

// LogEntry accepts either a JSON body or, when a voice note rides
// along, multipart/form-data with the recording in the "voice" part.
func (s *Server) LogEntry(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("log entry error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	req := service.LogIncidentRequest{}
	defer r.Body.Close()
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		// 16 MiB is plenty for a short m4a recording
		if err = r.ParseMultipartForm(16 << 20); err != nil {
			logger.Error("log entry error: invalid multipart body")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		req.Type = entity.EntryType(r.FormValue("type"))
		req.Mood = entity.Mood(r.FormValue("mood"))
		if durStr := r.FormValue("duration_sec"); durStr != "" {
			req.DurationSec, _ = strconv.Atoi(durStr)
		}
		file, _, err := r.FormFile("voice")
		if err == nil {
			defer file.Close()
			req.Voice = file
		}
	} else {
		var body LogEntryRequest
		if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&body); err != nil {
			logger.Error("log entry error: invalid request body")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
			return
		}
		req.Type = entity.EntryType(body.Type)
		req.Mood = entity.Mood(body.Mood)
		req.DurationSec = body.DurationSec
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()
	entry, err := s.ledgerService.LogIncident(ctx, uid, &req)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrBadEntryType), errors.Is(err, errorvalues.ErrBadMood), errors.Is(err, errorvalues.ErrBadDuration):
			logger.Error("log entry error: invalid entry payload")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid entry payload", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("log entry error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't log entry: user doesn't exists", nil)
		case errors.Is(err, errorvalues.ErrSlipConflict):
			logger.Error("log entry error: slip transaction conflict")
			httputil.WriteErrorResponse(w, http.StatusConflict, "couldn't update streak record, please retry", nil)
		default:
			logger.Error("log entry error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while logging entry", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, entry)
	logger.Info("entry logged", slog.String("entry_id", entry.EntryID), slog.String("type", string(entry.Type)))
}

func (s *Server) GetEntries(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get entries error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	voiceOnly := r.URL.Query().Get("voice") == "1"
	offset := (page - 1) * limit
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	entries, err := s.ledgerService.ListEntries(ctx, uid, service.PaginationOpts{
		Limit:  limit,
		Offset: offset,
	}, voiceOnly)
	if err != nil {
		logger.Error("getting entries list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting entries list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetEntriesResponse{
		UserID:  uid.String(),
		Page:    page,
		Limit:   limit,
		Entries: entries,
	})
	logger.Info("entries provided")
}

func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get summary error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	summary, err := s.ledgerService.Summary(ctx, uid)
	if errors.Is(err, errorvalues.ErrProfileNotFound) {
		// First authenticated use, bring the profile into existence and
		// read it back
		if err = s.ledgerService.EnsureProfile(ctx, uid); err == nil {
			summary, err = s.ledgerService.Summary(ctx, uid)
		}
	}
	if err != nil {
		logger.Error("getting summary error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting summary", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, summary)
	logger.Info("summary provided")
}

func (s *Server) SetCostPerWeek(w http.ResponseWriter, r *http.Request) {
	s.updateSpending(w, r, "cost per week", s.ledgerService.SetCostPerWeek)
}

func (s *Server) AddManualSpend(w http.ResponseWriter, r *http.Request) {
	s.updateSpending(w, r, "manual spend", s.ledgerService.AddManualSpend)
}

func (s *Server) updateSpending(w http.ResponseWriter, r *http.Request, what string, apply func(context.Context, uuid.UUID, float64) error) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("update " + what + " error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req AmountRequest
	defer r.Body.Close()
	if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("update " + what + " error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	if err = apply(ctx, uid, req.Amount); err != nil {
		if errors.Is(err, errorvalues.ErrProfileNotFound) {
			logger.Error("update " + what + " error: profile not found")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "profile doesn't exist", nil)
			return
		}
		logger.Error("update "+what+" error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating "+what, nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
	logger.Info(what + " updated")
}

// StreamProfile pushes live profile snapshots over SSE. The first
// event is the current state (null while no profile exists), every
// following event is a change.
func (s *Server) StreamProfile(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("stream profile error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		logger.Error("stream profile error: streaming unsupported")
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "streaming unsupported", nil)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	snapshots := make(chan *entity.Profile, 8)
	streamErrs := make(chan error, 1)
	unsubscribe := s.watcher.Subscribe(uid,
		func(p *entity.Profile) {
			select {
			case snapshots <- p:
			default:
				// Slow consumer, drop the stale snapshot: the next one
				// carries the full state anyway
			}
		},
		func(err error) {
			select {
			case streamErrs <- err:
			default:
			}
		},
	)
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			logger.Info("profile stream closed by client")
			return
		case err := <-streamErrs:
			logger.Error("profile stream broken", slog.String("error", err.Error()))
			fmt.Fprintf(w, "event: error\ndata: %q\n\n", "subscription lost")
			flusher.Flush()
			return
		case profile := <-snapshots:
			payload, err := sonic.ConfigDefault.Marshal(profile)
			if err != nil {
				logger.Error("profile stream marshalling error", slog.String("error", err.Error()))
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("password change error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ChangePasswordRequest
	defer r.Body.Close()
	if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("password change error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.ChangePassword(ctx, uid, &service.ChangePasswordRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrBadPassword):
			logger.Error("password change error: weak password")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "new password doesn't meet requirements", nil)
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("password change error: wrong old password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong password", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("password change error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("password change error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while changing password", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
	logger.Info("password changed")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("account deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req DeleteAccountRequest
	defer r.Body.Close()
	if err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("account deletion error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.userService.DeleteAccount(ctx, uid, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("account deletion error: wrong password")
			httputil.WriteErrorResponse(w, http.StatusForbidden, "wrong password", nil)
		case errors.Is(err, errorvalues.ErrUserNotFound):
			logger.Error("account deletion error: unexist user")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "user doesn't exist", nil)
		default:
			logger.Error("account deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting account", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
	logger.Info("account deleted")
}
