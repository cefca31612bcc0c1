package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jwebster45206/castle-clerk/internal/analytics"
	"github.com/jwebster45206/castle-clerk/internal/config"
	"github.com/jwebster45206/castle-clerk/internal/geo"
	"github.com/jwebster45206/castle-clerk/internal/logger"
	"github.com/jwebster45206/castle-clerk/internal/storage"
	"github.com/jwebster45206/castle-clerk/pkg/chat"
	"github.com/jwebster45206/castle-clerk/pkg/game"
	"github.com/jwebster45206/castle-clerk/pkg/state"
)

// InputResult is the body returned for a submission.
type InputResult struct {
	chat.InputResponse
	Rule    string        `json:"rule,omitempty"`
	Summary *game.Summary `json:"summary,omitempty"`
}

// ExitResponse is returned when the player walks out through the exit
// door. Session is the fresh gate session they are sent back to.
type ExitResponse struct {
	Message string       `json:"message"`
	Session storage.View `json:"session"`
}

type SessionHandler struct {
	store     storage.Store
	snapshots storage.Snapshots // optional
	sink      analytics.Sink
	locator   geo.Locator // optional
	cfg       *config.Config
	log       *slog.Logger
}

func NewSessionHandler(cfg *config.Config, store storage.Store, snapshots storage.Snapshots, sink analytics.Sink, locator geo.Locator, log *slog.Logger) *SessionHandler {
	if sink == nil {
		sink = analytics.NopSink{}
	}
	return &SessionHandler{
		store:     store,
		snapshots: snapshots,
		sink:      sink,
		locator:   locator,
		cfg:       cfg,
		log:       log,
	}
}

// RegisterRoutes mounts the session api:
//
//	POST   /v1/sessions            start at the gate
//	GET    /v1/sessions/{id}       read a session
//	DELETE /v1/sessions/{id}       abandon a session
//	POST   /v1/sessions/{id}/input submit a line
//	POST   /v1/sessions/{id}/enter take the key into the antechamber
//	POST   /v1/sessions/{id}/exit  leave the antechamber for the gate
//	GET    /v1/sessions/{id}/ws    stream typewriter frames
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", h.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Delete("/", h.remove)
			r.Post("/input", h.input)
			r.Post("/enter", h.enter)
			r.Post("/exit", h.exit)
			r.Get("/ws", h.stream)
		})
	})
}

// open creates, starts and stores a live session for stage.
func (h *SessionHandler) open(stage state.Stage) *storage.Live {
	now := time.Now()
	s := state.NewSession(stage, now)
	rec := analytics.NewRecorder(h.sink, s.ID.String(), now)
	opts := game.Options{Tracker: rec, Passcode: h.cfg.Passcode}

	timing := storage.Timing{
		Tick:       h.cfg.Stage1Tick,
		HintPeriod: h.cfg.HintPeriod,
		NagPeriod:  h.cfg.NagPeriod,
	}
	var d game.Dispatcher
	if stage == state.StageAntechamber {
		d = game.NewAntechamber(s, opts)
		timing.Tick = h.cfg.Stage2Tick
	} else {
		d = game.NewGate(s, opts)
	}

	l := storage.NewLive(d, rec, timing)
	h.store.Put(l)
	l.Start()

	logger.WithSession(h.log, s.ID).Info("Session started", "stage", stage)
	return l
}

// persist mirrors the session to the snapshot store, if there is one.
func (h *SessionHandler) persist(ctx context.Context, l *storage.Live) {
	if h.snapshots == nil {
		return
	}
	if err := h.snapshots.Save(ctx, l.View().Snapshot); err != nil {
		logger.WithError(logger.WithSession(h.log, l.ID()), err).Warn("Failed to persist session")
	}
}

// live looks up the {id} session, writing the error response when absent.
func (h *SessionHandler) live(w http.ResponseWriter, r *http.Request) (*storage.Live, bool) {
	id, ok := sessionID(w, r, h.log)
	if !ok {
		return nil, false
	}
	l, err := h.store.Get(id)
	if err != nil {
		writeError(w, h.log, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return l, true
}

func (h *SessionHandler) create(w http.ResponseWriter, r *http.Request) {
	l := h.open(state.StageGate)
	writeJSON(w, h.log, http.StatusCreated, l.View())
}

func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r, h.log)
	if !ok {
		return
	}

	if l, err := h.store.Get(id); err == nil {
		writeJSON(w, h.log, http.StatusOK, l.View())
		return
	}

	if h.snapshots != nil {
		snap, err := h.snapshots.Load(r.Context(), id)
		if err != nil {
			h.log.Error("Failed to load session snapshot", "session_id", id, "error", err)
			writeError(w, h.log, http.StatusInternalServerError, "Failed to retrieve session")
			return
		}
		if snap != nil {
			writeJSON(w, h.log, http.StatusOK, storage.View{Snapshot: *snap})
			return
		}
	}
	writeError(w, h.log, http.StatusNotFound, "Session not found")
}

func (h *SessionHandler) remove(w http.ResponseWriter, r *http.Request) {
	l, ok := h.live(w, r)
	if !ok {
		return
	}
	h.persist(r.Context(), l)
	h.store.Delete(l.ID())
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) input(w http.ResponseWriter, r *http.Request) {
	l, ok := h.live(w, r)
	if !ok {
		return
	}

	var req chat.InputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, h.log, http.StatusBadRequest, err.Error())
		return
	}

	res, status := h.submit(r.Context(), l, req.Message)
	writeJSON(w, h.log, status, res)
}

// submit is shared by the input endpoint and the websocket stream.
func (h *SessionHandler) submit(ctx context.Context, l *storage.Live, message string) (InputResult, int) {
	log := logger.WithSession(h.log, l.ID())
	res := InputResult{InputResponse: chat.InputResponse{SessionID: l.ID()}}

	out, err := l.Submit(message)
	switch {
	case errors.Is(err, game.ErrBusy):
		// Dropped, the clerk is still talking.
		return res, http.StatusConflict
	case errors.Is(err, game.ErrEmptyInput):
		return res, http.StatusBadRequest
	case errors.Is(err, game.ErrGameOver):
		return res, http.StatusConflict
	case err != nil:
		logger.WithError(log, err).Error("Submit failed")
		return res, http.StatusInternalServerError
	}

	res.Accepted = true
	res.Lines = out.Lines
	res.Unlocked = out.Unlocked
	res.Won = out.Won
	res.Rule = out.Rule
	log.Debug("Input handled", "rule", out.Rule)

	if out.Won {
		lookupCtx, cancel := context.WithTimeout(ctx, h.cfg.GeoTimeout)
		sum, err := l.CompleteWin(lookupCtx, h.locator, log)
		cancel()
		if err != nil {
			logger.WithError(log, err).Error("Win sequence failed")
		} else {
			if h.cfg.ShareURL != "" {
				sum.ShareText += " " + h.cfg.ShareURL
			}
			res.Summary = &sum
			log.Info("Session won", "elapsed", sum.Elapsed)
		}
	}

	h.persist(ctx, l)
	return res, http.StatusOK
}

func (h *SessionHandler) enter(w http.ResponseWriter, r *http.Request) {
	l, ok := h.live(w, r)
	if !ok {
		return
	}

	next, err := l.Enter()
	switch {
	case errors.Is(err, game.ErrLocked):
		writeError(w, h.log, http.StatusConflict, "The key has not been offered yet")
		return
	case errors.Is(err, storage.ErrWrongStage):
		writeError(w, h.log, http.StatusConflict, "Already inside the antechamber")
		return
	case err != nil:
		writeError(w, h.log, http.StatusInternalServerError, "Failed to enter")
		return
	}

	h.persist(r.Context(), l)
	h.store.Delete(l.ID())

	nextLive := h.open(next)
	writeJSON(w, h.log, http.StatusCreated, nextLive.View())
}

func (h *SessionHandler) exit(w http.ResponseWriter, r *http.Request) {
	l, ok := h.live(w, r)
	if !ok {
		return
	}
	if l.View().Stage != state.StageAntechamber {
		writeError(w, h.log, http.StatusConflict, "There is no door out of the gate")
		return
	}

	h.persist(r.Context(), l)
	h.store.Delete(l.ID())

	gate := h.open(state.StageGate)
	writeJSON(w, h.log, http.StatusCreated, ExitResponse{
		Message: game.ExitLine(nil),
		Session: gate.View(),
	})
}
