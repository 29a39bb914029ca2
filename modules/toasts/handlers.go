package toasts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/toastkit/pkg/logger"
	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// ShowRequest is the body of POST /. Either Message or Key is set.
// Broadcast sends the toast to every queue on the relay instead of
// showing it on this one only.
type ShowRequest struct {
	Message    string `json:"message"`
	Category   string `json:"category"`
	Persistent bool   `json:"persistent"`
	Key        string `json:"key"`
	Args       []any  `json:"args"`
	Broadcast  bool   `json:"broadcast"`
}

// ShowResult is the data of a POST / response.
type ShowResult struct {
	ID         int  `json:"id"`
	Suppressed bool `json:"suppressed,omitempty"`
	Announced  bool `json:"announced,omitempty"`
}

func (m *module) list(w http.ResponseWriter, r *http.Request) {
	items := m.queue.Notifications()
	if items == nil {
		items = []toast.Notification{}
	}
	m.json(r.Context(), w, http.StatusOK, Response{Data: items})
}

func (m *module) create(w http.ResponseWriter, r *http.Request) {
	var req ShowRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		m.fail(r.Context(), w, errors.Join(ErrInvalidBody, err))
		return
	}

	if req.Broadcast {
		if err := m.announce(r.Context(), req); err != nil {
			m.fail(r.Context(), w, err)
			return
		}
		m.json(r.Context(), w, http.StatusAccepted, Response{Data: ShowResult{Announced: true}})
		return
	}

	id, err := m.show(req)
	if err != nil {
		m.fail(r.Context(), w, err)
		return
	}

	if id == 0 {
		m.json(r.Context(), w, http.StatusOK, Response{Data: ShowResult{Suppressed: true}})
		return
	}
	m.log.LogAttrs(r.Context(), slog.LevelDebug, "toast created", logger.NotificationID(id))
	m.json(r.Context(), w, http.StatusCreated, Response{Data: ShowResult{ID: id}})
}

func (m *module) show(req ShowRequest) (int, error) {
	if req.Key == "" {
		return m.queue.Show(req.Message, toast.Category(req.Category), toast.PersistentIf(req.Persistent))
	}
	if err := m.checkKeyed(req); err != nil {
		return 0, err
	}
	return m.cfg.catalog.Show(m.queue, req.Key, req.Args...)
}

func (m *module) announce(ctx context.Context, req ShowRequest) error {
	if m.cfg.relay == nil {
		return ErrNoRelay
	}
	if req.Key == "" {
		return m.cfg.relay.Announce(ctx, req.Message, toast.Category(req.Category), toast.PersistentIf(req.Persistent))
	}
	if err := m.checkKeyed(req); err != nil {
		return err
	}
	msg, e, err := m.cfg.catalog.Format(req.Key, req.Args...)
	if err != nil {
		return err
	}
	return m.cfg.relay.Announce(ctx, msg, e.Category, toast.PersistentIf(e.Persistent))
}

func (m *module) checkKeyed(req ShowRequest) error {
	if req.Message != "" || req.Category != "" {
		return fmt.Errorf("%w: key cannot be combined with message or category", ErrInvalidBody)
	}
	if m.cfg.catalog == nil {
		return ErrNoCatalog
	}
	return nil
}

func (m *module) remove(w http.ResponseWriter, r *http.Request) {
	id, err := notificationID(r)
	if err != nil {
		m.fail(r.Context(), w, err)
		return
	}
	m.queue.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (m *module) hoverStart(w http.ResponseWriter, r *http.Request) {
	m.hover(w, r, true)
}

func (m *module) hoverEnd(w http.ResponseWriter, r *http.Request) {
	m.hover(w, r, false)
}

func (m *module) hover(w http.ResponseWriter, r *http.Request, hovered bool) {
	id, err := notificationID(r)
	if err != nil {
		m.fail(r.Context(), w, err)
		return
	}
	m.queue.NotifyHover(id, hovered)
	w.WriteHeader(http.StatusNoContent)
}

func notificationID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
