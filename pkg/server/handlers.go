package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/signupboard/pkg/buildinfo"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/pipeline"
	"github.com/matzehuels/signupboard/pkg/schedule"
	"github.com/matzehuels/signupboard/pkg/schedule/store"
	"github.com/matzehuels/signupboard/pkg/timeline"
)

// maxBody limits request bodies.
const maxBody = 4 << 20

var contentTypes = map[string]string{
	pipeline.FormatSVG:       "image/svg+xml",
	pipeline.FormatPNG:       "image/png",
	pipeline.FormatPDF:       "application/pdf",
	pipeline.FormatJSON:      "application/json",
	pipeline.FormatDOT:       "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatConflicts: "image/svg+xml",
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []store.Summary{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) getEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := s.runner.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) putEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID("event", id); err != nil {
		s.writeError(w, r, err)
		return
	}
	ev, err := schedule.Read(io.LimitReader(r.Body, maxBody), schedule.FormatJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ev.ID == "" {
		ev.ID = id
	}
	if ev.ID != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "event id %q does not match path %q", ev.ID, id))
		return
	}

	s.rosterMu.Lock()
	err = s.store.Put(r.Context(), ev)
	s.rosterMu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hub.publish(Notice{Type: NoticeEvent, EventID: id})
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) deleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID("event", id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.rosterMu.Lock()
	err := s.store.Delete(r.Context(), id)
	s.rosterMu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) board(w http.ResponseWriter, r *http.Request) {
	opts, err := s.boardOptions(chi.URLParam(r, "id"), r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Logger = s.logger

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	cache := "miss"
	if res.CacheInfo.RenderHit {
		cache = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cache)
	w.Header().Set("ETag", strconv.Quote(res.EventHash))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// boardOptions builds pipeline options from the server defaults and the
// query string.
func (s *Server) boardOptions(eventID string, r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.EventID = eventID
	q := r.URL.Query()

	format := strings.ToLower(q.Get("format"))
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, err
	}
	opts.Formats = []string{format}

	opts.Day = q.Get("day")
	opts.Highlight = q.Get("highlight")
	if days := q.Get("days"); days != "" {
		opts.Days = strings.Split(days, ",")
	}
	if v := q.Get("extension_hours"); v != "" {
		ext, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "extension_hours must be an integer: %q", v)
		}
		opts.ExtensionHours = &ext
	}
	if v := q.Get("refresh"); v != "" {
		refresh, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "refresh must be a boolean: %q", v)
		}
		opts.Refresh = refresh
	}
	return opts, nil
}

// LayoutRequest is the body of POST /v1/layout. Minutes are relative to
// midnight of the day.
type LayoutRequest struct {
	Window struct {
		Start          int `json:"start"`
		End            int `json:"end"`
		ExtensionHours int `json:"extension_hours"`
	} `json:"window"`
	Items []LayoutItem `json:"items"`
}

// LayoutItem is one game in a [LayoutRequest]. Active defaults to true.
type LayoutItem struct {
	ID       string `json:"id"`
	TableID  string `json:"table_id"`
	Start    *int   `json:"start"`
	Duration int    `json:"duration"`
	Active   *bool  `json:"active,omitempty"`
}

func (s *Server) layout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid layout request"))
		return
	}

	win, err := timeline.NewDayWindow(req.Window.Start, req.Window.End, req.Window.ExtensionHours)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]timeline.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = timeline.Item{
			ID:       it.ID,
			TableID:  it.TableID,
			Start:    it.Start,
			Duration: it.Duration,
			Active:   it.Active == nil || *it.Active,
		}
	}
	writeJSON(w, http.StatusOK, timeline.LayoutDay(win, items))
}

// RosterRequest is the body of the join and leave endpoints.
type RosterRequest struct {
	Player string `json:"player"`
}

func (s *Server) join(w http.ResponseWriter, r *http.Request) {
	s.updateRoster(w, r, NoticeJoin, (*schedule.Game).Join)
}

func (s *Server) leave(w http.ResponseWriter, r *http.Request) {
	s.updateRoster(w, r, NoticeLeave, (*schedule.Game).Leave)
}

func (s *Server) updateRoster(w http.ResponseWriter, r *http.Request, kind NoticeType, apply func(*schedule.Game, string) error) {
	eventID := chi.URLParam(r, "id")
	gameID := chi.URLParam(r, "game")
	if err := errors.ValidateID("event", eventID); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := errors.ValidateID("game", gameID); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req RosterRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid roster request"))
		return
	}

	var game schedule.Game
	s.rosterMu.Lock()
	_, err := store.Update(r.Context(), s.store, eventID, func(ev *schedule.Event) error {
		g, ok := ev.Game(gameID)
		if !ok {
			return errors.New(errors.ErrCodeGameNotFound, "game %q not found in event %s", gameID, eventID)
		}
		if err := apply(g, req.Player); err != nil {
			return err
		}
		game = *g
		return nil
	})
	s.rosterMu.Unlock()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Info("roster changed", "event", eventID, "game", gameID, "action", kind, "players", len(game.Players))
	s.hub.publish(Notice{Type: kind, EventID: eventID, GameID: gameID, Players: len(game.Players)})
	writeJSON(w, http.StatusOK, game)
}
