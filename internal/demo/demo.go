// Package demo is an illustrative server showing tether cells in a
// form-editing flow: every websocket connection owns a draft cell
// tethered to a shared server-side defaults signal. Edits mutate the
// draft only; updating the defaults pushes through to every attached
// draft; a draft opened with keep-local-edits severs on the first edit
// until the client requests a reset.
//
// This package exists to exercise the library end to end. It is not a
// supported surface.
package demo

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tether-dev/tether/pkg/observe"
	"github.com/tether-dev/tether/pkg/reactive"
	"github.com/tether-dev/tether/pkg/tether"
)

// Profile is the form model shared between server defaults and
// per-connection drafts.
type Profile struct {
	Name     string `json:"name"`
	Theme    string `json:"theme"`
	Language string `json:"language"`
}

// Server hosts the demo endpoints.
type Server struct {
	defaults *reactive.Signal[Profile]
	metrics  *observe.Metrics
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// NewServer creates the demo server with seed defaults.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		defaults: reactive.NewSignal(Profile{
			Name:     "New User",
			Theme:    "light",
			Language: "en",
		}),
		metrics: observe.NewMetrics(),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Handler returns the demo's HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/ws", s.handleSocket)
	r.Get("/defaults", s.handleGetDefaults)
	r.Post("/defaults", s.handleSetDefaults)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}

func (s *Server) handleGetDefaults(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.defaults.Peek())
}

// handleSetDefaults updates the shared defaults signal. Every attached
// draft cell syncs synchronously before this handler returns.
func (s *Server) handleSetDefaults(w http.ResponseWriter, r *http.Request) {
	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		http.Error(w, "invalid profile", http.StatusBadRequest)
		return
	}
	s.defaults.Set(p)
	s.logger.Info("defaults updated", "profile", p)
	w.WriteHeader(http.StatusNoContent)
}

// clientMessage is what the browser sends over the socket.
type clientMessage struct {
	Type  string `json:"type"` // "set" or "reset"
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// draftState is what the server pushes after every draft change.
type draftState struct {
	Value    Profile `json:"value"`
	Watching bool    `json:"watching"`
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	keepLocal := r.URL.Query().Get("keep") == "1"

	// The draft cell and its watchers live exactly as long as this
	// connection.
	owner := reactive.NewOwner(nil)
	defer owner.Dispose()

	var draft *tether.Cell[Profile]
	reactive.WithOwner(owner, func() {
		opts := []tether.Option[Profile]{
			tether.WithName[Profile]("draft"),
			tether.WithObserver[Profile](s.metrics),
		}
		if keepLocal {
			opts = append(opts, tether.KeepLocalEdits[Profile]())
		}
		draft = tether.New[Profile](s.defaults, opts...)
	})

	// Draft changes can originate on this goroutine (edits below) or
	// on another (defaults updates), so pushes go through a channel
	// drained by a single writer.
	out := make(chan draftState, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			select {
			case st := <-out:
				if err := conn.WriteJSON(st); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	push := func() {
		st := draftState{Value: draft.Peek(), Watching: draft.Watching()}
		select {
		case out <- st:
		default:
			// Slow client; drop intermediate states.
		}
	}

	push()
	watch := reactive.Watch(draft.Get, func(Profile, Profile) { push() })
	defer watch.Dispose()

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		switch msg.Type {
		case "set":
			field, value := msg.Field, msg.Value
			draft.Update(func(p Profile) Profile {
				switch field {
				case "name":
					p.Name = value
				case "theme":
					p.Theme = value
				case "language":
					p.Language = value
				}
				return p
			})
		case "reset":
			draft.Reset()
		default:
			s.logger.Warn("unknown message type", "type", msg.Type)
		}
	}
}
