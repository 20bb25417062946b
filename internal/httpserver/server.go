// apps/go-filter/internal/httpserver/server.go
//
// HTTP wiring for the candidate filter.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Filter endpoints: GET /filter (query string), POST /filter (JSON).
//   - History endpoint: GET /history, token-gated when a JWT secret is set.
//
// Notes:
//   - Every filter request is recorded in the history store; a failed save is
//     logged and does not fail the request.
//   - The word list is read from a words.Source so it can be reloaded while
//     serving.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-filter/internal/constraint"
	"github.com/robalobadob/wordle/apps/go-filter/internal/filter"
	"github.com/robalobadob/wordle/apps/go-filter/internal/store"
	"github.com/robalobadob/wordle/apps/go-filter/internal/words"
)

// Options tune a Server.
type Options struct {
	Length       int    // word length used to build constraint sets
	JWTSecret    string // empty disables the token check on /history
	HistoryLimit int    // max rows returned by /history
}

// Server bundles router, word source, and history store.
type Server struct {
	r     *chi.Mux
	words *words.Source
	store store.Store
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(src *words.Source, st store.Store, opts Options) *Server {
	if opts.Length <= 0 {
		opts.Length = constraint.DefaultLength
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 50
	}
	s := &Server{r: chi.NewRouter(), words: src, store: st, opts: opts}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(requestLogger)
	s.r.Use(jsonContentType)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-filter","endpoints":["/health","GET /filter","POST /filter","/history","/debug/words"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"words":  s.words.Len(),
			"length": s.opts.Length,
			"file":   s.words.Path(),
		})
	})

	s.r.Get("/filter", s.handleFilterQuery)
	s.r.Post("/filter", s.handleFilterJSON)
	s.r.With(s.requireAuth()).Get("/history", s.handleHistory)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request at debug level.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("requestId", chimw.GetReqID(r.Context())).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ FILTER -------------------------------------

// guessIn is a scored guess: marks use words.Score values (0 miss, 1 present, 2 hit).
type guessIn struct {
	Word  string `json:"word"`
	Marks []int  `json:"marks"`
}

// filterReq is the POST /filter payload.
type filterReq struct {
	Unused  string    `json:"unused"`
	Tries   []string  `json:"tries"`
	Guesses []guessIn `json:"guesses"`
	Limit   int       `json:"limit"`
}

// filterRes is returned by both /filter endpoints.
type filterRes struct {
	Count   int             `json:"count"`
	Words   []string        `json:"words"`
	Stages  []filter.Report `json:"stages"`
	Pattern string          `json:"pattern"`
}

// handleFilterQuery serves GET /filter?unused=..&try=..&try=..&limit=N.
func (s *Server) handleFilterQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = n
	}
	s.writeFilter(w, r, q.Get("unused"), q["try"], limit)
}

// handleFilterJSON serves POST /filter. Scored guesses are turned into
// feedback strings and grey letters before filtering.
func (s *Server) handleFilterJSON(w http.ResponseWriter, r *http.Request) {
	var req filterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.Limit < 0 {
		http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
		return
	}

	unused := req.Unused
	tries := append([]string(nil), req.Tries...)
	for _, g := range req.Guesses {
		if !constraint.ValidMarks(g.Marks) {
			http.Error(w, `{"error":"bad_marks"}`, http.StatusBadRequest)
			return
		}
	}
	for _, g := range req.Guesses {
		fb, grey := constraint.Encode(g.Word, g.Marks)
		tries = append(tries, fb)
		unused += grey
	}
	s.writeFilter(w, r, unused, tries, req.Limit)
}

func (s *Server) writeFilter(w http.ResponseWriter, r *http.Request, unused string, tries []string, limit int) {
	set := constraint.BuildLength(s.opts.Length, unused, tries...)
	matches, stages := filter.Trace(set, s.words.Words())

	log.Debug().Str("constraints", set.String()).Interface("stages", stages).Msg("filtered")

	q := &store.Query{Unused: unused, Feedback: tries, Matches: len(matches)}
	if err := s.store.Save(r.Context(), q); err != nil {
		log.Warn().Err(err).Msg("save query")
	}

	res := filterRes{Count: len(matches), Words: matches, Stages: stages, Pattern: set.Pattern()}
	if limit > 0 && limit < len(matches) {
		res.Words = matches[:limit]
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------ HISTORY ------------------------------------

// handleHistory returns the most recent queries, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := s.opts.HistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"bad_limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, s.opts.HistoryLimit)
	}

	rows, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Str("subject", Subject(r.Context())).Msg("load history")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}
