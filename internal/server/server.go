package server

import (
	"context"
	"errors"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/lang"
	"github.com/maxbolgarin/logze/v2"
	"github.com/maxbolgarin/servex/v2"

	"github.com/masmgr/gitscrub/config"
	"github.com/masmgr/gitscrub/internal/git"
	"github.com/masmgr/gitscrub/internal/output"
)

// Opener creates an extractor for a repository directory.
type Opener func(repo string) git.HistoryExtractor

// Server serves repository history over HTTP.
type Server struct {
	cfg    config.Config
	open   Opener
	log    logze.Logger
	server *servex.Server

	mu         sync.Mutex
	extractors map[string]git.HistoryExtractor
	opened     []string // keys of extractors, oldest first
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates the API server. Routes are mounted under cfg.Server.BasePath.
func New(cfg config.Config, open Opener, log logze.Logger) (*Server, error) {
	log = log.With("component", "server")

	srv, err := servex.NewServer(
		servex.WithReadTimeout(cfg.Server.ReadTimeout()),
		servex.WithIdleTimeout(cfg.Server.IdleTimeout()),
		servex.WithLogger(log),
		servex.WithHealthEndpoint(),
		servex.WithCORSAllowOrigins(lang.CheckSlice(cfg.Server.CORSOrigins, []string{"*"})...),
	)
	if err != nil {
		return nil, errm.Wrap(err, "create server")
	}
	srv.WithBasePath(cfg.Server.BasePath)

	s := &Server{
		cfg:        cfg,
		open:       open,
		log:        log,
		server:     srv,
		extractors: make(map[string]git.HistoryExtractor),
	}

	srv.HandleFunc("/commits", s.handleCommits, http.MethodGet)
	srv.HandleFunc("/tree", s.handleTree, http.MethodGet)
	srv.HandleFunc("/file", s.handleFile, http.MethodGet)
	srv.HandleFunc("/diff", s.handleDiff, http.MethodGet)
	srv.HandleFunc("/stats", s.handleStats, http.MethodGet)

	return s, nil
}

// Start starts listening in the background.
func (s *Server) Start(_ context.Context) error {
	addr := s.cfg.Server.Address()
	if err := s.server.StartHTTP(addr); err != nil {
		return errm.Wrap(err, "start http server", "address", addr)
	}
	s.log.Info("api listening", "address", addr, "base_path", s.cfg.Server.BasePath)
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the router serving every registered route.
func (s *Server) Handler() http.Handler {
	return s.server.Router()
}

// extractor returns the extractor of the requested repository, creating it on first use
// so the path prefix of each repository is resolved once. At most
// cfg.Server.MaxRepositories extractors are kept; the oldest one is dropped first.
func (s *Server) extractor(r *http.Request) (git.HistoryExtractor, string) {
	repo := lang.Check(r.URL.Query().Get("repo"), s.cfg.Repository.DefaultPath)
	key := repoKey(repo)

	s.mu.Lock()
	defer s.mu.Unlock()
	if ex, ok := s.extractors[key]; ok {
		return ex, repo
	}

	if limit := s.cfg.Server.MaxRepositories; limit > 0 && len(s.opened) >= limit {
		delete(s.extractors, s.opened[0])
		s.opened = s.opened[1:]
	}
	ex := s.open(key)
	s.extractors[key] = ex
	s.opened = append(s.opened, key)
	return ex, repo
}

// repoKey normalizes a repository path so spellings of one directory share an extractor.
func repoKey(repo string) string {
	abs, err := filepath.Abs(repo)
	if err != nil {
		return filepath.Clean(repo)
	}
	return abs
}

func (s *Server) handleCommits(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	ex, repo := s.extractor(r)

	if err := ex.Validate(r.Context()); err != nil {
		if errors.Is(err, git.ErrNotARepository) {
			s.fail(ctx, http.StatusBadRequest, err)
			return
		}
		s.fail(ctx, http.StatusInternalServerError, err)
		return
	}

	commits, err := ex.ListCommits(r.Context())
	if err != nil {
		s.fail(ctx, http.StatusInternalServerError, err)
		return
	}
	if commits == nil {
		commits = []git.Commit{}
	}

	ctx.JSON(output.CommitsResponse{
		Commits:    commits,
		PathPrefix: ex.Prefix(),
		Repository: repo,
	})
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	commit, ok := s.require(ctx, "commit")
	if !ok {
		return
	}
	ex, _ := s.extractor(r)

	tree, err := ex.BuildTree(r.Context(), commit)
	if err != nil {
		s.fail(ctx, statusOf(err), err)
		return
	}
	ctx.JSON(output.TreeResponse{Tree: tree, Commit: commit})
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	commit, ok := s.require(ctx, "commit")
	if !ok {
		return
	}
	path, ok := s.require(ctx, "path")
	if !ok {
		return
	}
	ex, _ := s.extractor(r)

	content, err := ex.Content(r.Context(), commit, path)
	if err != nil {
		s.fail(ctx, statusOf(err), err)
		return
	}
	ctx.JSON(output.ContentResponse{Content: content, Commit: commit, Path: path})
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	from, ok := s.require(ctx, "from")
	if !ok {
		return
	}
	to, ok := s.require(ctx, "to")
	if !ok {
		return
	}
	path := ctx.Query("path")
	ex, _ := s.extractor(r)

	diff, err := ex.Diff(r.Context(), from, to, path)
	if err != nil {
		s.fail(ctx, statusOf(err), err)
		return
	}
	ctx.JSON(output.DiffResponse{Diff: diff, From: from, To: to, Path: path})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := servex.NewContext(w, r)
	commit, ok := s.require(ctx, "commit")
	if !ok {
		return
	}
	ex, _ := s.extractor(r)

	summary, err := ex.Stats(r.Context(), commit)
	if err != nil {
		s.fail(ctx, statusOf(err), err)
		return
	}
	ctx.JSON(summary)
}

// require reads a mandatory query parameter, answering 400 when it is empty.
func (s *Server) require(ctx *servex.Context, name string) (string, bool) {
	v := ctx.Query(name)
	if v == "" {
		s.fail(ctx, http.StatusBadRequest, errMissingParameter(name))
		return "", false
	}
	return v, true
}

func (s *Server) fail(ctx *servex.Context, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.log.Err(err, "request failed")
	} else {
		s.log.Debug("request rejected", "code", code, "error", err.Error())
	}
	ctx.Response(code, errorResponse{Error: err.Error()})
}

func errMissingParameter(name string) error {
	return errm.New("missing required parameter", "param", name)
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, git.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, git.ErrNotARepository), errors.Is(err, git.ErrInvalidRevision):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
