package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	pkgio "github.com/florent-lamiraux/hpp-model-urdf/pkg/io"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/render"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address
	detailed bool   // detailed labels in the served tree diagram
}

// newServeCmd creates the serve command, a small HTTP server exposing a
// built model document and its rendered joint tree.
func newServeCmd() *cobra.Command {
	opts := serveOpts{addr: ":8080"}

	cmd := &cobra.Command{
		Use:   "serve <model.json>",
		Short: "Serve a built model over HTTP",
		Long: `Serve a built model document over HTTP.

Endpoints:
  GET /healthz            liveness probe
  GET /api/model          the full model document
  GET /api/joints         joint list
  GET /api/joints/{name}  a single joint
  GET /tree.svg           rendered joint-tree diagram`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := pkgio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), doc, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show joint type, DOF count and mass in the tree diagram")

	return cmd
}

// modelServer serves one immutable model document. The SVG rendering is
// computed on first request and reused afterwards.
type modelServer struct {
	doc      *pkgio.Document
	detailed bool

	svgOnce sync.Once
	svg     []byte
	svgErr  error
}

// routes assembles the chi router for the server.
func (s *modelServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/model", s.handleModel)
	r.Get("/api/joints", s.handleJoints)
	r.Get("/api/joints/{name}", s.handleJoint)
	r.Get("/tree.svg", s.handleTreeSVG)

	return r
}

func (s *modelServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *modelServer) handleModel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.doc)
}

func (s *modelServer) handleJoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.doc.Joints)
}

func (s *modelServer) handleJoint(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, j := range s.doc.Joints {
		if j.Name == name {
			writeJSON(w, http.StatusOK, j)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown joint: " + name})
}

func (s *modelServer) handleTreeSVG(w http.ResponseWriter, r *http.Request) {
	s.svgOnce.Do(func() {
		dot := render.ToDOT(s.doc, render.Options{Detailed: s.detailed})
		s.svg, s.svgErr = render.RenderSVG(dot)
	})
	if s.svgErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": s.svgErr.Error()})
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(s.svg)
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// runServe starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func runServe(ctx context.Context, doc *pkgio.Document, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	server := &modelServer{doc: doc, detailed: opts.detailed}
	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           server.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Serving %s on %s", doc.Name, opts.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
