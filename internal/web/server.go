package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"protein-annotator/internal/builder"
	"protein-annotator/internal/protein"
	"protein-annotator/internal/source"

	"github.com/rs/zerolog/log"
)

// ProteinBuilder builds the annotation object for one result directory.
type ProteinBuilder interface {
	Build(ctx context.Context, id string) (*protein.Protein, error)
}

// NewHandler returns the API handler:
//
//	GET /api/protein?dir=<result directory>
func NewHandler(b ProteinBuilder) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/protein", func(w http.ResponseWriter, r *http.Request) {
		handleProtein(w, r, b)
	})
	return mux
}

// StartServer serves the API on addr until ctx is cancelled.
func StartServer(ctx context.Context, addr string, b ProteinBuilder) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHandler(b),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("Serving protein annotations")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func handleProtein(w http.ResponseWriter, r *http.Request, b ProteinBuilder) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	dir := r.URL.Query().Get("dir")
	p, err := b.Build(r.Context(), dir)
	if err != nil {
		status := statusFor(err)
		log.Error().Err(err).Str("dir", dir).Int("status", status).Msg("Build failed")
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Encode protein")
	}
}

func statusFor(err error) int {
	var re *builder.RetrievalError
	switch {
	case errors.Is(err, builder.ErrMissingInput), errors.Is(err, source.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, builder.ErrEmptySequence):
		return http.StatusUnprocessableEntity
	case errors.As(err, &re):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
