package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// SummaryQuery selects the composite summary from the download endpoint.
const SummaryQuery = "&type=summary"

// HTTPSource retrieves reports from the prediction server and structure
// annotations from the annotation server.
type HTTPSource struct {
	reportBase     string
	annotationBase string
	files          Files
	maxRetries     int
	httpClient     *http.Client
}

// HTTPOptions configures an HTTPSource.
type HTTPOptions struct {
	ReportBaseURL     string
	AnnotationBaseURL string
	Files             Files
	Timeout           time.Duration
	MaxRetries        int
}

// NewHTTPSource creates a new HTTP report source.
func NewHTTPSource(opts HTTPOptions) *HTTPSource {
	if opts.Files.Summary == "" {
		opts.Files.Summary = SummaryQuery
	}
	return &HTTPSource{
		reportBase:     opts.ReportBaseURL,
		annotationBase: opts.AnnotationBaseURL,
		files:          opts.Files,
		maxRetries:     opts.MaxRetries,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
	}
}

// ReportURL returns the download URL of one report for a result directory.
func (s *HTTPSource) ReportURL(id string, kind Kind) (string, error) {
	name, err := s.files.name(kind)
	if err != nil {
		return "", err
	}
	return s.reportBase + id + "/" + name, nil
}

// Fetch downloads one report.
func (s *HTTPSource) Fetch(ctx context.Context, id string, kind Kind) (string, error) {
	url, err := s.ReportURL(id, kind)
	if err != nil {
		return "", err
	}
	log.Info().Str("report", kind.String()).Str("url", url).Msg("Loading report")
	return s.get(ctx, url)
}

// Annotation downloads the annotation report of a reference structure.
func (s *HTTPSource) Annotation(ctx context.Context, key string) (string, error) {
	url := s.annotationBase + key
	log.Debug().Str("structure", key).Str("url", url).Msg("Loading annotation")
	return s.get(ctx, url)
}

func (s *HTTPSource) get(ctx context.Context, url string) (string, error) {
	var lastErr error
	attempts := s.maxRetries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt*2) * time.Second
			log.Warn().Int("attempt", attempt+1).Dur("backoff", backoff).Str("url", url).Msg("Retrying download")
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := s.doRequest(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		// Don't retry on context cancellation.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	if attempts > 1 {
		return "", fmt.Errorf("download failed after %d attempts: %w", attempts, lastErr)
	}
	return "", lastErr
}

func (s *HTTPSource) doRequest(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return string(body), nil
}
