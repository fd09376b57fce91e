package resource

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/florent-lamiraux/hpp-model-urdf/pkg/errors"
	"github.com/florent-lamiraux/hpp-model-urdf/pkg/observability"
)

// Retriever loads a resource identified by a URI-like string into memory.
type Retriever interface {
	// Get returns the raw content of the resource. It returns a
	// RESOURCE_NOT_FOUND error when the URI resolves to nothing and a
	// NETWORK_ERROR when a remote fetch fails.
	Get(ctx context.Context, uri string) ([]byte, error)
}

// Config controls URI resolution.
type Config struct {
	// PackageRoots are the directories searched when resolving
	// package:// URIs. The first root containing the path wins.
	PackageRoots []string

	// HTTPClient overrides the client used for http(s) URIs.
	// Defaults to a client with a 30 second timeout.
	HTTPClient *http.Client

	// Attempts is the number of tries for remote fetches (minimum 1,
	// default 3). Retries use exponential backoff starting at one second.
	Attempts int
}

// retriever is the default multi-scheme implementation.
type retriever struct {
	cfg Config
}

// NewRetriever creates a Retriever resolving file, package and http(s) URIs.
func NewRetriever(cfg Config) Retriever {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Attempts < 1 {
		cfg.Attempts = 3
	}
	return &retriever{cfg: cfg}
}

// Get resolves and loads the resource.
func (r *retriever) Get(ctx context.Context, uri string) ([]byte, error) {
	if err := errors.ValidateResourceURI(uri); err != nil {
		return nil, err
	}

	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return r.readFile(uri, uri)
	}

	switch scheme {
	case "file":
		return r.readFile(uri, rest)
	case "package":
		return r.readPackage(uri, rest)
	case "http", "https":
		return r.fetch(ctx, uri)
	}
	return nil, errors.New(errors.ErrCodeInvalidURI, "unsupported URI scheme in %q", uri)
}

func (r *retriever) readFile(uri, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeResourceNotFound, "no such file: %s", uri)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeResourceNotFound, err, "read %s", uri)
	}
	return data, nil
}

func (r *retriever) readPackage(uri, rest string) ([]byte, error) {
	pkg, sub, ok := strings.Cut(rest, "/")
	if !ok || sub == "" {
		return nil, errors.New(errors.ErrCodeInvalidURI, "package URI %q has no resource path", uri)
	}

	for _, root := range r.cfg.PackageRoots {
		path := filepath.Join(root, pkg, filepath.FromSlash(sub))
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeResourceNotFound, err, "read %s", uri)
		}
	}
	return nil, errors.New(errors.ErrCodeResourceNotFound,
		"resource %q not found under %d package root(s)", uri, len(r.cfg.PackageRoots))
}

func (r *retriever) fetch(ctx context.Context, uri string) ([]byte, error) {
	var data []byte
	start := time.Now()

	err := Retry(ctx, r.cfg.Attempts, time.Second, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidURI, err, "build request for %s", uri)
		}

		resp, err := r.cfg.HTTPClient.Do(req)
		if err != nil {
			return &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", uri)}
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return errors.New(errors.ErrCodeResourceNotFound, "fetch %s: %s", uri, resp.Status)
		case resp.StatusCode >= 500:
			return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "fetch %s: %s", uri, resp.Status)}
		case resp.StatusCode != http.StatusOK:
			return errors.New(errors.ErrCodeNetwork, "fetch %s: %s", uri, resp.Status)
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read body of %s", uri)}
		}
		return nil
	})

	host := uri
	if u := strings.TrimPrefix(strings.TrimPrefix(uri, "https://"), "http://"); u != uri {
		host, _, _ = strings.Cut(u, "/")
	}
	if err != nil {
		observability.Resource().OnFetchError(ctx, host, err)
		return nil, err
	}
	observability.Resource().OnFetch(ctx, host, len(data), time.Since(start))
	return data, nil
}

// Func adapts a function to the Retriever interface. Useful in tests.
type Func func(ctx context.Context, uri string) ([]byte, error)

// Get calls f.
func (f Func) Get(ctx context.Context, uri string) ([]byte, error) { return f(ctx, uri) }

// NewMemory returns a Retriever serving from a fixed uri -> content map.
// Lookups for unknown URIs report RESOURCE_NOT_FOUND.
func NewMemory(resources map[string][]byte) Retriever {
	return Func(func(_ context.Context, uri string) ([]byte, error) {
		if data, ok := resources[uri]; ok {
			return data, nil
		}
		return nil, errors.New(errors.ErrCodeResourceNotFound, "no such resource: %s", uri)
	})
}
