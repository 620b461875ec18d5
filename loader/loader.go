// Package loader obtains raw OpenAPI document text from a locator string.
//
// A locator is classified as one of three kinds:
//
//   - URL: http:// or https:// locators are fetched over the network
//   - file: anything that does not look like inline document content is
//     resolved against the working directory and read from disk
//   - literal: inline JSON or YAML text, detected heuristically by the
//     presence of openapi/swagger markers
//
// There is no retry, caching, or timeout policy beyond the HTTP client's own:
// a transport failure is terminal and surfaces as a
// [forgeerrors.NetworkError]; the retry burden sits with the caller.
package loader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oasforge/oasforge"
	"github.com/oasforge/oasforge/forgeerrors"
)

// acceptHeader is sent on every URL fetch; servers commonly negotiate
// between JSON and YAML renditions of the same document.
const acceptHeader = "application/json, application/yaml, text/yaml"

// inlineMarkers identify locator strings that are themselves document
// content rather than a path to one.
var inlineMarkers = []string{`openapi:`, `"openapi":`, `swagger:`, `"swagger":`}

// SourceKind identifies how a locator was classified.
type SourceKind string

const (
	// SourceKindURL indicates the locator was fetched over HTTP(S)
	SourceKindURL SourceKind = "url"
	// SourceKindFile indicates the locator was read from the filesystem
	SourceKindFile SourceKind = "file"
	// SourceKindLiteral indicates the locator was inline document content
	SourceKindLiteral SourceKind = "literal"
)

// Source is the raw document text obtained from a locator, plus enough
// metadata for the decoder to pick a starting format.
type Source struct {
	// Locator is the original locator string
	Locator string
	// Kind records how the locator was classified
	Kind SourceKind
	// Content is the raw document text
	Content []byte
	// ContentType is an optional format hint: an HTTP Content-Type header
	// for URL sources, or a media type derived from the file extension
	ContentType string
	// LoadTime is the time taken to obtain the content
	LoadTime time.Duration
}

// Loader obtains raw document text from URL, file, or literal locators.
type Loader struct {
	// HTTPClient is the HTTP client used for URL locators.
	// If nil, a default client with a 30-second timeout is created.
	HTTPClient *http.Client
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to the oasforge build User-Agent if not set.
	UserAgent string
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger oasforge.Logger
}

// New creates a new Loader instance with default settings
func New() *Loader {
	return &Loader{
		UserAgent: oasforge.UserAgent(),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (l *Loader) log() oasforge.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return oasforge.NopLogger{}
}

// Load classifies the locator and returns the raw document text.
//
// An empty (or all-whitespace) locator fails with a ValidationError before
// any I/O is attempted. URL fetch failures surface as NetworkError; file
// read failures surface as ValidationError naming the resolved path.
func (l *Loader) Load(locator string) (*Source, error) {
	if strings.TrimSpace(locator) == "" {
		return nil, &forgeerrors.ValidationError{
			Op:      "load",
			Message: "locator must be a non-empty string",
		}
	}

	switch {
	case IsURL(locator):
		return l.loadURL(locator)
	case !LooksInline(locator):
		return l.loadFile(locator)
	default:
		l.log().Debug("locator classified as literal content", "bytes", len(locator))
		return &Source{
			Locator: locator,
			Kind:    SourceKindLiteral,
			Content: []byte(locator),
		}, nil
	}
}

// loadFile resolves the locator against the working directory (unless it is
// already absolute) and reads it from disk.
func (l *Loader) loadFile(locator string) (*Source, error) {
	path := locator
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, &forgeerrors.ValidationError{
				Op:      "load",
				Message: "failed to resolve working directory",
				Cause:   err,
			}
		}
		path = filepath.Join(cwd, path)
	}

	start := time.Now()
	data, err := os.ReadFile(path)
	loadTime := time.Since(start)
	if err != nil {
		return nil, &forgeerrors.ValidationError{
			Op:      "load",
			Message: fmt.Sprintf("failed to read file %s", path),
			Cause:   err,
		}
	}

	l.log().Debug("loaded document from file", "path", path, "bytes", len(data))
	return &Source{
		Locator:     locator,
		Kind:        SourceKindFile,
		Content:     data,
		ContentType: contentTypeFromPath(path),
		LoadTime:    loadTime,
	}, nil
}

// loadURL performs a single fetch of the locator. The fetch is synchronous
// from the caller's perspective and is never retried.
func (l *Loader) loadURL(locator string) (*Source, error) {
	client := l.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequest(http.MethodGet, locator, nil)
	if err != nil {
		return nil, &forgeerrors.ValidationError{
			Op:      "load",
			Message: fmt.Sprintf("invalid URL locator %s", locator),
			Cause:   err,
		}
	}
	req.Header.Set("Accept", acceptHeader)

	userAgent := l.UserAgent
	if userAgent == "" {
		userAgent = oasforge.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, &forgeerrors.NetworkError{
			Locator: locator,
			Cause:   err,
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, &forgeerrors.NetworkError{
			Locator: locator,
			Message: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status),
		}
	}

	data, err := io.ReadAll(resp.Body)
	loadTime := time.Since(start)
	if err != nil {
		return nil, &forgeerrors.NetworkError{
			Locator: locator,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	l.log().Debug("loaded document from URL", "url", locator, "bytes", len(data))
	return &Source{
		Locator:     locator,
		Kind:        SourceKindURL,
		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
		LoadTime:    loadTime,
	}, nil
}

// IsURL determines if the given locator is a URL (http:// or https://)
func IsURL(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// LooksInline reports whether the locator string appears to be inline
// document content rather than a path. The heuristic looks for the version
// marker fields every Swagger/OpenAPI document carries.
func LooksInline(locator string) bool {
	for _, marker := range inlineMarkers {
		if strings.Contains(locator, marker) {
			return true
		}
	}
	return false
}

// contentTypeFromPath derives a media type hint from a file extension.
// Returns an empty string when the extension is not recognized.
func contentTypeFromPath(path string) string {
	switch filepath.Ext(path) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	default:
		return ""
	}
}
