package openapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.yaml.in/yaml/v4"

	"github.com/reqcraft/rqc"
	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/internal/httputil"
	"github.com/reqcraft/rqc/parser"
	"github.com/reqcraft/rqc/rqcerrors"
)

// Format identifies the serialization format of an OpenAPI source.
type Format string

const (
	// FormatJSON indicates the source is JSON.
	FormatJSON Format = "json"
	// FormatYAML indicates the source is YAML.
	FormatYAML Format = "yaml"
	// FormatUnknown indicates the format could not be determined; parsing
	// tries JSON first and falls back to YAML.
	FormatUnknown Format = "unknown"
)

// FormatFromExtension maps a file extension (without dot) to a Format.
func FormatFromExtension(ext string) Format {
	switch ext {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// Adapter converts OpenAPI documents into ast.Document trees.
// The zero value is usable; New returns one with defaults applied.
type Adapter struct {
	// HTTPClient is the client used for fetching remote specifications.
	// If nil, a default client with a 30-second timeout is created.
	HTTPClient *http.Client
	// UserAgent is the User-Agent string used when fetching URLs.
	// Defaults to rqc.UserAgent() if not set.
	UserAgent string
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger parser.Logger
}

// New creates a new Adapter with default settings.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) log() parser.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return parser.NopLogger{}
}

func (a *Adapter) client() *http.Client {
	if a.HTTPClient != nil {
		return a.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (a *Adapter) userAgent() string {
	if a.UserAgent != "" {
		return a.UserAgent
	}
	return rqc.UserAgent()
}

// Parse deserializes OpenAPI content in the given format and converts it
// into an ast.Document.
func (a *Adapter) Parse(content []byte, format Format) (*ast.Document, error) {
	var spec openAPISpec

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(content, &spec); err != nil {
			return nil, &rqcerrors.ParseError{Message: "decoding OpenAPI JSON", Cause: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &spec); err != nil {
			return nil, &rqcerrors.ParseError{Message: "decoding OpenAPI YAML", Cause: err}
		}
	default:
		if jsonErr := json.Unmarshal(content, &spec); jsonErr != nil {
			if yamlErr := yaml.Unmarshal(content, &spec); yamlErr != nil {
				return nil, &rqcerrors.ParseError{
					Message: fmt.Sprintf("decoding OpenAPI (tried JSON: %v)", jsonErr),
					Cause:   yamlErr,
				}
			}
		}
	}

	doc := convertSpec(&spec)
	a.log().Debug("converted OpenAPI document",
		"paths", len(spec.Paths),
		"categories", len(doc.Categories))
	return doc, nil
}

// ParseFile reads an OpenAPI document from a local file, determining the
// format from the file extension.
func (a *Adapter) ParseFile(path string) (*ast.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &rqcerrors.ParseError{Path: path, Message: "reading OpenAPI document", Cause: err}
	}
	return a.Parse(content, FormatFromExtension(httputil.FormatFromPath(path)))
}

// Fetch retrieves an OpenAPI document from an http(s) URL. The format is
// determined from the Content-Type header, falling back to the URL suffix.
// Non-success responses return a *rqcerrors.FetchError.
func (a *Adapter) Fetch(url string) (*ast.Document, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, &rqcerrors.FetchError{URL: url, Cause: err}
	}
	req.Header.Set("User-Agent", a.userAgent())
	req.Header.Set("Accept", "application/json, application/yaml, text/yaml")

	resp, err := a.client().Do(req)
	if err != nil {
		return nil, &rqcerrors.FetchError{URL: url, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &rqcerrors.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &rqcerrors.FetchError{URL: url, Message: "reading response body", Cause: err}
	}

	format := FormatFromExtension(httputil.FormatFromContentType(resp.Header.Get("Content-Type")))
	if format == FormatUnknown {
		format = FormatFromExtension(httputil.FormatFromPath(url))
	}

	a.log().Debug("fetched OpenAPI document", "url", url, "format", string(format), "bytes", len(content))
	return a.Parse(content, format)
}
