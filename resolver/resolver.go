package resolver

import (
	"path/filepath"
	"strings"

	"github.com/reqcraft/rqc/ast"
	"github.com/reqcraft/rqc/internal/httputil"
	"github.com/reqcraft/rqc/openapi"
	"github.com/reqcraft/rqc/parser"
	"github.com/reqcraft/rqc/rqcerrors"
)

// ImportKind classifies what an import path pointed at.
type ImportKind string

const (
	// KindDocument is a local .rqc file.
	KindDocument ImportKind = "document"
	// KindOpenAPI is a local OpenAPI file (.json, .yaml, .yml).
	KindOpenAPI ImportKind = "openapi"
	// KindRemote is an http(s) URL serving an OpenAPI document.
	KindRemote ImportKind = "remote"
	// KindUnsupported is a path with an extension the resolver cannot load.
	KindUnsupported ImportKind = "unsupported"
)

// ImportStatus records how an individual import resolved.
type ImportStatus string

const (
	// StatusMerged means the import loaded and its content was merged.
	StatusMerged ImportStatus = "merged"
	// StatusSkipped means the import was ignored (unsupported extension
	// or already visited).
	StatusSkipped ImportStatus = "skipped"
	// StatusFailed means the import could not be loaded.
	StatusFailed ImportStatus = "failed"
)

// Outcome describes the result of resolving one import statement.
type Outcome struct {
	// Path is the import path as written in the source document.
	Path string
	// Kind classifies the import target.
	Kind ImportKind
	// Status records whether the import merged, was skipped, or failed.
	Status ImportStatus
	// Err holds the failure when Status is StatusFailed.
	Err error
}

// Resolver loads .rqc documents and resolves their import graphs.
// The zero value is usable; New returns one with defaults applied.
type Resolver struct {
	// Parser parses .rqc sources. If nil, a default parser is used.
	Parser *parser.Parser
	// OpenAPI converts imported OpenAPI documents. If nil, a default
	// adapter is used.
	OpenAPI *openapi.Adapter
	// Logger is the structured logger for resolution progress.
	// If nil, logging is disabled (default).
	Logger parser.Logger
}

// New creates a new Resolver with default settings.
func New() *Resolver {
	return &Resolver{}
}

func (r *Resolver) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

func (r *Resolver) parser() *parser.Parser {
	if r.Parser != nil {
		return r.Parser
	}
	return parser.New()
}

func (r *Resolver) adapter() *openapi.Adapter {
	if r.OpenAPI != nil {
		return r.OpenAPI
	}
	return openapi.New()
}

// Resolve parses the document at path and recursively resolves its imports,
// merging everything into one document. baseDir anchors import paths that do
// not start with "./" or "../"; relative prefixes resolve against the
// importing file's directory instead. Errors in the root document are fatal;
// failing imports are recorded in the returned outcomes and skipped.
func (r *Resolver) Resolve(path, baseDir string) (*ast.Document, []Outcome, error) {
	visited := map[string]bool{}
	outcomes := []Outcome{}

	doc, err := r.resolveFile(path, baseDir, visited, &outcomes)
	if err != nil {
		return nil, outcomes, err
	}

	r.log().Info("resolved document",
		"path", path,
		"imports", len(outcomes),
		"apis", len(doc.APIs),
		"categories", len(doc.Categories))
	return doc, outcomes, nil
}

// resolveFile parses one .rqc file and drains its imports. A file that was
// already visited yields an empty document so cycles terminate.
func (r *Resolver) resolveFile(path, baseDir string, visited map[string]bool, outcomes *[]Outcome) (*ast.Document, error) {
	canonical, err := filepath.Abs(path)
	if err != nil {
		canonical = path
	}
	if visited[canonical] {
		r.log().Debug("skipping already visited document", "path", path)
		return &ast.Document{APIs: []ast.ApiBlock{}}, nil
	}
	visited[canonical] = true

	doc, err := r.parser().ParseFile(path)
	if err != nil {
		return nil, err
	}

	imports := doc.Imports
	doc.Imports = nil

	for _, imp := range imports {
		r.resolveImport(doc, imp, path, baseDir, visited, outcomes)
	}
	return doc, nil
}

func (r *Resolver) resolveImport(target *ast.Document, imp, fromPath, baseDir string, visited map[string]bool, outcomes *[]Outcome) {
	if httputil.IsURL(imp) {
		src, err := r.adapter().Fetch(imp)
		if err != nil {
			r.log().Warn("skipping remote import", "url", imp, "error", err)
			*outcomes = append(*outcomes, Outcome{Path: imp, Kind: KindRemote, Status: StatusFailed, Err: err})
			return
		}
		Merge(target, src)
		*outcomes = append(*outcomes, Outcome{Path: imp, Kind: KindRemote, Status: StatusMerged})
		return
	}

	resolved := imp
	if !filepath.IsAbs(imp) {
		if strings.HasPrefix(imp, "./") || strings.HasPrefix(imp, "../") {
			resolved = filepath.Join(filepath.Dir(fromPath), imp)
		} else {
			resolved = filepath.Join(baseDir, imp)
		}
	}

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".rqc":
		canonical, err := filepath.Abs(resolved)
		if err != nil {
			canonical = resolved
		}
		if visited[canonical] {
			*outcomes = append(*outcomes, Outcome{Path: imp, Kind: KindDocument, Status: StatusSkipped})
			return
		}
		src, err := r.resolveFile(resolved, baseDir, visited, outcomes)
		if err != nil {
			r.log().Warn("skipping import", "path", imp, "error", err)
			*outcomes = append(*outcomes, Outcome{
				Path:   imp,
				Kind:   KindDocument,
				Status: StatusFailed,
				Err:    &rqcerrors.ImportError{Path: imp, Reason: "parse", Cause: err},
			})
			return
		}
		Merge(target, src)
		*outcomes = append(*outcomes, Outcome{Path: imp, Kind: KindDocument, Status: StatusMerged})
	case ".json", ".yaml", ".yml":
		src, err := r.adapter().ParseFile(resolved)
		if err != nil {
			r.log().Warn("skipping OpenAPI import", "path", imp, "error", err)
			*outcomes = append(*outcomes, Outcome{
				Path:   imp,
				Kind:   KindOpenAPI,
				Status: StatusFailed,
				Err:    &rqcerrors.ImportError{Path: imp, Reason: "parse", Cause: err},
			})
			return
		}
		Merge(target, src)
		*outcomes = append(*outcomes, Outcome{Path: imp, Kind: KindOpenAPI, Status: StatusMerged})
	default:
		r.log().Warn("skipping import with unsupported extension", "path", imp)
		*outcomes = append(*outcomes, Outcome{
			Path:   imp,
			Kind:   KindUnsupported,
			Status: StatusSkipped,
			Err:    &rqcerrors.ImportError{Path: imp, Reason: "unsupported-extension"},
		})
	}
}

// Merge folds src into target. The first document to declare a config wins;
// an existing config only gains base URLs when it has none of its own. All
// API, websocket, Socket.IO, SSE, and category lists are concatenated.
func Merge(target, src *ast.Document) {
	if src.Config != nil {
		if target.Config == nil {
			target.Config = src.Config
		} else if len(target.Config.BaseURLs) == 0 {
			target.Config.BaseURLs = src.Config.BaseURLs
		}
	}
	target.APIs = append(target.APIs, src.APIs...)
	target.WsAPIs = append(target.WsAPIs, src.WsAPIs...)
	target.SocketIOAPIs = append(target.SocketIOAPIs, src.SocketIOAPIs...)
	target.SseAPIs = append(target.SseAPIs, src.SseAPIs...)
	target.Categories = append(target.Categories, src.Categories...)
}
