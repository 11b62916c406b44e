// Package appsource resolves the application whose schema is being
// documented. An application is anything that can hand over its schema
// document and say how many routes it serves.
//
// Two sources are supported: a process-level registry for embedders that
// construct their application in Go, looked up by name, and an OpenAPI 3.x
// document file referenced by path. The loader's only job is to produce a
// value satisfying App or fail with a named error.
package appsource

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"

	"apidocs/internal/snapshot"
)

// Error kinds surfaced by Load.
var (
	// ErrLoad means the locator could not be read or parsed as a schema source.
	ErrLoad = errors.New("application source not loadable")
	// ErrNotFound means the named application is not registered.
	ErrNotFound = errors.New("application not found")
	// ErrWrongType means a registered value does not satisfy App.
	ErrWrongType = errors.New("registered value is not an application")
)

// App is the narrow capability the generator needs from an application.
type App interface {
	// Schema returns the application's schema document.
	Schema() (snapshot.Document, error)
	// RouteCount reports how many routes the application declares.
	RouteCount() int
}

var (
	registryMu sync.RWMutex
	registry   = map[string]any{}
)

// Register makes an application available to Load under the given name.
// The value is type-checked at load time, not here, so that a wrong-typed
// registration surfaces as a distinct, reportable error.
func Register(name string, app any) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = app
}

// Unregister removes a registration; used by tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, name)
}

// Load resolves an application. A registered name takes precedence; otherwise
// the locator is loaded as an OpenAPI document file.
func Load(locator, name string) (App, error) {
	if name != "" {
		registryMu.RLock()
		value, ok := registry[name]
		registryMu.RUnlock()
		if ok {
			app, isApp := value.(App)
			if !isApp {
				return nil, fmt.Errorf("%w: %q is %T", ErrWrongType, name, value)
			}
			return app, nil
		}
		if locator == "" {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}
	}

	if locator == "" {
		return nil, fmt.Errorf("%w: no locator given", ErrLoad)
	}
	return loadFile(locator)
}

// loadFile reads an OpenAPI 3.x document from disk and wraps it as an App.
func loadFile(path string) (App, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, path, err)
	}

	loader := &openapi3.Loader{IsExternalRefsAllowed: true}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrLoad, path, err)
	}
	return &specFileApp{spec: spec}, nil
}

// specFileApp adapts a parsed OpenAPI document to the App capability.
type specFileApp struct {
	spec *openapi3.T
}

func (a *specFileApp) Schema() (snapshot.Document, error) {
	data, err := a.spec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	var doc snapshot.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode spec: %w", err)
	}
	return doc, nil
}

func (a *specFileApp) RouteCount() int {
	if a.spec.Paths == nil {
		return 0
	}
	return len(a.spec.Paths.Map())
}

// Static is a fixed App value, convenient for embedders and tests.
type Static struct {
	Doc    snapshot.Document
	Routes int
}

func (s Static) Schema() (snapshot.Document, error) { return s.Doc, nil }

func (s Static) RouteCount() int { return s.Routes }
