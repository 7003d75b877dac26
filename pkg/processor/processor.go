// Package processor defines the output-processor boundary: a processor
// turns a parsed document tree into rendered bytes for one output format.
// Processors read the tree and the shared state, never mutate them, and
// reach sibling processors only through Shared.
package processor

import (
	"fmt"
	"sync"

	"github.com/intergrado-cg/doctora/pkg/adast"
)

// Processor renders a document for the formats it identifies with.
type Processor interface {
	// Identify reports whether this processor handles the given format.
	Identify(format string) bool

	// Process renders the document. The tree and shared state are
	// read-only; a processor that needs another format delegates
	// through shared.
	Process(doc *adast.Node, shared *Shared) ([]byte, error)
}

// Shared carries state common to all processors in one run: the original
// source (for span slicing) and the registry for sub-processor delegation.
type Shared struct {
	// Source is the parsed input.
	Source *adast.Source

	// Registry resolves sub-processors by format.
	Registry *Registry
}

// Registry holds registered processors.
type Registry struct {
	mu         sync.RWMutex
	processors []Processor
}

// NewRegistry creates an empty processor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a processor. Later registrations win when two processors
// identify with the same format.
func (r *Registry) Register(p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.processors = append([]Processor{p}, r.processors...)
}

// Lookup returns the first processor identifying with format.
func (r *Registry) Lookup(format string) (Processor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.processors {
		if p.Identify(format) {
			return p, true
		}
	}
	return nil, false
}

// Process renders doc with the processor registered for format.
func (r *Registry) Process(format string, doc *adast.Node, shared *Shared) ([]byte, error) {
	p, ok := r.Lookup(format)
	if !ok {
		return nil, fmt.Errorf("no processor registered for format %q", format)
	}
	return p.Process(doc, shared)
}

// DefaultRegistry returns a registry with the built-in processors.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(PlainText{})
	return r
}
