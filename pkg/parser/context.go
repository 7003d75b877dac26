package parser

import (
	"fmt"
	"strings"

	"github.com/intergrado-cg/doctora/pkg/adast"
	"github.com/intergrado-cg/doctora/pkg/diag"
)

// maxSubstitutionDepth caps recursive attribute substitution.
const maxSubstitutionDepth = 10

// conditionalKind identifies the directive that opened a conditional region.
type conditionalKind uint8

const (
	condIfdef conditionalKind = iota
	condIfndef
	condIfeval
)

// conditional is one entry on the conditional-directive stack.
type conditional struct {
	kind      conditionalKind
	attribute string
	// active is false inside a false branch: tokens are consumed but no
	// AST nodes are produced.
	active bool
	span   adast.Span
}

// openDelim is one entry on the open-delimited-block stack. The literal
// delimiter length distinguishes same-kind nesting: a nested block of the
// same kind must use a different length to be distinguishable from a close.
type openDelim struct {
	kind   adast.DelimitedKind
	length int
	span   adast.Span
}

// Context carries the cross-construct state that makes the grammar
// context-sensitive. It is created fresh per parse call and never shared,
// so independent parses are safe to run concurrently.
type Context struct {
	opts Options

	attributes adast.Attributes
	// unresolvable records names already reported as cyclic or over-deep.
	// Resolving such a name substitutes its literal form without reporting
	// the same root cause again.
	unresolvable map[string]bool
	conditionals []conditional
	delims       []openDelim
	sectionLevel int
	includeDepth int
}

// NewContext creates a parse context with the given options.
func NewContext(opts Options) *Context {
	return &Context{
		opts:         opts,
		attributes:   make(adast.Attributes),
		unresolvable: make(map[string]bool),
	}
}

// Options returns the configuration limits for this parse.
func (c *Context) Options() Options {
	return c.opts
}

// Attributes returns the live attribute table.
func (c *Context) Attributes() adast.Attributes {
	return c.attributes
}

// DefineAttribute sets an attribute. Last write wins. A redefinition may
// break a recorded cycle, so the unresolvable set is discarded.
func (c *Context) DefineAttribute(name string, value adast.AttributeValue) {
	c.attributes[normalizeAttrName(name)] = value
	if len(c.unresolvable) > 0 {
		c.unresolvable = make(map[string]bool)
	}
}

// IsAttributeDefined reports whether name is currently set (and not unset).
func (c *Context) IsAttributeDefined(name string) bool {
	v, ok := c.attributes[normalizeAttrName(name)]
	return ok && v.IsSet()
}

// ResolveAttribute substitutes {name}, recursing into references inside the
// value. Cycles and over-deep chains substitute the literal attribute name
// and report a CircularAttributeReference diagnostic instead of failing.
// The boolean result reports whether the attribute was defined.
func (c *Context) ResolveAttribute(name string, span adast.Span, diags *diag.List) (string, bool) {
	name = normalizeAttrName(name)
	visited := map[string]bool{}
	text, ok := c.resolve(name, span, visited, 0, diags)
	return text, ok
}

func (c *Context) resolve(name string, span adast.Span, visited map[string]bool, depth int, diags *diag.List) (string, bool) {
	if visited[name] {
		if !c.unresolvable[name] {
			*diags = append(*diags, diag.New(diag.CircularAttributeReference, span,
				fmt.Sprintf("attribute %q references itself; substituting the literal name", name)).Build())
		}
		for n := range visited {
			c.unresolvable[n] = true
		}
		return name, false
	}
	if depth > maxSubstitutionDepth {
		if !c.unresolvable[name] {
			*diags = append(*diags, diag.New(diag.CircularAttributeReference, span,
				fmt.Sprintf("attribute %q exceeds the substitution depth limit (%d); substituting the literal name", name, maxSubstitutionDepth)).Build())
		}
		c.unresolvable[name] = true
		return name, false
	}

	value, ok := c.attributes[name]
	if !ok || !value.IsSet() {
		return name, false
	}
	if c.unresolvable[name] {
		return name, true
	}

	visited[name] = true
	defer delete(visited, name)

	text := value.String()
	if !strings.Contains(text, "{") {
		return text, true
	}

	var out strings.Builder
	for {
		open := strings.IndexByte(text, '{')
		if open < 0 {
			out.WriteString(text)
			break
		}
		closeIdx := strings.IndexByte(text[open:], '}')
		if closeIdx < 0 {
			out.WriteString(text)
			break
		}
		closeIdx += open

		out.WriteString(text[:open])
		inner := normalizeAttrName(text[open+1 : closeIdx])
		if inner == "" || !isValidAttrName(inner) {
			out.WriteString(text[open : closeIdx+1])
		} else {
			resolved, _ := c.resolve(inner, span, visited, depth+1, diags)
			out.WriteString(resolved)
		}
		text = text[closeIdx+1:]
	}

	return out.String(), true
}

// PushConditional enters an ifdef/ifndef/ifeval region. A region opened
// inside a suppressed outer region is itself suppressed regardless of its
// own condition.
func (c *Context) PushConditional(kind conditionalKind, attribute string, condition bool, span adast.Span) {
	active := condition && c.Emitting()
	c.conditionals = append(c.conditionals, conditional{
		kind:      kind,
		attribute: attribute,
		active:    active,
		span:      span,
	})
}

// PopConditional closes the innermost open conditional.
// Returns false when no conditional is open.
func (c *Context) PopConditional() bool {
	if len(c.conditionals) == 0 {
		return false
	}
	c.conditionals = c.conditionals[:len(c.conditionals)-1]
	return true
}

// Emitting reports whether content at the current point should produce AST
// nodes, i.e. no enclosing conditional is false.
func (c *Context) Emitting() bool {
	for _, cond := range c.conditionals {
		if !cond.active {
			return false
		}
	}
	return true
}

// OpenConditionals returns the still-open conditional spans, innermost last.
func (c *Context) OpenConditionals() []adast.Span {
	spans := make([]adast.Span, len(c.conditionals))
	for i, cond := range c.conditionals {
		spans[i] = cond.span
	}
	return spans
}

// PushDelimited records an opened delimited block.
func (c *Context) PushDelimited(kind adast.DelimitedKind, length int, span adast.Span) {
	c.delims = append(c.delims, openDelim{kind: kind, length: length, span: span})
}

// PopDelimited closes the innermost open delimited block.
func (c *Context) PopDelimited() {
	if len(c.delims) > 0 {
		c.delims = c.delims[:len(c.delims)-1]
	}
}

// MatchesOpenDelimited reports whether kind+length matches the top of the
// open-delimited-block stack, i.e. the marker closes the current block
// rather than opening a nested one.
func (c *Context) MatchesOpenDelimited(kind adast.DelimitedKind, length int) bool {
	if len(c.delims) == 0 {
		return false
	}
	top := c.delims[len(c.delims)-1]
	return top.kind == kind && top.length == length
}

// DelimitedDepth returns the number of open delimited blocks.
func (c *Context) DelimitedDepth() int {
	return len(c.delims)
}

// InVerbatimBlock reports whether the innermost open delimited block treats
// its content literally. Include-directive-looking lines inside such a
// block are literal text, not resolved.
func (c *Context) InVerbatimBlock() bool {
	if len(c.delims) == 0 {
		return false
	}
	return c.delims[len(c.delims)-1].kind.IsVerbatim()
}

// EnterSection updates the current section level.
func (c *Context) EnterSection(level int) {
	c.sectionLevel = level
}

// CurrentLevel returns the current section level (0 before any section).
func (c *Context) CurrentLevel() int {
	return c.sectionLevel
}

// EnterInclude increments the include depth, reporting whether the
// configured limit allows another level.
func (c *Context) EnterInclude() bool {
	if c.includeDepth >= c.opts.MaxIncludeDepth {
		return false
	}
	c.includeDepth++
	return true
}

// LeaveInclude decrements the include depth.
func (c *Context) LeaveInclude() {
	if c.includeDepth > 0 {
		c.includeDepth--
	}
}

// normalizeAttrName lower-cases an attribute name; attribute names are
// case-insensitive.
func normalizeAttrName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func isValidAttrName(name string) bool {
	for i := 0; i < len(name); i++ {
		if !isAttrNameByte(name[i]) {
			return false
		}
	}
	return len(name) > 0
}
