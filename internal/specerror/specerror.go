// Package specerror defines the diagnostic taxonomy produced while reading
// and validating a Vulkan registry: schema errors, reference errors,
// invariant errors, shape errors, soft warnings, and I/O errors.
//
// The shape mirrors jacoelho-xsd's errors.Validation: a small struct with a
// Code/Kind, a Message, and optional source position, formatted into one
// line by Error(), plus a list type that aggregates many into one error.
package specerror

import (
	"fmt"
	"strings"
)

// Kind enumerates the diagnostic taxonomy from spec §7.
type Kind string

const (
	KindSchema    Kind = "schema"    // unexpected/missing attribute or element
	KindReference Kind = "reference" // a name-keyed reference did not resolve
	KindInvariant Kind = "invariant" // a domain rule was violated
	KindShape     Kind = "shape"     // the overload selector found no matching shape
	KindWarning   Kind = "warning"   // soft, non-fatal schema warning
	KindIO        Kind = "io"        // input unreadable, output unwritable, formatter failed
)

// Fatal reports whether a diagnostic of this kind must stop the pipeline.
func (k Kind) Fatal() bool {
	return k != KindWarning && k != KindShape
}

// Diagnostic is a single located error or warning.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int    // 1-based source line, 0 if not applicable
	Path    string // dotted registry path, e.g. "VkBufferCreateInfo.sType"
}

func (d *Diagnostic) Error() string {
	if d == nil {
		return "specerror: <nil>"
	}
	var b strings.Builder
	if d.Line > 0 {
		fmt.Fprintf(&b, "Spec error on line %d: %s", d.Line, d.Message)
	} else {
		fmt.Fprintf(&b, "Spec error: %s", d.Message)
	}
	if d.Path != "" {
		fmt.Fprintf(&b, " (at %s)", d.Path)
	}
	return b.String()
}

// New builds a Diagnostic with no source position.
func New(kind Kind, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: message}
}

// Newf builds a Diagnostic from a format string.
func Newf(kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AtLine attaches a source line to a copy of the diagnostic.
func (d *Diagnostic) AtLine(line int) *Diagnostic {
	cp := *d
	cp.Line = line
	return &cp
}

// AtPath attaches a registry path to a copy of the diagnostic.
func (d *Diagnostic) AtPath(path string) *Diagnostic {
	cp := *d
	cp.Path = path
	return &cp
}

// List aggregates diagnostics collected during a single pass (e.g. all
// cross-reference failures found by one validator run) into a single error.
type List []*Diagnostic

func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// Fatal reports whether any diagnostic in the list is fatal.
func (l List) Fatal() bool {
	for _, d := range l {
		if d.Kind.Fatal() {
			return true
		}
	}
	return false
}

// Add appends a diagnostic, returning the (possibly newly-allocated) list.
func (l List) Add(d *Diagnostic) List {
	return append(l, d)
}
