package nodeset

import "fmt"

// InputOpenError wraps a failure to open or read the nodeset file itself.
type InputOpenError struct {
	Path string
	Err  error
}

func (e *InputOpenError) Error() string {
	return fmt.Sprintf("open nodeset %s: %v", e.Path, e.Err)
}

func (e *InputOpenError) Unwrap() error { return e.Err }

// XMLScanError wraps a failure from the underlying XML tokenizer —
// malformed markup, an unexpected EOF mid-element, and the like. These
// are fatal: the session abandons the parse.
type XMLScanError struct {
	Err error
}

func (e *XMLScanError) Error() string {
	return fmt.Sprintf("scan nodeset xml: %v", e.Err)
}

func (e *XMLScanError) Unwrap() error { return e.Err }

// MissingRequiredAttributeError reports that a required attribute with
// no default was absent from a recognized element. It is fatal: the
// session aborts ingestion rather than file a node with an unresolvable
// identity.
type MissingRequiredAttributeError struct {
	Element string
	Attr    string
}

func (e *MissingRequiredAttributeError) Error() string {
	return fmt.Sprintf("element %s: missing required attribute %s", e.Element, e.Attr)
}

// DiagnosticKind classifies a soft error: one the session records and
// continues past, rather than aborting the parse over.
type DiagnosticKind int

const (
	// UnresolvableReference marks an id that ua.ParseNodeID rejected as
	// malformed: a Reference's ReferenceType or target, a node's NodeId,
	// or an Alias's id.
	UnresolvableReference DiagnosticKind = iota
	// TopologicalCycle marks a group of nodes, possibly of different
	// classes, that the sorter could not order because their inverse
	// hierarchical references form a cycle.
	TopologicalCycle
	// UnresolvableDataType marks a Variable whose DataType attribute
	// named neither a defined alias nor a parseable NodeId.
	UnresolvableDataType
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnresolvableReference:
		return "UnresolvableReference"
	case TopologicalCycle:
		return "TopologicalCycle"
	case UnresolvableDataType:
		return "UnresolvableDataType"
	default:
		return "Unknown"
	}
}

// Diagnostic is a non-fatal condition observed during a Load, surfaced
// to the caller via Session.Diagnostics after the parse completes.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
