package errors

import (
	"fmt"
	"strings"
)

// Stage indicates where in the pipeline the error occurred
type Stage string

const (
	StageParams    Stage = "params"    // shape parameter validation
	StageGenerate  Stage = "generate"  // callgraph generation
	StageEncode    Stage = "encode"    // graph artifact encoding
	StageDecode    Stage = "decode"    // graph artifact decoding
	StagePartition Stage = "partition" // node to translation unit assignment
	StageEmit      Stage = "emit"      // translation unit emission
	StageRecipe    Stage = "recipe"    // build recipe emission
	StageVerify    Stage = "verify"    // emitted source verification
)

// Kind categorizes the error
type Kind string

const (
	KindInvalidParameter Kind = "invalid_parameter"
	KindMalformedGraph   Kind = "malformed_graph"
	KindFileSystem       Kind = "filesystem"
	KindNotFound         Kind = "not_found"
	KindUnsupported      Kind = "unsupported"
	KindTopologyMismatch Kind = "topology_mismatch"
)

// Error is the structured error type used throughout cfgbench
type Error struct {
	Cause  error
	Stage  Stage
	Kind   Kind
	Param  string
	NodeID uint32
	HasID  bool
	Path   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Stage))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Param != "" {
		b.WriteString(" for parameter ")
		b.WriteString(e.Param)
	}
	if e.HasID {
		fmt.Fprintf(&b, " at node %d", e.NodeID)
	}
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Stage == t.Stage && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether err is a *Error of the given kind, regardless of stage.
func IsKind(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(stage Stage, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Stage: stage,
			Kind:  kind,
		},
	}
}

// Param names the offending shape parameter
func (b *Builder) Param(name string) *Builder {
	b.err.Param = name
	return b
}

// Node records the graph node the error refers to
func (b *Builder) Node(id uint32) *Builder {
	b.err.NodeID = id
	b.err.HasID = true
	return b
}

// Path records the file-system path the error refers to
func (b *Builder) Path(path string) *Builder {
	b.err.Path = path
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidParameter creates an out-of-range shape parameter error
func InvalidParameter(stage Stage, param, detail string) *Error {
	return &Error{
		Stage:  stage,
		Kind:   KindInvalidParameter,
		Param:  param,
		Detail: detail,
	}
}

// MalformedGraph creates a referential-integrity or missing-field error
// for a graph artifact, pinned to the offending node id.
func MalformedGraph(stage Stage, nodeID uint32, detail string) *Error {
	return &Error{
		Stage:  stage,
		Kind:   KindMalformedGraph,
		NodeID: nodeID,
		HasID:  true,
		Detail: detail,
	}
}

// FileSystem wraps an I/O failure with the path it occurred on
func FileSystem(stage Stage, path string, cause error) *Error {
	return &Error{
		Stage: stage,
		Kind:  KindFileSystem,
		Path:  path,
		Cause: cause,
	}
}

// NotFound creates a lookup failure error
func NotFound(stage Stage, what, name string) *Error {
	return &Error{
		Stage:  stage,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Unsupported creates an error for an unimplemented capability
func Unsupported(stage Stage, what string) *Error {
	return &Error{
		Stage:  stage,
		Kind:   KindUnsupported,
		Detail: fmt.Sprintf("%s is not supported", what),
	}
}

// Wrap creates an error wrapping a cause with additional context
func Wrap(stage Stage, kind Kind, cause error, detail string) *Error {
	return &Error{
		Stage:  stage,
		Kind:   kind,
		Cause:  cause,
		Detail: detail,
	}
}
