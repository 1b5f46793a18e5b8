// Package errors provides structured error types for the cfgbench tools.
//
// Errors are categorized by Stage (where in the pipeline the error occurred)
// and Kind (error category). The Stage doubles as the code generator's
// state-machine position when a run fails, so a failure report always names
// the step that aborted.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.StageParams, errors.KindInvalidParameter).
//		Param("depth").
//		Detail("depth must be positive, got %d", depth).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidParameter(errors.StageParams, "depth", "must be positive")
//	err := errors.MalformedGraph(errors.StageDecode, nodeID, "callee does not resolve")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
