package domain

import "fmt"

// EngineError is the unified error type for the engine.
// Each error has a numeric code and human-readable message.
type EngineError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error %d: %s", e.Code, e.Message)
}

// NewEngineError creates a new EngineError.
func NewEngineError(code int, msg string) *EngineError {
	return &EngineError{Code: code, Message: msg}
}

// WrapEngineError creates an EngineError that includes a cause.
func WrapEngineError(code int, msg string, cause error) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf("%s: %v", msg, cause)}
}

// ---- Estimation / configuration errors (-32010 to -32039) ----

var (
	ErrUnknownMethod     = &EngineError{Code: -32010, Message: "unknown estimation method"}
	ErrInvalidComplexity = &EngineError{Code: -32011, Message: "invalid complexity level"}
	ErrInvalidPattern    = &EngineError{Code: -32012, Message: "invalid architecture pattern"}
	ErrInvalidPhase      = &EngineError{Code: -32013, Message: "invalid roadmap phase"}
	ErrEstimateNotFound  = &EngineError{Code: -32014, Message: "estimate not found"}
)

// ---- Graph / structural errors (-32040 to -32069) ----

var (
	ErrDependencyCycle    = &EngineError{Code: -32040, Message: "dependency cycle detected"}
	ErrDanglingDependency = &EngineError{Code: -32041, Message: "dependency references unknown task"}
	ErrDuplicateTask      = &EngineError{Code: -32042, Message: "duplicate task id in graph"}
)

// ---- Simulation errors (-32070 to -32099) ----

var (
	ErrBadIterations = &EngineError{Code: -32070, Message: "iteration count must be positive"}
	ErrNoSamples     = &EngineError{Code: -32071, Message: "simulation produced no samples"}
)

// ---- Store / config errors (-32130 to -32159) ----

var (
	ErrStoreInit       = &EngineError{Code: -32130, Message: "failed to initialize store"}
	ErrStoreQuery      = &EngineError{Code: -32131, Message: "store query failed"}
	ErrStoreWrite      = &EngineError{Code: -32132, Message: "store write failed"}
	ErrSchemaMigration = &EngineError{Code: -32133, Message: "schema migration failed"}
	ErrConfigInvalid   = &EngineError{Code: -32136, Message: "invalid configuration"}
)
