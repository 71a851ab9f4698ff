// Package operation defines the unit of work executed by the pipeline:
// a typed operation with a strongly-typed parameter payload, an explicit
// lifecycle, and a terminal result or error. The type tag determines
// which validator and which handler apply; parameter structs are a
// sealed set so dispatch over them is exhaustive.
package operation

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type discriminates the five supported operation kinds.
type Type string

const (
	TypeFile     Type = "FILE_OPERATION"
	TypeWeb      Type = "WEB_NAVIGATION"
	TypeApp      Type = "APP_CONTROL"
	TypeSettings Type = "SYSTEM_SETTINGS"
	TypeCommand  Type = "COMMAND_EXECUTION"
)

// Status is the lifecycle state. Transitions are strictly forward:
// VALIDATING -> EXECUTING -> {COMPLETED | FAILED | ROLLED_BACK}, or
// VALIDATING -> FAILED when admission is refused.
type Status string

const (
	StatusValidating Status = "VALIDATING"
	StatusExecuting  Status = "EXECUTING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusRolledBack Status = "ROLLED_BACK"
)

// Terminal reports whether s is a terminal state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRolledBack:
		return true
	}
	return false
}

// Params is the sealed parameter payload interface. Exactly one
// implementation exists per operation Type.
type Params interface {
	// OperationType returns the Type this payload belongs to.
	OperationType() Type
}

// FileAction is the sub-action of a file operation.
type FileAction string

const (
	FileRead   FileAction = "READ"
	FileWrite  FileAction = "WRITE"
	FileDelete FileAction = "DELETE"
)

// FileParams describes a file-system operation.
type FileParams struct {
	Action  FileAction `json:"action"`
	Path    string     `json:"path"`
	Content string     `json:"content,omitempty"`
}

func (FileParams) OperationType() Type { return TypeFile }

// WebAction is the sub-action of a web-navigation operation.
type WebAction string

const (
	WebNavigate WebAction = "NAVIGATE"
	WebClick    WebAction = "CLICK"
)

// Coordinates is a viewport-relative click point.
type Coordinates struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// WebParams describes a browser operation. For CLICK, exactly one of
// Selector and Coords must be set.
type WebParams struct {
	Action   WebAction    `json:"action"`
	URL      string       `json:"url,omitempty"`
	Selector string       `json:"selector,omitempty"`
	Coords   *Coordinates `json:"coordinates,omitempty"`
}

func (WebParams) OperationType() Type { return TypeWeb }

// AppAction is the sub-action of an app-control operation.
type AppAction string

const (
	AppLaunch AppAction = "LAUNCH"
	AppClose  AppAction = "CLOSE"
)

// AppParams describes launching or closing a named application.
type AppParams struct {
	Action  AppAction `json:"action"`
	AppName string    `json:"app_name"`
}

func (AppParams) OperationType() Type { return TypeApp }

// SettingsAction is the sub-action of a system-settings operation.
type SettingsAction string

const (
	SettingsGet SettingsAction = "GET"
	SettingsSet SettingsAction = "SET"
)

// SettingsParams describes reading or writing a recognized setting.
type SettingsParams struct {
	Action  SettingsAction `json:"action"`
	Setting string         `json:"setting"`
	Value   string         `json:"value,omitempty"`
}

func (SettingsParams) OperationType() Type { return TypeSettings }

// CommandParams describes a shell command execution.
type CommandParams struct {
	Command    string            `json:"command"`
	WorkingDir string            `json:"working_dir,omitempty"`
	Env        map[string]string `json:"env,omitempty"`
	TimeoutMs  int64             `json:"timeout_ms,omitempty"`
}

func (CommandParams) OperationType() Type { return TypeCommand }

// Result is the opaque success payload produced by a handler.
// Populated if and only if the operation completed.
type Result struct {
	// Content holds file content for FILE_OPERATION READ.
	Content string `json:"content,omitempty"`
	// Stdout/Stderr/ExitCode are set by COMMAND_EXECUTION.
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`
	ExitCode int    `json:"exit_code,omitempty"`
	// Values holds structured key/value output (settings reads,
	// navigation metadata).
	Values map[string]string `json:"values,omitempty"`
}

// Operation is the unit of work tracked through the pipeline.
// It is owned exclusively by the lifecycle tracker while in flight;
// callers receive a copy once a terminal state is reached.
type Operation struct {
	ID          string    `json:"id"`
	Type        Type      `json:"type"`
	Params      Params    `json:"params"`
	Status      Status    `json:"status"`
	StartedAt   time.Time `json:"started_at,omitempty"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Result      *Result   `json:"result,omitempty"`

	// Err is populated only when Status is FAILED or ROLLED_BACK.
	Err *Error `json:"error,omitempty"`
}

// New creates an operation in VALIDATING state. The type tag is taken
// from the payload so the two can never disagree.
func New(params Params) *Operation {
	return &Operation{
		ID:     uuid.NewString(),
		Type:   params.OperationType(),
		Params: params,
		Status: StatusValidating,
	}
}

// Advance moves the operation to the next status, enforcing forward-only
// transitions. It returns an error on any attempt to re-enter a prior
// or terminal state.
func (o *Operation) Advance(next Status) error {
	if o.Status.Terminal() {
		return fmt.Errorf("operation %s already terminal (%s)", o.ID, o.Status)
	}
	valid := false
	switch o.Status {
	case StatusValidating:
		valid = next == StatusExecuting || next == StatusFailed
	case StatusExecuting:
		valid = next.Terminal()
	}
	if !valid {
		return fmt.Errorf("invalid transition %s -> %s for operation %s", o.Status, next, o.ID)
	}
	o.Status = next
	switch next {
	case StatusExecuting:
		if o.StartedAt.IsZero() {
			o.StartedAt = time.Now()
		}
	case StatusCompleted, StatusFailed, StatusRolledBack:
		if o.CompletedAt.IsZero() {
			o.CompletedAt = time.Now()
		}
	}
	return nil
}

// Snapshot returns a shallow copy for reporting. Params, Result and Err
// are never mutated after the terminal transition, so sharing them is safe.
func (o *Operation) Snapshot() Operation {
	return *o
}
