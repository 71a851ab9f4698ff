// Package admission decides whether an operation may execute. Checks
// run in two phases: a global resource gate first, then structural
// validation specific to the operation type. An operation rejected
// here never reaches a handler.
package admission

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"go.uber.org/zap"

	"desknerd/internal/config"
	"desknerd/internal/logging"
	"desknerd/internal/operation"
	"desknerd/internal/tactile"
)

// ResourceGate reports whether the host currently has capacity for
// another operation.
type ResourceGate interface {
	Admit() error
}

// Validator performs admission control for all operation types.
type Validator struct {
	gate  ResourceGate
	files tactile.FileDriver

	allowedSettings map[string]struct{}
}

// NewValidator builds a validator. When cfg.AllowedSettings is empty
// every platform-known setting is permitted.
func NewValidator(gate ResourceGate, files tactile.FileDriver, cfg config.AdmissionConfig) *Validator {
	allowed := make(map[string]struct{})
	names := cfg.AllowedSettings
	if len(names) == 0 {
		names = tactile.KnownSettings()
	}
	for _, name := range names {
		allowed[name] = struct{}{}
	}
	return &Validator{gate: gate, files: files, allowedSettings: allowed}
}

// Validate runs the resource gate and then the per-type checks. The
// result is valid only when every check passed.
func (v *Validator) Validate(ctx context.Context, op *operation.Operation) operation.ValidationResult {
	res := operation.ValidationResult{Valid: true}

	// Phase 1: hard backpressure. Overloaded hosts reject everything,
	// regardless of how well-formed the request is.
	if err := v.gate.Admit(); err != nil {
		res.Invalidate(operation.CodeResourceConstraint, err.Error())
		logging.Get(logging.CategoryAdmission).Warn("operation rejected by resource gate",
			zap.String("operation_id", op.ID), zap.Error(err))
		return res
	}

	// Phase 2: structural checks per type.
	switch params := op.Params.(type) {
	case operation.FileParams:
		v.validateFile(ctx, params, &res)
	case operation.WebParams:
		v.validateWeb(params, &res)
	case operation.AppParams:
		v.validateApp(params, &res)
	case operation.SettingsParams:
		v.validateSettings(params, &res)
	case operation.CommandParams:
		v.validateCommand(params, &res)
	default:
		res.Invalidate(operation.CodeInvalidOperation,
			fmt.Sprintf("unknown operation type %q", op.Type))
	}

	if !res.Valid {
		logging.Get(logging.CategoryAdmission).Info("operation rejected",
			zap.String("operation_id", op.ID),
			zap.String("type", string(op.Type)),
			zap.String("code", string(res.First().Code)),
			zap.String("reason", res.First().Message))
	}
	return res
}

func (v *Validator) validateFile(ctx context.Context, p operation.FileParams, res *operation.ValidationResult) {
	if p.Path == "" {
		res.Invalidate(operation.CodeInvalidParams, "file operation requires a path")
		return
	}

	switch p.Action {
	case operation.FileRead, operation.FileDelete:
		info, err := os.Stat(p.Path)
		if err != nil {
			res.Invalidate(operation.CodeFileAccess,
				fmt.Sprintf("cannot access %s: %v", p.Path, err))
			return
		}
		if info.IsDir() {
			res.Invalidate(operation.CodeFileAccess,
				fmt.Sprintf("%s is a directory", p.Path))
		}
	case operation.FileWrite:
		// Writes may target new files; only the parent directory has
		// to be reachable. Creating it now surfaces permission errors
		// at admission instead of mid-execution.
		if err := v.files.EnsureParent(p.Path); err != nil {
			res.Invalidate(operation.CodeFileAccess,
				fmt.Sprintf("cannot prepare parent of %s: %v", p.Path, err))
		}
	default:
		res.Invalidate(operation.CodeInvalidParams,
			fmt.Sprintf("unknown file action %q", p.Action))
	}
}

func (v *Validator) validateWeb(p operation.WebParams, res *operation.ValidationResult) {
	switch p.Action {
	case operation.WebNavigate:
		if p.URL == "" {
			res.Invalidate(operation.CodeInvalidParams, "navigation requires a url")
			return
		}
		parsed, err := url.Parse(p.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			res.Invalidate(operation.CodeInvalidParams,
				fmt.Sprintf("malformed url %q", p.URL))
		}
	case operation.WebClick:
		hasSelector := p.Selector != ""
		hasCoords := p.Coords != nil
		if hasSelector == hasCoords {
			res.Invalidate(operation.CodeInvalidParams,
				"click requires exactly one of selector or coordinates")
		}
	default:
		res.Invalidate(operation.CodeInvalidParams,
			fmt.Sprintf("unknown web action %q", p.Action))
	}
}

func (v *Validator) validateApp(p operation.AppParams, res *operation.ValidationResult) {
	if p.Action != operation.AppLaunch && p.Action != operation.AppClose {
		res.Invalidate(operation.CodeInvalidParams,
			fmt.Sprintf("unknown app action %q", p.Action))
		return
	}
	if strings.TrimSpace(p.AppName) == "" {
		res.Invalidate(operation.CodeInvalidParams, "app operation requires an application name")
	}
}

func (v *Validator) validateSettings(p operation.SettingsParams, res *operation.ValidationResult) {
	if p.Action != operation.SettingsGet && p.Action != operation.SettingsSet {
		res.Invalidate(operation.CodeInvalidParams,
			fmt.Sprintf("unknown settings action %q", p.Action))
		return
	}
	if p.Setting == "" {
		res.Invalidate(operation.CodeInvalidParams, "settings operation requires a setting name")
		return
	}
	if _, ok := v.allowedSettings[p.Setting]; !ok {
		res.Invalidate(operation.CodeInvalidSetting,
			fmt.Sprintf("setting %q is not recognized", p.Setting))
		return
	}
	if p.Action == operation.SettingsSet && p.Value == "" {
		res.Invalidate(operation.CodeInvalidParams, "settings set requires a value")
	}
}

func (v *Validator) validateCommand(p operation.CommandParams, res *operation.ValidationResult) {
	if strings.TrimSpace(p.Command) == "" {
		res.Invalidate(operation.CodeInvalidParams, "command execution requires a command line")
	}
}
