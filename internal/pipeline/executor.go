package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"desknerd/internal/browser"
	"desknerd/internal/logging"
	"desknerd/internal/operation"
	"desknerd/internal/tactile"
)

// Executor dispatches an admitted operation to the driver that performs
// its side effect. Dispatch is exhaustive over the sealed parameter set.
type Executor struct {
	Files    tactile.FileDriver
	Apps     tactile.AppDriver
	Settings tactile.SettingsDriver
	Commands tactile.CommandRunner
	Web      browser.Navigator
}

// Execute runs the operation's handler and returns its result. Errors
// are driver errors; classification into operation codes happens in the
// pipeline.
func (e *Executor) Execute(ctx context.Context, op *operation.Operation) (*operation.Result, error) {
	switch params := op.Params.(type) {
	case operation.FileParams:
		return e.executeFile(params)
	case operation.WebParams:
		return e.executeWeb(ctx, params)
	case operation.AppParams:
		return e.executeApp(ctx, params)
	case operation.SettingsParams:
		return e.executeSettings(ctx, params)
	case operation.CommandParams:
		return e.executeCommand(ctx, params)
	default:
		return nil, operation.NewError(operation.CodeInvalidOperation, nil,
			"no handler for operation type %q", op.Type)
	}
}

func (e *Executor) executeFile(p operation.FileParams) (*operation.Result, error) {
	switch p.Action {
	case operation.FileRead:
		content, err := e.Files.Read(p.Path)
		if err != nil {
			return nil, err
		}
		return &operation.Result{Content: content}, nil
	case operation.FileWrite:
		if err := e.Files.Write(p.Path, p.Content); err != nil {
			return nil, err
		}
		return &operation.Result{Values: map[string]string{
			"path":  p.Path,
			"bytes": fmt.Sprintf("%d", len(p.Content)),
		}}, nil
	case operation.FileDelete:
		if err := e.Files.Delete(p.Path); err != nil {
			return nil, err
		}
		return &operation.Result{Values: map[string]string{"path": p.Path}}, nil
	default:
		return nil, operation.NewError(operation.CodeInvalidParams, nil,
			"unknown file action %q", p.Action)
	}
}

func (e *Executor) executeWeb(ctx context.Context, p operation.WebParams) (*operation.Result, error) {
	switch p.Action {
	case operation.WebNavigate:
		values, err := e.Web.Navigate(ctx, p.URL)
		if err != nil {
			return nil, err
		}
		return &operation.Result{Values: values}, nil
	case operation.WebClick:
		if err := e.Web.Click(ctx, p.Selector, p.Coords); err != nil {
			return nil, err
		}
		return &operation.Result{}, nil
	default:
		return nil, operation.NewError(operation.CodeInvalidParams, nil,
			"unknown web action %q", p.Action)
	}
}

func (e *Executor) executeApp(ctx context.Context, p operation.AppParams) (*operation.Result, error) {
	var err error
	switch p.Action {
	case operation.AppLaunch:
		err = e.Apps.Launch(ctx, p.AppName)
	case operation.AppClose:
		err = e.Apps.Close(ctx, p.AppName)
	default:
		return nil, operation.NewError(operation.CodeInvalidParams, nil,
			"unknown app action %q", p.Action)
	}
	if err != nil {
		return nil, err
	}
	return &operation.Result{Values: map[string]string{"app": p.AppName}}, nil
}

func (e *Executor) executeSettings(ctx context.Context, p operation.SettingsParams) (*operation.Result, error) {
	switch p.Action {
	case operation.SettingsGet:
		values, err := e.Settings.Get(ctx, p.Setting)
		if err != nil {
			return nil, err
		}
		return &operation.Result{Values: values}, nil
	case operation.SettingsSet:
		if err := e.Settings.Set(ctx, p.Setting, p.Value); err != nil {
			return nil, err
		}
		return &operation.Result{}, nil
	default:
		return nil, operation.NewError(operation.CodeInvalidParams, nil,
			"unknown settings action %q", p.Action)
	}
}

func (e *Executor) executeCommand(ctx context.Context, p operation.CommandParams) (*operation.Result, error) {
	res, err := e.Commands.Run(ctx, tactile.Command{
		Line:             p.Command,
		WorkingDirectory: p.WorkingDir,
		Environment:      p.Env,
		TimeoutMs:        p.TimeoutMs,
	})
	if err != nil {
		return nil, err
	}
	if !res.Success {
		// Timeout, cancellation, or spawn failure. A non-zero exit code
		// is not an error: the command ran to completion.
		return nil, fmt.Errorf("command did not run: %s", res.Error)
	}
	if res.Truncated {
		logging.Get(logging.CategoryPipeline).Warn("command output truncated",
			zap.Int64("discarded_bytes", res.TruncatedBytes))
	}
	return &operation.Result{
		Stdout:   res.Stdout,
		Stderr:   res.Stderr,
		ExitCode: res.ExitCode,
	}, nil
}
