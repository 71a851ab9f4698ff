package operation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartsValidating(t *testing.T) {
	op := New(FileParams{Action: FileRead, Path: "/tmp/x"})
	assert.NotEmpty(t, op.ID)
	assert.Equal(t, TypeFile, op.Type)
	assert.Equal(t, StatusValidating, op.Status)
	assert.True(t, op.StartedAt.IsZero())
}

func TestTypeTagMatchesParams(t *testing.T) {
	cases := []struct {
		params Params
		want   Type
	}{
		{FileParams{}, TypeFile},
		{WebParams{}, TypeWeb},
		{AppParams{}, TypeApp},
		{SettingsParams{}, TypeSettings},
		{CommandParams{}, TypeCommand},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, New(tc.params).Type)
	}
}

func TestAdvanceHappyPath(t *testing.T) {
	op := New(CommandParams{Command: "true"})

	require.NoError(t, op.Advance(StatusExecuting))
	assert.False(t, op.StartedAt.IsZero())

	require.NoError(t, op.Advance(StatusCompleted))
	assert.False(t, op.CompletedAt.IsZero())
	assert.True(t, op.Status.Terminal())
}

func TestAdvanceRejectsBackwards(t *testing.T) {
	op := New(CommandParams{Command: "true"})
	require.NoError(t, op.Advance(StatusExecuting))

	assert.Error(t, op.Advance(StatusValidating))
	assert.Error(t, op.Advance(StatusExecuting))
}

func TestAdvanceRejectsSkippingValidation(t *testing.T) {
	op := New(CommandParams{Command: "true"})
	assert.Error(t, op.Advance(StatusCompleted))
	assert.Error(t, op.Advance(StatusRolledBack))
}

func TestAdvanceTerminalIsFinal(t *testing.T) {
	op := New(CommandParams{Command: "true"})
	require.NoError(t, op.Advance(StatusExecuting))
	require.NoError(t, op.Advance(StatusFailed))

	for _, next := range []Status{StatusValidating, StatusExecuting, StatusCompleted, StatusRolledBack} {
		assert.Error(t, op.Advance(next), "transition out of terminal to %s must fail", next)
	}
	assert.Equal(t, StatusFailed, op.Status)
}

func TestAdvanceValidatingCanFail(t *testing.T) {
	op := New(CommandParams{Command: "true"})
	require.NoError(t, op.Advance(StatusFailed))
	assert.True(t, op.StartedAt.IsZero())
	assert.False(t, op.CompletedAt.IsZero())
}

func TestRetryable(t *testing.T) {
	assert.True(t, CodeResourceConstraint.Retryable())
	for _, code := range []ErrorCode{
		CodeNotAuthorized, CodeInvalidParams, CodeInvalidSetting,
		CodeInvalidOperation, CodeFileAccess, CodeExecution,
	} {
		assert.False(t, code.Retryable(), "%s must not be retryable", code)
	}
}

func TestAsErrorPreservesOperationErrors(t *testing.T) {
	orig := NewError(CodeInvalidSetting, nil, "bad setting")
	assert.Same(t, orig, AsError(orig))

	wrapped := AsError(errors.New("driver exploded"))
	assert.Equal(t, CodeExecution, wrapped.Code)

	assert.Nil(t, AsError(nil))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError(CodeFileAccess, cause, "write failed")
	assert.True(t, errors.Is(err, cause))
}

func TestValidationResultFirst(t *testing.T) {
	res := ValidationResult{Valid: true}
	assert.Nil(t, res.First())

	res.Invalidate(CodeInvalidParams, "missing path")
	res.Invalidate(CodeFileAccess, "unreachable")
	require.False(t, res.Valid)
	assert.Equal(t, CodeInvalidParams, res.First().Code)
}

func TestDecodeEnvelope(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Params
	}{
		{
			name: "file read",
			in:   `{"type":"FILE_OPERATION","params":{"action":"READ","path":"/etc/hostname"}}`,
			want: FileParams{Action: FileRead, Path: "/etc/hostname"},
		},
		{
			name: "web click coords",
			in:   `{"type":"WEB_NAVIGATION","params":{"action":"CLICK","coordinates":{"x":10,"y":20}}}`,
			want: WebParams{Action: WebClick, Coords: &Coordinates{X: 10, Y: 20}},
		},
		{
			name: "app launch",
			in:   `{"type":"APP_CONTROL","params":{"action":"LAUNCH","app_name":"firefox"}}`,
			want: AppParams{Action: AppLaunch, AppName: "firefox"},
		},
		{
			name: "settings get",
			in:   `{"type":"SYSTEM_SETTINGS","params":{"action":"GET","setting":"os_version"}}`,
			want: SettingsParams{Action: SettingsGet, Setting: "os_version"},
		},
		{
			name: "command with env",
			in:   `{"type":"COMMAND_EXECUTION","params":{"command":"ls","env":{"FOO":"bar"}}}`,
			want: CommandParams{Command: "ls", Env: map[string]string{"FOO": "bar"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeEnvelope([]byte(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeEnvelopeRejectsUnknownType(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"type":"REBOOT","params":{}}`))
	assert.Error(t, err)
}

func TestDecodeEnvelopeRequiresParams(t *testing.T) {
	_, err := DecodeEnvelope([]byte(`{"type":"FILE_OPERATION"}`))
	assert.Error(t, err)
}
