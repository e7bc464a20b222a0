// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/X-Seti/Deepsearch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_found_error",
			code:    errors.ErrNotFound,
			message: "pattern not found",
			wantStr: "[NOT_FOUND] pattern not found",
		},
		{
			name:    "usage_error",
			code:    errors.ErrUsage,
			message: "missing search pattern",
			wantStr: "[USAGE] missing search pattern",
		},
		{
			name:    "rename_conflict_error",
			code:    errors.ErrRenameConflict,
			message: "target already exists",
			wantStr: "[RENAME_CONFLICT] target already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrFileWrite, "cannot write %s", "notes.txt")
	assert.Equal(t, errors.ErrFileWrite, err.Code)
	assert.Equal(t, "cannot write notes.txt", err.Message)
}

func TestWrap(t *testing.T) {
	t.Run("wraps underlying error", func(t *testing.T) {
		inner := stderrors.New("permission denied")
		err := errors.Wrap(inner, errors.ErrFileAccess, "cannot read file")

		require.NotNil(t, err)
		assert.Equal(t, errors.ErrFileAccess, err.Code)
		assert.Equal(t, "[FILE_ACCESS] cannot read file: permission denied", err.Error())
		assert.Equal(t, inner, stderrors.Unwrap(err))
	})

	t.Run("nil error wraps to nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrFileAccess, "unused"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrFileAccess, "unused %d", 1))
	})
}

func TestIs(t *testing.T) {
	err := errors.New(errors.ErrNotFound, "nothing matched")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrNotFound, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrUsage, "other code")))
}

func TestIsErrorCode(t *testing.T) {
	wrapped := errors.Wrap(stderrors.New("boom"), errors.ErrRename, "rename failed")
	outer := stderrors.Join(stderrors.New("context"), wrapped)

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrRename))
	assert.True(t, errors.IsErrorCode(outer, errors.ErrRename))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrBackup))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrRename))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrBackup, errors.GetErrorCode(errors.New(errors.ErrBackup, "x")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrFileWrite, "write failed").
		WithDetail("path", "/tmp/a.txt").
		WithDetail("attempt", 1)

	assert.Equal(t, "/tmp/a.txt", err.Details["path"])
	assert.Equal(t, 1, err.Details["attempt"])
}
