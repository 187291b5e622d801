package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/vpath/pkg/errors"
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
			name:    "missing_headers",
			code:    errors.ErrMissingHeaders,
			message: "required headers not found",
			wantStr: "[MISSING_HEADERS] required headers not found",
		},
		{
			name:    "invalid_config",
			code:    errors.ErrConfigInvalid,
			message: "mount_point must be absolute",
			wantStr: "[CONFIG_INVALID] mount_point must be absolute",
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
	err := errors.Newf(errors.ErrManifestRoots, "key %q holds %d roots", "ManifestRoots", 0)
	assert.Equal(t, `[MANIFEST_ROOTS] key "ManifestRoots" holds 0 roots`, err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_stays_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrCSVOpen, "open"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrCSVOpen, "open %s", "x.csv"))
	})

	t.Run("wrapped_error_is_reachable", func(t *testing.T) {
		err := errors.Wrapf(fs.ErrNotExist, errors.ErrFileNotFound, "source %s", "/data/a.txt")
		require.NotNil(t, err)

		assert.Equal(t, "[FILE_NOT_FOUND] source /data/a.txt: file does not exist", err.Error())
		assert.True(t, stderrors.Is(err, fs.ErrNotExist))
		assert.Equal(t, fs.ErrNotExist, stderrors.Unwrap(err))
	})
}

func TestIsMatchesOnCode(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), errors.ErrSymlinkCreate, "symlink failed")

	assert.True(t, stderrors.Is(err, errors.New(errors.ErrSymlinkCreate, "")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrDirCreate, "")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrSymlinkExists, "exists").
		WithDetail("target", "/home/u/data/out/a.txt")

	assert.Equal(t, "/home/u/data/out/a.txt", errors.GetErrorDetails(err)["target"])
}

func TestErrorCodeHelpers(t *testing.T) {
	wrapped := errors.Wrap(errors.New(errors.ErrIndexWalk, "walk"), errors.ErrInternal, "outer")

	assert.True(t, errors.IsErrorCode(wrapped, errors.ErrInternal))
	assert.False(t, errors.IsErrorCode(wrapped, errors.ErrIndexWalk))
	assert.True(t, stderrors.Is(wrapped, errors.New(errors.ErrIndexWalk, "")))
	assert.Equal(t, errors.ErrInternal, errors.GetErrorCode(wrapped))

	plain := stderrors.New("plain")
	assert.False(t, errors.IsErrorCode(plain, errors.ErrInternal))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.Nil(t, errors.GetErrorDetails(plain))
}
