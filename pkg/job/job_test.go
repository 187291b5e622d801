package job_test

import (
	"testing"

	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/arthur-debert/vpath/pkg/filesystem"
	"github.com/arthur-debert/vpath/pkg/job"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const descriptorPath = "/job/workflow/work_order.json"

func fsWithDescriptor(t *testing.T, content string) filesystem.FS {
	t.Helper()
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, descriptorPath, []byte(content), 0644))
	return filesystem.NewAferoFS(mem)
}

func TestLoadManifestRoots(t *testing.T) {
	fsys := fsWithDescriptor(t, `{
		"WorkflowId": "wf-1",
		"ManifestRoots": ["/Users/me/dataset", "/Volumes/ext/raw"],
		"Params": {"a.b": 1}
	}`)

	roots, err := job.LoadManifestRoots(fsys, descriptorPath, job.DefaultManifestRootsKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"/Users/me/dataset", "/Volumes/ext/raw"}, roots)
}

func TestLoadManifestRoots_CustomKey(t *testing.T) {
	fsys := fsWithDescriptor(t, `{"Roots.v2": ["/host/data"]}`)

	roots, err := job.LoadManifestRoots(fsys, descriptorPath, "Roots.v2")
	require.NoError(t, err)
	assert.Equal(t, []string{"/host/data"}, roots)
}

func TestLoadManifestRoots_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.ErrorCode
	}{
		{"malformed_json", `{"ManifestRoots": [`, errors.ErrJobDescriptorParse},
		{"missing_key", `{"Other": ["/host"]}`, errors.ErrManifestRoots},
		{"not_an_array", `{"ManifestRoots": "/host"}`, errors.ErrManifestRoots},
		{"empty_array", `{"ManifestRoots": []}`, errors.ErrManifestRoots},
		{"non_string_element", `{"ManifestRoots": ["/host", 3]}`, errors.ErrManifestRoots},
		{"empty_root", `{"ManifestRoots": ["/host", ""]}`, errors.ErrManifestRoots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fsWithDescriptor(t, tt.content)

			roots, err := job.LoadManifestRoots(fsys, descriptorPath, job.DefaultManifestRootsKey)
			require.Error(t, err)
			assert.Nil(t, roots)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(err), "got %v", err)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

		_, err := job.LoadManifestRoots(fsys, descriptorPath, job.DefaultManifestRootsKey)
		assert.True(t, errors.IsErrorCode(err, errors.ErrJobDescriptorRead))
	})
}
