package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME and the XDG directories at a temp dir so no real user
// configuration leaks into the test
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(home, "etc"))
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	home := isolate(t)

	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.MountPoint)
	assert.Equal(t, "/job/workflow/work_order.json", cfg.JobDescriptorPath)
	assert.Equal(t, "ManifestRoots", cfg.ManifestRootsKey)
	assert.Equal(t, home, cfg.HomeDir)
	assert.Equal(t, os.FileMode(0755), cfg.DirMode())
	assert.False(t, cfg.PrintIndex)
	assert.Empty(t, cfg.StylesFile)
}

func TestLoadLayers(t *testing.T) {
	t.Run("toml_file_overrides_defaults", func(t *testing.T) {
		home := isolate(t)
		path := writeFile(t, home, "vpath.toml", `
mount_point = "/mnt/files"
print_index = true
`)

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.Equal(t, "/mnt/files", cfg.MountPoint)
		assert.True(t, cfg.PrintIndex)
		assert.Equal(t, "ManifestRoots", cfg.ManifestRootsKey)
	})

	t.Run("yaml_file", func(t *testing.T) {
		home := isolate(t)
		path := writeFile(t, home, "vpath.yaml", "job_descriptor_path: /tmp/order.json\ndir_permissions: 448\n")

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.Equal(t, "/tmp/order.json", cfg.JobDescriptorPath)
		assert.Equal(t, os.FileMode(0700), cfg.DirMode())
	})

	t.Run("json_file", func(t *testing.T) {
		home := isolate(t)
		path := writeFile(t, home, "vpath.json", `{"manifest_roots_key": "Roots"}`)

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.Equal(t, "Roots", cfg.ManifestRootsKey)
	})

	t.Run("xdg_config_file_is_picked_up", func(t *testing.T) {
		home := isolate(t)
		writeFile(t, home, ".config/vpath/config.toml", `mount_point = "/xdg"`)

		cfg, err := Load(LoadOptions{})
		require.NoError(t, err)

		assert.Equal(t, "/xdg", cfg.MountPoint)
	})

	t.Run("env_overrides_file", func(t *testing.T) {
		home := isolate(t)
		path := writeFile(t, home, "vpath.toml", `mount_point = "/from-file"`)
		t.Setenv("VPATH_MOUNT_POINT", "/from-env")
		t.Setenv("VPATH_PRINT_INDEX", "true")

		cfg, err := Load(LoadOptions{ConfigFile: path})
		require.NoError(t, err)

		assert.Equal(t, "/from-env", cfg.MountPoint)
		assert.True(t, cfg.PrintIndex)
	})

	t.Run("overrides_win_over_env", func(t *testing.T) {
		home := isolate(t)
		t.Setenv("VPATH_MOUNT_POINT", "/from-env")

		cfg, err := Load(LoadOptions{
			ConfigFile: os.DevNull,
			Overrides: map[string]interface{}{
				"mount_point": "/from-flag",
				"home_dir":    filepath.Join(home, "other"),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "/from-flag", cfg.MountPoint)
		assert.Equal(t, filepath.Join(home, "other"), cfg.HomeDir)
	})

	t.Run("home_tilde_is_expanded", func(t *testing.T) {
		home := isolate(t)

		cfg, err := Load(LoadOptions{
			ConfigFile: os.DevNull,
			Overrides:  map[string]interface{}{"home_dir": "~/links"},
		})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(home, "links"), cfg.HomeDir)
	})
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantCode errors.ErrorCode
	}{
		{"relative_mount_point", "c.toml", `mount_point = "data"`, errors.ErrConfigInvalid},
		{"empty_job_descriptor", "c.toml", `job_descriptor_path = ""`, errors.ErrConfigInvalid},
		{"empty_roots_key", "c.toml", `manifest_roots_key = ""`, errors.ErrConfigInvalid},
		{"bad_permissions", "c.toml", `dir_permissions = 4096`, errors.ErrConfigInvalid},
		{"malformed_toml", "c.toml", `mount_point = `, errors.ErrConfigLoad},
		{"unsupported_extension", "c.ini", `mount_point=/x`, errors.ErrConfigLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			home := isolate(t)
			path := writeFile(t, home, tt.file, tt.content)

			_, err := Load(LoadOptions{ConfigFile: path})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
		})
	}

	t.Run("missing_file", func(t *testing.T) {
		home := isolate(t)

		_, err := Load(LoadOptions{ConfigFile: filepath.Join(home, "absent.toml")})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestGenerateTOML(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(LoadOptions{
		ConfigFile: os.DevNull,
		Overrides:  map[string]interface{}{"mount_point": "/mnt/generated", "print_index": true},
	})
	require.NoError(t, err)

	out, err := GenerateTOML(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "# vpath configuration")
	assert.Contains(t, string(out), "mount_point")

	path := writeFile(t, home, "generated.toml", string(out))
	reloaded, err := Load(LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}
