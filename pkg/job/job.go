// Package job reads the workflow job descriptor that accompanies a run.
package job

import (
	stderrors "errors"

	"github.com/arthur-debert/vpath/pkg/errors"
	"github.com/arthur-debert/vpath/pkg/filesystem"
	"github.com/arthur-debert/vpath/pkg/logging"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
)

// DefaultManifestRootsKey is the descriptor key holding the manifest roots
const DefaultManifestRootsKey = "ManifestRoots"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadManifestRoots parses the JSON descriptor at path and returns the
// string array stored under key, in order. The array must hold at least one
// root and no root may be empty.
func LoadManifestRoots(fsys filesystem.FS, path, key string) ([]string, error) {
	logger := logging.GetLogger("job")

	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrJobDescriptorRead, "failed to read job descriptor %s", path).
			WithDetail("path", path)
	}

	// The key is looked up verbatim, so the path delimiter must not split it.
	k := koanf.New("\x00")
	if err := k.Load(&rawBytesProvider{bytes: data}, json.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrJobDescriptorParse, "failed to parse job descriptor %s", path).
			WithDetail("path", path)
	}

	if !k.Exists(key) {
		return nil, errors.Newf(errors.ErrManifestRoots, "job descriptor %s has no %q key", path, key).
			WithDetail("path", path)
	}

	raw, ok := k.Get(key).([]interface{})
	if !ok {
		return nil, errors.Newf(errors.ErrManifestRoots, "%q in %s is not an array", key, path).
			WithDetail("path", path)
	}
	if len(raw) == 0 {
		return nil, errors.Newf(errors.ErrManifestRoots, "%q in %s is empty", key, path).
			WithDetail("path", path)
	}

	roots := make([]string, 0, len(raw))
	for i, v := range raw {
		root, ok := v.(string)
		if !ok {
			return nil, errors.Newf(errors.ErrManifestRoots, "%q[%d] in %s is not a string", key, i, path).
				WithDetail("path", path)
		}
		if root == "" {
			return nil, errors.Newf(errors.ErrManifestRoots, "%q[%d] in %s is empty", key, i, path).
				WithDetail("path", path)
		}
		roots = append(roots, root)
	}

	logger.Debug().Str("path", path).Strs("roots", roots).Msg("Loaded manifest roots")
	return roots, nil
}
