package testutil

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/vpath/pkg/config"
)

// HostRoot is the host-side manifest root used by Workspace descriptors
const HostRoot = "/host/data"

// Workspace is an isolated layout for a full run: a mount point holding the
// files, a home directory receiving the links and a job descriptor.
type Workspace struct {
	Root          string
	MountPoint    string
	Home          string
	JobDescriptor string

	t *testing.T
}

// NewWorkspace creates the layout under t.TempDir() and writes a job
// descriptor listing HostRoot as the only manifest root.
func NewWorkspace(t *testing.T) *Workspace {
	t.Helper()

	root := t.TempDir()
	ws := &Workspace{
		Root:          root,
		MountPoint:    CreateDir(t, root, "data"),
		Home:          CreateDir(t, root, "home"),
		JobDescriptor: filepath.Join(root, "job", "workflow", "work_order.json"),
		t:             t,
	}
	ws.WriteJobDescriptor(HostRoot)
	return ws
}

// WriteJobDescriptor replaces the descriptor with the given manifest roots
func (ws *Workspace) WriteJobDescriptor(roots ...string) {
	ws.t.Helper()

	data, err := json.Marshal(map[string]interface{}{
		"ManifestRoots": roots,
	})
	if err != nil {
		ws.t.Fatalf("Failed to encode job descriptor: %v", err)
	}
	CreateFile(ws.t, filepath.Dir(ws.JobDescriptor), filepath.Base(ws.JobDescriptor), string(data))
}

// AddMountFile creates a file under the mount point and returns its path
func (ws *Workspace) AddMountFile(rel, content string) string {
	ws.t.Helper()
	return CreateFile(ws.t, ws.MountPoint, rel, content)
}

// HostPath returns the host-side path of a file relative to HostRoot
func (ws *Workspace) HostPath(rel string) string {
	return HostRoot + "/" + rel
}

// WriteCSV writes a link file with the given lines and returns its path
func (ws *Workspace) WriteCSV(name string, lines ...string) string {
	ws.t.Helper()
	return CreateFile(ws.t, ws.Root, name, strings.Join(lines, "\n")+"\n")
}

// LinkPath returns where a link for rel under targetDir is expected
func (ws *Workspace) LinkPath(targetDir, rel string) string {
	return filepath.Join(ws.Home, ws.MountPoint, targetDir, filepath.Base(rel))
}

// Config returns a configuration pointing at the workspace
func (ws *Workspace) Config() *config.Config {
	return &config.Config{
		MountPoint:        ws.MountPoint,
		JobDescriptorPath: ws.JobDescriptor,
		ManifestRootsKey:  "ManifestRoots",
		HomeDir:           ws.Home,
		DirPermissions:    0755,
	}
}
