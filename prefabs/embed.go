package prefabs

import (
	"embed"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is the on-disk prefab directory. Files found there win over the
// embedded copies so tuning can be edited without a rebuild.
var Dir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var bundled embed.FS

// Load returns a YAML prefab by file name. A leading directory is ignored,
// prefabs are flat.
func Load(name string) ([]byte, error) {
	return read(path.Base(filepath.ToSlash(name)))
}

// LoadScript returns a tengo script. The ".tengo" extension is optional.
func LoadScript(name string) ([]byte, error) {
	return read(scriptPath(name))
}

func scriptPath(name string) string {
	base := strings.TrimSuffix(path.Base(filepath.ToSlash(name)), ".tengo")
	return path.Join("scripts", base+".tengo")
}

// read tries Dir first. Only a missing disk file falls through to the
// bundled copy; any other disk error is returned.
func read(rel string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel)))
	switch {
	case err == nil:
		return data, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	return bundled.ReadFile(rel)
}
