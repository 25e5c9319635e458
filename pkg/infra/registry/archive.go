package registry

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DefaultExcludes are top-level entries never packed into the codebase
var DefaultExcludes = []string{".git", "node_modules", "dist"}

// Archive packs the directory root into a ZIP in memory. An entry whose path
// relative to root equals one of excludes is skipped together with its
// children. Absolute excludes are resolved against root; those outside it are
// ignored.
func Archive(root string, excludes []string) ([]byte, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat codebase directory", goerr.V("root", root))
	}
	if !info.IsDir() {
		return nil, goerr.New("codebase is not a directory", goerr.V("root", root))
	}

	skip, err := excludeSet(root, excludes)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		name := filepath.ToSlash(rel)
		if _, ok := skip[name]; ok {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		return addEntry(zw, path, name, d)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to archive codebase", goerr.V("root", root))
	}

	if err := zw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize codebase archive")
	}
	return buf.Bytes(), nil
}

// excludeSet converts excludes to slash separated paths relative to root
func excludeSet(root string, excludes []string) (map[string]struct{}, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve codebase directory", goerr.V("root", root))
	}

	skip := make(map[string]struct{}, len(excludes))
	for _, e := range excludes {
		if e == "" {
			continue
		}
		rel := filepath.Clean(e)
		if filepath.IsAbs(rel) {
			if rel, err = filepath.Rel(absRoot, rel); err != nil {
				continue
			}
		}
		if rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		skip[filepath.ToSlash(rel)] = struct{}{}
	}
	return skip, nil
}

// addEntry writes one file or directory into the archive
func addEntry(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}

	// Symlinks and other special files are not part of a codebase
	if !info.IsDir() && !info.Mode().IsRegular() {
		return nil
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return goerr.Wrap(err, "failed to create zip header", goerr.V("path", path))
	}
	header.Name = name
	if info.IsDir() {
		header.Name += "/"
		_, err := zw.CreateHeader(header)
		return err
	}
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return goerr.Wrap(err, "failed to create zip entry", goerr.V("name", name))
	}

	f, err := os.Open(path)
	if err != nil {
		return goerr.Wrap(err, "failed to open file", goerr.V("path", path))
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", path))
	}
	return nil
}
