// Package drive is the file backend: it copies template files, creates
// folders and lists a directory's children on the local filesystem.
package drive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// ListKind selects which directory entries List returns.
type ListKind string

const (
	ListFiles   ListKind = "files"
	ListFolders ListKind = "folders"
	ListAll     ListKind = "all"
)

// Entry is one child of a listed directory.
type Entry struct {
	Name string
	Path string
	URL  string
	Dir  bool
}

// CopyTemplate copies the template file into destDir under newName and
// returns a reference to the copy. The template's extension is appended when
// newName has none. Refuses to overwrite an existing file so a re-run cannot
// clobber an artifact a previous pass produced.
func CopyTemplate(templatePath, newName, destDir string) (models.Artifact, error) {
	if filepath.Ext(newName) == "" {
		newName += filepath.Ext(templatePath)
	}
	dest := filepath.Join(destDir, newName)

	src, err := os.Open(templatePath)
	if err != nil {
		return models.Artifact{}, fmt.Errorf("opening template %s: %w", templatePath, err)
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return models.Artifact{}, fmt.Errorf("creating destination %s: %w", destDir, err)
	}
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return models.Artifact{}, fmt.Errorf("creating copy %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dest)
		return models.Artifact{}, fmt.Errorf("copying template to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return models.Artifact{}, fmt.Errorf("closing copy %s: %w", dest, err)
	}
	return artifactFor(newName, dest)
}

// CreateFolder creates a named folder under destDir. An existing folder is
// reused and its reference returned, keeping repeated passes idempotent.
func CreateFolder(name, destDir string) (models.Artifact, error) {
	dest := filepath.Join(destDir, name)
	if info, err := os.Stat(dest); err == nil {
		if !info.IsDir() {
			return models.Artifact{}, fmt.Errorf("%s exists and is not a folder", dest)
		}
		return artifactFor(name, dest)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return models.Artifact{}, fmt.Errorf("creating folder %s: %w", dest, err)
	}
	return artifactFor(name, dest)
}

// List returns the directory's children of the requested kind, sorted by
// name.
func List(dir string, kind ListKind) ([]Entry, error) {
	children, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var entries []Entry
	for _, c := range children {
		if c.IsDir() && kind == ListFiles {
			continue
		}
		if !c.IsDir() && kind == ListFolders {
			continue
		}
		path := filepath.Join(dir, c.Name())
		entries = append(entries, Entry{
			Name: c.Name(),
			Path: path,
			URL:  fileURL(path),
			Dir:  c.IsDir(),
		})
	}
	return entries, nil
}

func artifactFor(name, path string) (models.Artifact, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return models.Artifact{}, fmt.Errorf("resolving %s: %w", path, err)
	}
	return models.Artifact{
		ID:   uuid.NewString(),
		Name: name,
		Path: abs,
		URL:  fileURL(abs),
	}, nil
}

// fileURL converts a path into a file:// URL.
func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file://" + filepath.ToSlash(abs)
}
