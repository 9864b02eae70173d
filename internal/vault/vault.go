// Package vault derives note metadata from a document's location inside the
// course vault and maps local paths onto their OneDrive counterparts.
package vault

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Metadata is what the directory hierarchy tells us about a document:
// <root>/<program>/<course>/<class>/.../<file>.
type Metadata struct {
	Program string
	Course  string
	Class   string
	Title   string
}

type Mapper struct {
	root       string
	remoteBase string
}

// NewMapper maps documents under root. remoteBase is the OneDrive folder the
// vault is synced from; empty disables remote path mapping.
func NewMapper(root, remoteBase string) *Mapper {
	return &Mapper{
		root:       filepath.Clean(root),
		remoteBase: strings.TrimRight(remoteBase, "/"),
	}
}

func (m *Mapper) Root() string {
	return m.root
}

// Detect reads program/course/class from the path segments between the vault
// root and the file. Missing levels stay empty; the title is the file name
// without its extension.
func (m *Mapper) Detect(path string) (Metadata, error) {
	rel, err := m.relative(path)
	if err != nil {
		return Metadata{}, err
	}
	meta := Metadata{}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	base := segments[len(segments)-1]
	meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	dirs := segments[:len(segments)-1]
	if len(dirs) > 0 {
		meta.Program = dirs[0]
	}
	if len(dirs) > 1 {
		meta.Course = dirs[1]
	}
	if len(dirs) > 2 {
		meta.Class = dirs[2]
	}
	return meta, nil
}

// RemotePath converts a local vault path into its OneDrive path. Returns ""
// when no remote base is configured.
func (m *Mapper) RemotePath(path string) (string, error) {
	if m.remoteBase == "" {
		return "", nil
	}
	rel, err := m.relative(path)
	if err != nil {
		return "", err
	}
	return m.remoteBase + "/" + filepath.ToSlash(rel), nil
}

func (m *Mapper) relative(path string) (string, error) {
	rel, err := filepath.Rel(m.root, filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("path %s is not under vault root %s: %w", path, m.root, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside vault root %s", path, m.root)
	}
	return rel, nil
}
