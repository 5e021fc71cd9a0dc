// Package disk implements the content-addressed artifact cache backing the
// service. One wav file per fingerprint; the directory doubles as the durable
// cache across restarts.
package disk

import (
	"fmt"
	"os"
	"path/filepath"
)

const dirPermissions = 0o750

// Artifact is an immutable synthesized audio result. Once published it is
// never rewritten or deleted.
type Artifact struct {
	Fingerprint string
	Path        string
	Size        int64
}

// Store maps fingerprints to artifacts on the local filesystem. The backing
// directory is created lazily on first write.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(fp string) string {
	return filepath.Join(s.dir, fp+".wav")
}

// Has reports whether an artifact exists for fp. Never triggers synthesis.
func (s *Store) Has(fp string) bool {
	_, ok := s.Get(fp)
	return ok
}

// Get returns the artifact for fp if one has been published.
func (s *Store) Get(fp string) (Artifact, bool) {
	info, err := os.Stat(s.path(fp))
	if err != nil || info.IsDir() {
		return Artifact{}, false
	}

	return Artifact{Fingerprint: fp, Path: s.path(fp), Size: info.Size()}, true
}

// Put publishes data under fp atomically: the bytes land in a temp file in
// the same directory and are renamed into place, so a concurrent Get sees
// either nothing or the complete artifact, never a partial write. Re-putting
// an existing fingerprint is a no-op.
func (s *Store) Put(fp string, data []byte) (Artifact, error) {
	if art, ok := s.Get(fp); ok {
		return art, nil
	}

	if err := os.MkdirAll(s.dir, dirPermissions); err != nil {
		return Artifact{}, fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, fp+".tmp-")
	if err != nil {
		return Artifact{}, fmt.Errorf("create temp artifact: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return Artifact{}, fmt.Errorf("write artifact: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return Artifact{}, fmt.Errorf("close artifact: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path(fp)); err != nil {
		os.Remove(tmp.Name())

		return Artifact{}, fmt.Errorf("publish artifact: %w", err)
	}

	return Artifact{Fingerprint: fp, Path: s.path(fp), Size: int64(len(data))}, nil
}

// Read returns the full bytes of the artifact for fp.
func (s *Store) Read(fp string) ([]byte, error) {
	data, err := os.ReadFile(s.path(fp))
	if err != nil {
		return nil, fmt.Errorf("read artifact %s: %w", fp, err)
	}

	return data, nil
}
