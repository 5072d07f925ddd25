package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps each document as a JSON file under a local directory.
// It has no revision tags: every write is unconditional and the last
// writer wins. Writes to the same path are serialized and performed as a
// temp-file rename so a crash never leaves a half-written document.
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, locks: make(map[string]*sync.Mutex)}
}

func (s *FileStore) pathLock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	return l
}

func (s *FileStore) Read(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, unavailable("read "+path, err)
	}
	data, err := os.ReadFile(filepath.Join(s.dir, path))
	if os.IsNotExist(err) {
		return Document{}, nil
	}
	if err != nil {
		return Document{}, unavailable("read "+path, err)
	}
	return Document{Bytes: data, Found: true}, nil
}

func (s *FileStore) Write(ctx context.Context, path string, data []byte, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", unavailable("write "+path, err)
	}

	lock := s.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	target := filepath.Join(s.dir, path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", unavailable("write "+path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", unavailable("write "+path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", unavailable("write "+path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", unavailable("write "+path, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", unavailable("write "+path, err)
	}
	return "", nil
}
