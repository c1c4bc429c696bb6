package engine

import (
	"os"
	"sync"
)

// tmpRegistry tracks the temporary files a pool currently has in flight so
// they can be removed if the run is torn down mid-copy. Each pool owns its
// own registry; nothing leaks across runs.
type tmpRegistry struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func newTmpRegistry() *tmpRegistry {
	return &tmpRegistry{paths: make(map[string]struct{})}
}

func (r *tmpRegistry) add(path string) {
	r.mu.Lock()
	r.paths[path] = struct{}{}
	r.mu.Unlock()
}

func (r *tmpRegistry) remove(path string) {
	r.mu.Lock()
	delete(r.paths, path)
	r.mu.Unlock()
}

// cleanup deletes every still-registered temporary file.
func (r *tmpRegistry) cleanup() {
	r.mu.Lock()
	paths := make([]string, 0, len(r.paths))
	for p := range r.paths {
		paths = append(paths, p)
	}
	clear(r.paths)
	r.mu.Unlock()

	for _, p := range paths {
		_ = os.Remove(p)
	}
}
