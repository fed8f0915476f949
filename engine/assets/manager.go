package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/vicki/engine/core"
)

type AssetInfo struct {
	Path       string
	LastLoaded time.Time
}

// AssetManager resolves asset-relative paths against the configured base
// directory and watches it for on-disk changes. The resource caches never
// evict, so a changed file only produces a staleness warning; restarting
// picks the new content up.
type AssetManager struct {
	baseDir string
	assets  map[string]AssetInfo

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewAssetManager(baseDir string) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		baseDir:  baseDir,
		assets:   make(map[string]AssetInfo),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

func (am *AssetManager) Initialize() error {
	go am.start()

	if _, err := os.Stat(am.baseDir); err != nil {
		// A missing assets directory is fine for scenes built entirely
		// from placeholders.
		core.LogWarn("assets directory '%s' not found, nothing to watch", am.baseDir)
		return nil
	}
	return am.addRecursive(am.baseDir)
}

// ResolvePath turns an asset-relative name into an on-disk path. Absolute
// paths pass through untouched.
func (am *AssetManager) ResolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(am.baseDir, name)
}

// MarkLoaded records that an asset has been consumed by the resource
// caches; changes to it on disk are reported until shutdown.
func (am *AssetManager) MarkLoaded(path string) {
	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, LastLoaded: time.Now()}
	am.mutex.Unlock()
}

// addRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	return filepath.Walk(name, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return am.fsnotify.Add(path)
		}
		return nil
	})
}

func (am *AssetManager) start() {
	for {
		select {
		case <-am.done:
			return
		case event, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			am.mutex.RLock()
			_, loaded := am.assets[event.Name]
			am.mutex.RUnlock()
			if loaded {
				core.LogWarn("asset '%s' changed on disk after load; the cached copy is stale until restart", event.Name)
			}
		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)
		}
	}
}

func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	return am.fsnotify.Close()
}
