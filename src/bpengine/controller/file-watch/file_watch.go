// Package filewatch removes the breakpoints of files deleted from disk.
package filewatch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gofrs/uuid"
	tally "github.com/uber-go/tally/v4"
	linebreakpoints "github.com/uber/bp-engine/src/bpengine/controller/line-breakpoints"
	"github.com/uber/bp-engine/src/bpengine/entity"
	"github.com/uber/bp-engine/src/bpengine/internal/fs"
	"go.lsp.dev/uri"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_nameKey   = "file-watch"
	_configKey = "fileWatch"
)

// Controller watches the directories that hold breakpoints.
type Controller interface {
	linebreakpoints.Listener

	// Watched returns the watched directories in lexical order.
	Watched() []string
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Config      config.Provider
	Lifecycle   fx.Lifecycle
	Logger      *zap.SugaredLogger
	Stats       tally.Scope
	Breakpoints linebreakpoints.Controller
	FS          fs.FS
}

// Config is the fileWatch section of the configuration.
type Config struct {
	Enabled bool `yaml:"enabled"`
}

type controller struct {
	logger      *zap.SugaredLogger
	stats       tally.Scope
	breakpoints linebreakpoints.Controller
	fs          fs.FS
	watcher     *fsnotify.Watcher

	mu    sync.Mutex
	dirs  map[uuid.UUID]string
	count map[string]int

	closer chan struct{}
	done   chan struct{}
}

// New creates the file watch controller and subscribes it to breakpoint events.
func New(p Params) (Controller, error) {
	cfg := Config{Enabled: true}
	if err := p.Config.Get(_configKey).Populate(&cfg); err != nil {
		return nil, fmt.Errorf("getting configuration for %q: %w", _configKey, err)
	}

	c := &controller{
		logger:      p.Logger.With("plugin", _nameKey),
		stats:       p.Stats.SubScope("file_watch"),
		breakpoints: p.Breakpoints,
		fs:          p.FS,
		dirs:        make(map[uuid.UUID]string),
		count:       make(map[string]int),
		closer:      make(chan struct{}),
		done:        make(chan struct{}),
	}
	if !cfg.Enabled {
		c.logger.Info("file watch disabled")
		return c, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher for breakpoints: %w", err)
	}
	c.watcher = watcher
	p.Breakpoints.AddListener(c)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go c.handleChanges()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(c.closer)
			select {
			case <-c.done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
	return c, nil
}

func (c *controller) OnBreakpointEvent(kind entity.BreakpointEventKind, bp entity.Breakpoint) {
	if c.watcher == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch kind {
	case entity.BreakpointAdded, entity.BreakpointChanged:
		dir, ok := directory(bp.FileURL)
		if old, watched := c.dirs[bp.ID]; watched {
			if ok && old == dir {
				return
			}
			c.releaseLocked(bp.ID, old)
		}
		if ok {
			c.acquireLocked(bp.ID, dir)
		}
	case entity.BreakpointRemoved:
		if old, watched := c.dirs[bp.ID]; watched {
			c.releaseLocked(bp.ID, old)
		}
	}
}

func (c *controller) acquireLocked(id uuid.UUID, dir string) {
	c.dirs[id] = dir
	c.count[dir]++
	if c.count[dir] > 1 {
		return
	}
	if err := c.watcher.Add(dir); err != nil {
		c.logger.Warnw("unable to watch breakpoint directory", "dir", dir, zap.Error(err))
		return
	}
	c.stats.Gauge("watched_dirs").Update(float64(len(c.count)))
}

func (c *controller) releaseLocked(id uuid.UUID, dir string) {
	delete(c.dirs, id)
	c.count[dir]--
	if c.count[dir] > 0 {
		return
	}
	delete(c.count, dir)
	if err := c.watcher.Remove(dir); err != nil {
		c.logger.Debugw("unable to stop watching directory", "dir", dir, zap.Error(err))
	}
	c.stats.Gauge("watched_dirs").Update(float64(len(c.count)))
}

func (c *controller) Watched() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	dirs := make([]string, 0, len(c.count))
	for dir := range c.count {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	return dirs
}

func (c *controller) handleChanges() {
	defer close(c.done)
	for {
		select {
		case event, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			c.fileRemoved(event.Name)

		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Warnw("failure in breakpoint file watcher", zap.Error(err))

		case <-c.closer:
			if err := c.watcher.Close(); err != nil {
				c.logger.Warnw("failed to close breakpoint file watcher", zap.Error(err))
			}
			return
		}
	}
}

func (c *controller) fileRemoved(name string) {
	u := uri.File(name)
	if len(c.breakpoints.BreakpointsInFile(context.Background(), u)) == 0 {
		return
	}
	// Editors save by renaming a temporary file over the original one.
	exists, err := c.fs.FileExists(name)
	if err != nil {
		c.logger.Debugw("unable to check removed file", "file", u, zap.Error(err))
	}
	if exists {
		return
	}
	c.stats.Counter("files_removed").Inc(1)
	c.logger.Infow("file with breakpoints removed", "file", u)
	if err := c.breakpoints.FileRemoved(context.Background(), u); err != nil {
		c.logger.Warnw("failed to remove breakpoints of deleted file", "file", u, zap.Error(err))
	}
}

// directory returns the directory of a file URL, and false for URLs that are not on the local disk.
func directory(u uri.URI) (string, bool) {
	if !strings.HasPrefix(string(u), uri.FileScheme+"://") {
		return "", false
	}
	return filepath.Dir(u.Filename()), true
}
