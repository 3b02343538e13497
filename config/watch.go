package config

import (
	"context"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/typelab/typelab/lib/infra"
	"github.com/typelab/typelab/xlog"
)

// Watch monitors path and calls onChange with the freshly loaded
// Config on each write. It runs until ctx is done.
//
// A failed reload (unreadable, empty or invalid YAML file) keeps the
// previous config active: the error is logged and onChange is not
// called. Events that re-deliver unchanged content are ignored.
func Watch(ctx context.Context, path string, logger xlog.XLogger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return infra.WrapErrorStackWithMessage(err, "config watcher init failed")
	}
	defer func() { _ = watcher.Close() }()

	if err = watcher.Add(path); err != nil {
		return infra.WrapErrorStackWithMessage(err, "config watcher add failed")
	}
	logger.Info("config watching for changes", zap.String("path", path))

	var last *Config
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Editors often save atomically via rename, which
			// surfaces as a create of the new inode.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			// Re-add in case the atomic save replaced the inode.
			_ = watcher.Add(path)
			cfg, err := Load(path)
			if err != nil {
				logger.ErrorStack(err, "config reload failed, keeping previous config",
					zap.String("path", path))
				continue
			}
			// A single save raises multiple events; the same content
			// is not a change.
			if last != nil && *cfg == *last {
				continue
			}
			last = cfg
			logger.Info("config reloaded", zap.String("path", path))
			onChange(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(err, "config watcher error")
		}
	}
}
