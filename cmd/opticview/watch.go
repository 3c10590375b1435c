package main

import (
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/optiview"
	"github.com/gogpu/optiview/interact"
)

// watchOptions reloads the options file at path whenever it changes and
// posts the result to loop, so apply runs on the thread that drains it.
// The directory is watched so that a replaced file is seen too.
func watchOptions(path string, loop *interact.Loop, apply func(optiview.Options)) (io.Closer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				o, err := optiview.LoadOptions(path)
				if err != nil {
					optiview.Logger().Warn("opticview: options not reloaded", "path", path, "err", err)
					continue
				}
				optiview.Logger().Info("opticview: options reloaded", "path", path)
				loop.Post(func() { apply(o) })
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				optiview.Logger().Warn("opticview: watch", "err", err)
			}
		}
	}()
	return w, nil
}
