package main

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/gogpu/optiview/scene"
)

func loadSettings(path string) (scene.Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return scene.Settings{}, err
	}
	defer f.Close()
	return scene.DecodeSettings(f)
}

// saveSettings replaces the file at path through a temporary file in the
// same directory, so a reader never sees a partial document.
func saveSettings(path string, s scene.Settings) error {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".opticview-*.toml")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
