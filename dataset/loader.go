// Package dataset loads images from disk and shapes them into uniform
// batches for transport to the inference server.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"
)

// Load reads the file at path, or every regular file directly inside the
// directory at path, into raw byte buffers. Directories are not descended
// into; subdirectories and other non-regular entries are skipped. When
// max > 0, at most that many files are read, in directory listing order.
func Load(path string, max int) ([][]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat image source: %w", err)
	}

	var paths []string
	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("list image directory: %w", err)
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				log.Debugf("skipping %s: not a regular file", e.Name())
				continue
			}
			paths = append(paths, filepath.Join(path, e.Name()))
		}
	} else {
		paths = []string{path}
	}
	if max > 0 && len(paths) > max {
		paths = paths[:max]
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no image files in %s", path)
	}

	bar := progressbar.Default(int64(len(paths)), "Reading images")
	images := make([][]byte, 0, len(paths))
	for _, p := range paths {
		buf, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read image %s: %w", p, err)
		}
		images = append(images, buf)
		bar.Add(1)
	}
	bar.Finish()
	return images, nil
}
