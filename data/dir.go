package data

import (
	"os"
	"path/filepath"
	"strings"
)

// validExts are the image extensions accepted by ListImages.
var validExts = []string{".jpg", ".jpeg", ".png"}

// ListImages returns the image files found directly in dir, sorted by name.
// Files with other extensions and subdirectories are ignored.
// An empty directory gives an empty list, not an error.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !validExt(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

func validExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, valid := range validExts {
		if ext == valid {
			return true
		}
	}
	return false
}
