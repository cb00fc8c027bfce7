package typst

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// FontCatalog is the pinned set of font files handed to the compiler. The
// files are opaque to this service; the compiler does its own parsing.
type FontCatalog struct {
	Dir   string
	Files []string
}

var fontExtensions = map[string]bool{
	".ttf": true,
	".otf": true,
	".ttc": true,
	".otc": true,
}

// LoadCatalog walks dir and collects font files. An empty dir yields an
// empty catalog (system fonts only).
func LoadCatalog(dir string) (*FontCatalog, error) {
	if dir == "" {
		return &FontCatalog{}, nil
	}
	catalog := &FontCatalog{Dir: dir}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if fontExtensions[strings.ToLower(filepath.Ext(path))] {
			catalog.Files = append(catalog.Files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}
