package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xlab/treeprint"
)

var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".htm":  true,
}

// ListAreaFiles walks a corpus folder laid out as <root>/<area>/<files>
// and returns the supported files grouped by area. Files sitting
// directly in the root land in defaultArea.
func ListAreaFiles(root, defaultArea string) (map[string][]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read corpus folder %s: %w", root, err)
	}

	areas := map[string][]string{}
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())
		if !entry.IsDir() {
			if supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
				areas[defaultArea] = append(areas[defaultArea], path)
			}
			continue
		}

		area := NormalizeArea(entry.Name())
		files, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("read area folder %s: %w", path, err)
		}
		for _, f := range files {
			if f.IsDir() || !supportedExtensions[strings.ToLower(filepath.Ext(f.Name()))] {
				continue
			}
			areas[area] = append(areas[area], filepath.Join(path, f.Name()))
		}
	}

	for area := range areas {
		sort.Strings(areas[area])
	}
	return areas, nil
}

// NormalizeArea lowercases an area name and squashes spaces so folder
// names and caller-supplied scopes compare equal.
func NormalizeArea(area string) string {
	area = strings.ToLower(strings.TrimSpace(area))
	return strings.ReplaceAll(area, " ", "_")
}

// ReadDocumentText loads a file's text content, stripping markup from
// HTML files.
func ReadDocumentText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ExtractHTMLText(string(data))
	default:
		return string(data), nil
	}
}

// CorpusTree renders areas and their documents as a tree for the
// post-ingest summary log.
func CorpusTree(areas map[string][]string) string {
	tree := treeprint.New()
	tree.SetValue("corpus")

	names := make([]string, 0, len(areas))
	for area := range areas {
		names = append(names, area)
	}
	sort.Strings(names)

	for _, area := range names {
		branch := tree.AddBranch(area)
		for _, path := range areas[area] {
			branch.AddNode(filepath.Base(path))
		}
	}
	return tree.String()
}
