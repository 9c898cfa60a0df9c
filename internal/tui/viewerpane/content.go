package viewerpane

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/colonyops/shelf/internal/core/styles"
)

// readPages loads the viewable pages for a document locator.
//
// The processor leaves either a pages/ directory next to the document output
// (one markdown or text file per page, lexically ordered) or a single
// extracted-text file with form-feed page breaks. Markdown pages are
// rendered through glamour with the active theme.
func readPages(libraryDir, locator string) (string, []string, error) {
	docDir := filepath.Dir(filepath.Join(libraryDir, locator))
	title := filepath.Base(docDir)

	pagesDir := filepath.Join(docDir, "pages")
	if entries, err := os.ReadDir(pagesDir); err == nil && len(entries) > 0 {
		pages, err := readPageFiles(pagesDir, entries)
		if err != nil {
			return title, nil, err
		}
		return title, pages, nil
	}

	textFile := strings.TrimSuffix(filepath.Join(libraryDir, locator), filepath.Ext(locator)) + ".txt"
	data, err := os.ReadFile(textFile)
	if err != nil {
		return title, nil, fmt.Errorf("no pages dir and no extracted text for %s: %w", locator, err)
	}

	pages := strings.Split(string(data), "\f")
	if len(pages) == 0 {
		pages = []string{""}
	}
	return title, pages, nil
}

func readPageFiles(dir string, entries []os.DirEntry) ([]string, error) {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".md", ".txt":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("pages dir %s holds no readable pages", dir)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		return nil, fmt.Errorf("build markdown renderer: %w", err)
	}

	pages := make([]string, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", name, err)
		}

		content := string(data)
		if filepath.Ext(name) == ".md" {
			if rendered, err := renderer.Render(content); err == nil {
				content = rendered
			}
		}
		pages = append(pages, content)
	}

	return pages, nil
}
