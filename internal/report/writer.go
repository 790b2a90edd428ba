package report

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidName marks report names that do not look like report filenames.
var ErrInvalidName = errors.New("report: invalid report name")

// Writer emits one HTML report per batch into a single output directory and
// maintains the index page that drives the selection menu.
type Writer struct {
	dir string
}

// NewWriter creates the output directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: create output dir %q: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// Write stores one batch report under "<region>-<n>.html". n starts at the
// count of reports already present for the region and is bumped until the
// name is free, so an existing report is never overwritten. The chosen
// filename is returned.
func (w *Writer) Write(region string, body []byte) (string, error) {
	existing, err := filepath.Glob(filepath.Join(w.dir, region+"-*.html"))
	if err != nil {
		return "", fmt.Errorf("report: list existing reports for %q: %w", region, err)
	}

	n := len(existing)
	name := fmt.Sprintf("%s-%d.html", region, n)
	for {
		if _, err := os.Stat(filepath.Join(w.dir, name)); os.IsNotExist(err) {
			break
		}
		n++
		name = fmt.Sprintf("%s-%d.html", region, n)
	}

	if err := os.WriteFile(filepath.Join(w.dir, name), body, 0o644); err != nil {
		return "", fmt.Errorf("report: write %q: %w", name, err)
	}

	return name, nil
}

// List returns every report filename in lexical order, index excluded.
func (w *Writer) List() ([]string, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return nil, fmt.Errorf("report: read output dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".html") || name == "index.html" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the body of one previously written report.
func (w *Writer) Read(name string) ([]byte, error) {
	if name != filepath.Base(name) || !strings.HasSuffix(name, ".html") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	body, err := os.ReadFile(filepath.Join(w.dir, name))
	if err != nil {
		return nil, fmt.Errorf("report: read %q: %w", name, err)
	}
	return body, nil
}

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<link rel="stylesheet" href="css/styles.css">
<script src="js/store.locator.js"></script>
<title>{{.Title}}</title>
</head>
<body>
<div id="menuBox">
<select name="stateSelector" id="stateSelector">
{{- range .Entries}}
<option value="{{.File}}">{{.Label}}</option>
{{- end}}
</select>
<button id="stateSelectorButton">Submit</button>
</div>
<div id="contentArea">
<iframe id="googleMapBox">
</iframe>
</div>
</body>
</html>
`

type indexEntry struct {
	File  string
	Label string
}

// WriteIndex regenerates index.html from the reports currently on disk,
// listed in lexical order. The "-0" suffix of a region's first report is
// collapsed to the bare region name in the menu.
func (w *Writer) WriteIndex(title string) error {
	names, err := w.List()
	if err != nil {
		return err
	}

	entries := make([]indexEntry, 0, len(names))
	for _, name := range names {
		label := strings.TrimSuffix(name, ".html")
		if first, ok := strings.CutSuffix(label, "-0"); ok {
			label = first
		}
		entries = append(entries, indexEntry{File: name, Label: label})
	}

	tpl := template.Must(template.New("index").Parse(indexTemplate))

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, struct {
		Title   string
		Entries []indexEntry
	}{Title: title, Entries: entries}); err != nil {
		return fmt.Errorf("report: render index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(w.dir, "index.html"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: write index: %w", err)
	}

	return nil
}
