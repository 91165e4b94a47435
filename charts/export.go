package charts

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/vizboard/vizboard/consts"
)

// ChartEntry is the JSON form of one rendered view.
type ChartEntry struct {
	ID      string         `json:"id"`
	Status  string         `json:"status"`
	Title   string         `json:"title"`
	Message string         `json:"message,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// Entries converts rendered views to their JSON form, keeping page order.
func Entries(rendered []Rendered) []ChartEntry {
	entries := make([]ChartEntry, len(rendered))
	for i, r := range rendered {
		entries[i] = ChartEntry{ID: string(r.Kind), Status: r.Status, Title: r.Title, Message: r.Message}
		if r.Chart != nil {
			r.Chart.Validate()
			entries[i].Options = r.Chart.JSON()
		}
	}
	return entries
}

// Document wraps the entries with metadata.
type Document struct {
	LastUpdated string       `json:"lastUpdated"`
	Charts      []ChartEntry `json:"charts"`
}

func NewDocument(rendered []Rendered) Document {
	return Document{
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
		Charts:      Entries(rendered),
	}
}

// ExportJSON writes the chart document to outputDir and returns its path.
func ExportJSON(outputDir string, rendered []Rendered) (string, error) {
	data, err := json.MarshalIndent(NewDocument(rendered), "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, consts.DirPermissions); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, consts.ChartsJSONFile)
	if err := os.WriteFile(outputPath, data, consts.FilePermissions); err != nil {
		return "", err
	}
	slog.Info("Exported charts", "path", outputPath)
	return outputPath, nil
}

// ExportHTML renders the page to outputDir and returns its path.
func ExportHTML(outputDir string, rendered []Rendered) (string, error) {
	if err := os.MkdirAll(outputDir, consts.DirPermissions); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	outputPath := filepath.Join(outputDir, consts.ChartsHTMLFile)
	f, err := os.OpenFile(outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, consts.FilePermissions)
	if err != nil {
		return "", err
	}
	if err := NewPage(rendered).Render(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("rendering page: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	slog.Info("Exported page", "path", outputPath)
	return outputPath, nil
}
