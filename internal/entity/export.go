package entity

import "time"

// LibraryExport is the JSON document written to object storage by an export.
type LibraryExport struct {
	Version    int                     `json:"version"`
	ExportedAt time.Time               `json:"exported_at"`
	Owner      UserSummary             `json:"owner"`
	Categories []Category              `json:"categories"`
	Templates  []LibraryExportTemplate `json:"templates"`
}

type LibraryExportTemplate struct {
	Name       string   `json:"name"`
	Content    string   `json:"content"`
	Type       *string  `json:"type"`
	UsageCount int64    `json:"usage_count"`
	Categories []string `json:"categories"`
}

type ExportResponse struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	Templates int    `json:"templates"`
}
