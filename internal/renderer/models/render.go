package models

// ============================================================
// Render Model
// ============================================================

// Render is one file produced by the service.
type Render struct {
	ID        string  `json:"id"`
	Diagram   string  `json:"diagram"`
	Format    string  `json:"format"`
	Path      string  `json:"-"`
	SizeBytes int64   `json:"size_bytes"`
	DPI       float64 `json:"dpi"`
	CreatedAt string  `json:"created_at"`
}

// DiagramInfo describes a catalog entry.
type DiagramInfo struct {
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Formats     []string `json:"formats"`
}
