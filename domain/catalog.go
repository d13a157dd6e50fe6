package domain

// CatalogItem is a read-only snapshot of a commerce-platform product,
// flattened for prompt building and image lookups.
type CatalogItem struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     int64    `json:"price"`
	Stock     int      `json:"stock"`
	Tags      []string `json:"tags"`
	Images    []string `json:"images"`
	MainImage string   `json:"mainImage,omitempty"`
}
