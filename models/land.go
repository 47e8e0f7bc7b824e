package models

// Land represents one German federal state as known to zvg-portal.de.
// Name is the portal's ASCII-normalized identifier (e.g. "Baden-Wuerttemberg"),
// DisplayName the human-readable form with umlauts, Short the portal's
// two-letter abbreviation. Values are built once at startup and never mutated.
type Land struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Short       string `json:"short"`
}
