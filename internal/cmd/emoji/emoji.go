// Package emoji holds the symbols printed by the CLI.
package emoji

// Status marks for alerts and per-source import rows.
const (
	Success = "✓"
	Error   = "✗"
	Warning = "!"
)

// Catalog marks.
const (
	// Favorite flags a favorite business in listings.
	Favorite = "★"

	// Star and EmptyStar draw review ratings, one symbol per point.
	Star      = "★"
	EmptyStar = "☆"
)
