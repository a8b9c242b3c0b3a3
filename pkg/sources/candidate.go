package sources

import (
	"github.com/agentstation/locallift/pkg/catalogs"
	"github.com/agentstation/locallift/pkg/normalize"
)

// Candidate is a business-like record produced by a source, not yet merged
// into the catalog.
type Candidate struct {
	ExternalID string            `json:"external_id"`
	Name       string            `json:"name"`
	Category   string            `json:"category"`
	Address    string            `json:"address"`
	Deal       string            `json:"deal"`
	Reviews    []catalogs.Review `json:"reviews"`
}

// ExternalID formats a source-local id as "<source>:<id>".
func ExternalID(source ID, localID string) string {
	return source.String() + ":" + localID
}

// Key returns the stable key of the candidate.
func (c Candidate) Key() string {
	return normalize.StableKey(c.Name, c.Address)
}

// Business converts the candidate into a catalog business with the given id.
func (c Candidate) Business(id int) catalogs.Business {
	reviews := make([]catalogs.Review, len(c.Reviews))
	copy(reviews, c.Reviews)
	return catalogs.Business{
		ID:         id,
		Name:       c.Name,
		Category:   c.Category,
		Address:    c.Address,
		Deal:       c.Deal,
		Reviews:    reviews,
		ExternalID: c.ExternalID,
	}
}
