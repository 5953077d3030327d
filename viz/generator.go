// ABOUTME: Graph generator shared state for stakeholder visualizations
// ABOUTME: Holds the database handle and optional anonymizer for renders
package viz

import "database/sql"

// GraphGenerator renders stakeholder data as graphviz DOT. When anon is
// non-nil, every stakeholder name is replaced by its anonymized label.
type GraphGenerator struct {
	db   *sql.DB
	anon *Anonymizer
}

func NewGraphGenerator(db *sql.DB) *GraphGenerator {
	return &GraphGenerator{db: db}
}

// SetAnonymous switches anonymous mode on or off. Turning it on starts a
// fresh numbering session.
func (g *GraphGenerator) SetAnonymous(on bool) {
	if on {
		g.anon = NewAnonymizer()
	} else {
		g.anon = nil
	}
}

func (g *GraphGenerator) displayName(name, title string) string {
	if g.anon == nil {
		return name
	}
	return g.anon.Label(name, title)
}
