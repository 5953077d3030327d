// ABOUTME: Session-scoped name anonymizer for screen-shareable graphs
// ABOUTME: Maps each real name to a stable "Stakeholder #n" label
package viz

import "strconv"

// Anonymizer replaces stakeholder names with numbered placeholders. The same
// name always gets the same label within one Anonymizer, so edges in a graph
// stay consistent. Not safe for concurrent use.
type Anonymizer struct {
	labels map[string]string
	next   int
}

func NewAnonymizer() *Anonymizer {
	return &Anonymizer{labels: make(map[string]string), next: 1}
}

// Label returns the placeholder for name, minting one on first sight. When a
// job title is supplied the label keeps it, since titles are the useful part
// of a graph shared outside the team.
func (a *Anonymizer) Label(name, title string) string {
	if label, ok := a.labels[name]; ok {
		return label
	}
	label := anonymousLabel(a.next, title)
	a.labels[name] = label
	a.next++
	return label
}

// Reset clears the session so the next graph numbers from one again.
func (a *Anonymizer) Reset() {
	a.labels = make(map[string]string)
	a.next = 1
}

func anonymousLabel(n int, title string) string {
	if title != "" {
		return title + " (Stakeholder #" + strconv.Itoa(n) + ")"
	}
	return "Stakeholder #" + strconv.Itoa(n)
}
