// ABOUTME: Stakeholder relationship network graph generation
// ABOUTME: Renders typed, weighted relationship edges as graphviz DOT
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

// GenerateNetworkGraph renders the relationship network. With a stakeholder
// ID it shows that stakeholder's ego network; without one, every recorded
// relationship.
func (g *GraphGenerator) GenerateNetworkGraph(stakeholderID *uuid.UUID) (string, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLayout("neato")
	graph.SetLabel("Stakeholder Network")

	var relationships []models.RelationshipRow
	if stakeholderID != nil {
		relationships, err = db.ListRelationshipsByStakeholder(g.db, *stakeholderID)
	} else {
		relationships, err = db.ListRelationships(g.db)
	}
	if err != nil {
		return "", fmt.Errorf("failed to fetch relationships: %w", err)
	}

	nodes := make(map[string]*cgraph.Node)
	node := func(id uuid.UUID, name string) (*cgraph.Node, error) {
		if n, ok := nodes[id.String()]; ok {
			return n, nil
		}
		s, err := db.GetStakeholder(g.db, id)
		title := ""
		if err == nil && s != nil {
			title = s.JobTitle
		}
		n, err := graph.CreateNodeByName(g.displayName(name, title))
		if err != nil {
			return nil, err
		}
		n.SetShape("ellipse")
		n.SetStyle("filled")
		if s != nil {
			n.SetFillColor(supportColor(s.SupportLevel))
		}
		nodes[id.String()] = n
		return n, nil
	}

	for _, rel := range relationships {
		from, err := node(rel.FromStakeholderID, rel.FromName)
		if err != nil {
			return "", fmt.Errorf("failed to create node: %w", err)
		}
		to, err := node(rel.ToStakeholderID, rel.ToName)
		if err != nil {
			return "", fmt.Errorf("failed to create node: %w", err)
		}

		edge, err := graph.CreateEdgeByName(rel.Type, from, to)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(rel.Type)
		edge.SetPenWidth(strengthWidth(rel.Strength))
		if rel.Type == models.RelationAlliedWith || rel.Type == models.RelationConflictsWith {
			edge.SetDir("none")
		}
		if rel.Type == models.RelationConflictsWith {
			edge.SetColor("red")
			edge.SetStyle("dashed")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func supportColor(level string) string {
	switch level {
	case models.SupportChampion:
		return "palegreen"
	case models.SupportSupporter:
		return "lightblue"
	case models.SupportResistant:
		return "lightcoral"
	default:
		return "lightgray"
	}
}

func strengthWidth(strength string) float64 {
	switch strength {
	case models.StrengthStrong:
		return 3.0
	case models.StrengthModerate:
		return 2.0
	default:
		return 1.0
	}
}
