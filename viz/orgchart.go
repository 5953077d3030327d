// ABOUTME: Org chart generation from reports_to relationships
// ABOUTME: Renders the reporting hierarchy top-down as graphviz DOT
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

// GenerateOrgChart renders the reporting hierarchy built from reports_to
// relationships. Edges point from report to manager; rankdir flips the
// drawing so managers sit on top.
func (g *GraphGenerator) GenerateOrgChart() (string, error) {
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

	graph.SetLabel("Org Chart")
	graph.SetRankDir(cgraph.BTRank)

	relationships, err := db.ListRelationships(g.db)
	if err != nil {
		return "", fmt.Errorf("failed to fetch relationships: %w", err)
	}

	nodes := make(map[string]*cgraph.Node)
	for _, rel := range relationships {
		if rel.Type != models.RelationReportsTo {
			continue
		}

		report, err := g.orgNode(graph, nodes, rel.FromStakeholderID.String(), rel.FromName)
		if err != nil {
			return "", err
		}
		manager, err := g.orgNode(graph, nodes, rel.ToStakeholderID.String(), rel.ToName)
		if err != nil {
			return "", err
		}

		if _, err := graph.CreateEdgeByName("reports_to", report, manager); err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func (g *GraphGenerator) orgNode(graph *cgraph.Graph, nodes map[string]*cgraph.Node, id, name string) (*cgraph.Node, error) {
	if n, ok := nodes[id]; ok {
		return n, nil
	}

	title := ""
	if parsed, err := uuid.Parse(id); err == nil {
		if s, err := db.GetStakeholder(g.db, parsed); err == nil && s != nil {
			title = s.JobTitle
		}
	}

	label := g.displayName(name, title)
	if title != "" && g.anon == nil {
		label = fmt.Sprintf("%s\n%s", name, title)
	}

	n, err := graph.CreateNodeByName(label)
	if err != nil {
		return nil, fmt.Errorf("failed to create node: %w", err)
	}
	n.SetShape("box")
	n.SetStyle("filled")
	n.SetFillColor("lightyellow")
	nodes[id] = n
	return n, nil
}
