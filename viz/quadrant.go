// ABOUTME: Influence/support quadrant chart generation
// ABOUTME: Pins stakeholders to fixed positions by influence and support level
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/google/uuid"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

// quadrantWidth and quadrantHeight scale the unit positions into graphviz
// point coordinates.
const (
	quadrantWidth  = 10.0
	quadrantHeight = 6.0
)

// QuadrantPosition maps support level to x and influence level to y on a
// unit square. Unknown levels land in the center.
func QuadrantPosition(influenceLevel, supportLevel string) (x, y float64) {
	switch supportLevel {
	case models.SupportChampion:
		x = 0.85
	case models.SupportSupporter:
		x = 0.7
	case models.SupportNeutral:
		x = 0.5
	case models.SupportResistant:
		x = 0.2
	default:
		x = 0.5
	}
	switch influenceLevel {
	case models.InfluenceHigh:
		y = 0.85
	case models.InfluenceMedium:
		y = 0.5
	case models.InfluenceLow:
		y = 0.15
	default:
		y = 0.5
	}
	return x, y
}

// GenerateQuadrantChart renders the project's stakeholders on an
// influence/support grid: champions top-right, high-influence resistors
// top-left.
func (g *GraphGenerator) GenerateQuadrantChart(projectID uuid.UUID) (string, error) {
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
	graph.SetLabel("Influence / Support Quadrant")

	stakeholders, err := db.ListProjectStakeholders(g.db, projectID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch stakeholders: %w", err)
	}

	for _, s := range stakeholders {
		node, err := graph.CreateNodeByName(g.displayName(s.Name, s.JobTitle))
		if err != nil {
			return "", fmt.Errorf("failed to create node: %w", err)
		}
		x, y := QuadrantPosition(s.InfluenceLevel, s.SupportLevel)
		node.SetPos(x*quadrantWidth, y*quadrantHeight)
		node.SetPin(true)
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor(supportColor(s.SupportLevel))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
