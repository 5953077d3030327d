// ABOUTME: Visualization CLI commands
// ABOUTME: Handles graph generation and the project dashboard
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/stakeholdr/viz"
)

// VizGraphNetworkCommand generates the stakeholder relationship network.
func VizGraphNetworkCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz graph network", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	stakeholder := fs.String("stakeholder", "", "Center the graph on one stakeholder")
	anonymous := fs.Bool("anonymous", false, "Replace names with numbered placeholders")
	_ = fs.Parse(args)

	generator := viz.NewGraphGenerator(database)
	generator.SetAnonymous(*anonymous)

	var dot string
	var err error
	if *stakeholder != "" {
		target, findErr := findStakeholder(database, *stakeholder)
		if findErr != nil {
			return findErr
		}
		dot, err = generator.GenerateNetworkGraph(&target.ID)
	} else {
		dot, err = generator.GenerateNetworkGraph(nil)
	}
	if err != nil {
		return err
	}

	return writeGraph(dot, *output)
}

// VizGraphOrgchartCommand generates the reports_to hierarchy.
func VizGraphOrgchartCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz graph orgchart", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	anonymous := fs.Bool("anonymous", false, "Replace names with numbered placeholders")
	_ = fs.Parse(args)

	generator := viz.NewGraphGenerator(database)
	generator.SetAnonymous(*anonymous)

	dot, err := generator.GenerateOrgChart()
	if err != nil {
		return err
	}
	return writeGraph(dot, *output)
}

// VizGraphQuadrantCommand generates the influence/support quadrant chart.
func VizGraphQuadrantCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz graph quadrant", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default: stdout)")
	project := fs.String("project", "", "Project name (required)")
	anonymous := fs.Bool("anonymous", false, "Replace names with numbered placeholders")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	generator := viz.NewGraphGenerator(database)
	generator.SetAnonymous(*anonymous)

	dot, err := generator.GenerateQuadrantChart(p.ID)
	if err != nil {
		return err
	}
	return writeGraph(dot, *output)
}

// VizDashboardCommand prints the project health dashboard.
func VizDashboardCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("viz dashboard", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	stats, err := viz.GenerateDashboardStats(database, p.ID)
	if err != nil {
		return fmt.Errorf("failed to generate dashboard stats: %w", err)
	}

	fmt.Print(viz.RenderDashboard(stats))
	return nil
}

func writeGraph(dot, output string) error {
	if output != "" {
		return os.WriteFile(output, []byte(dot), 0644)
	}
	fmt.Println(dot)
	return nil
}
