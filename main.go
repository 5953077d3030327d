// ABOUTME: Entry point for the stakeholdr CLI and MCP server
// ABOUTME: Routes to pm, assistant, viz, export, mcp, and tui commands
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"

	"github.com/harperreed/stakeholdr/cli"
	"github.com/harperreed/stakeholdr/db"
)

const version = "0.1.0"

func main() {
	// .env may carry STAKEHOLDR_OLLAMA_HOST / STAKEHOLDR_MODEL; absence is fine.
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/stakeholdr/stakeholdr.db)")
	initOnly := flag.Bool("init", false, "Initialize database and exit")
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("stakeholdr version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	finalDBPath := getDatabasePath(*dbPath)
	database, err := db.OpenDatabase(finalDBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()

	if *initOnly {
		log.Printf("Database initialized: %s", finalDBPath)
		os.Exit(0)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(database); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "pm":
		if len(commandArgs) == 0 {
			fmt.Println("Error: pm requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		runPM(database, commandArgs[0], commandArgs[1:])

	case "ask":
		if err := cli.AskCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "brief":
		if err := cli.BriefCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "blockers":
		if err := cli.BlockersCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "overdue":
		if err := cli.OverdueCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "viz":
		if len(commandArgs) == 0 {
			fmt.Println("Error: viz requires a subcommand")
			printUsage()
			os.Exit(1)
		}
		runViz(database, commandArgs[0], commandArgs[1:])

	case "export":
		if len(commandArgs) == 0 {
			fmt.Println("Error: export requires a format (json or csv)")
			printUsage()
			os.Exit(1)
		}
		switch commandArgs[0] {
		case "json":
			if err := cli.ExportJSONCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		case "csv":
			if err := cli.ExportCSVCommand(database, commandArgs[1:]); err != nil {
				log.Fatalf("Error: %v", err)
			}
		default:
			fmt.Printf("Unknown export format: %s\n\n", commandArgs[0])
			printUsage()
			os.Exit(1)
		}

	case "import":
		if err := cli.ImportCommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	case "tui":
		if err := cli.TUICommand(database, commandArgs); err != nil {
			log.Fatalf("Error: %v", err)
		}

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func runPM(database *sql.DB, subcommand string, args []string) {
	var err error
	switch subcommand {
	case "add-project":
		err = cli.AddProjectCommand(database, args)
	case "list-projects":
		err = cli.ListProjectsCommand(database, args)
	case "update-project":
		err = cli.UpdateProjectCommand(database, args)
	case "delete-project":
		err = cli.DeleteProjectCommand(database, args)

	case "add-stakeholder":
		err = cli.AddStakeholderCommand(database, args)
	case "list-stakeholders":
		err = cli.ListStakeholdersCommand(database, args)
	case "update-stakeholder":
		err = cli.UpdateStakeholderCommand(database, args)
	case "delete-stakeholder":
		err = cli.DeleteStakeholderCommand(database, args)
	case "assign":
		err = cli.AssignCommand(database, args)
	case "unassign":
		err = cli.UnassignCommand(database, args)
	case "history":
		err = cli.HistoryCommand(database, args)

	case "add-workstream":
		err = cli.AddWorkstreamCommand(database, args)
	case "list-workstreams":
		err = cli.ListWorkstreamsCommand(database, args)
	case "delete-workstream":
		err = cli.DeleteWorkstreamCommand(database, args)

	case "raci":
		err = cli.RACICommand(database, args)
	case "raci-matrix":
		err = cli.RACIMatrixCommand(database, args)
	case "raci-gaps":
		err = cli.RACIGapsCommand(database, args)

	case "comm-plan":
		err = cli.CommPlanCommand(database, args)
	case "list-comm-plans":
		err = cli.ListCommPlansCommand(database, args)

	case "log":
		err = cli.LogCommand(database, args)
	case "list-engagements":
		err = cli.ListEngagementsCommand(database, args)

	case "add-tag":
		err = cli.AddTagCommand(database, args)
	case "list-tags":
		err = cli.ListTagsCommand(database, args)
	case "tag":
		err = cli.TagCommand(database, args)
	case "delete-tag":
		err = cli.DeleteTagCommand(database, args)

	case "relate":
		err = cli.RelateCommand(database, args)
	case "list-relationships":
		err = cli.ListRelationshipsCommand(database, args)
	case "delete-relationship":
		err = cli.DeleteRelationshipCommand(database, args)

	default:
		fmt.Printf("Unknown pm command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runViz(database *sql.DB, subcommand string, args []string) {
	var err error
	switch subcommand {
	case "graph":
		if len(args) == 0 {
			fmt.Println("Error: viz graph requires a type (network, orgchart, or quadrant)")
			printUsage()
			os.Exit(1)
		}
		graphType := args[0]
		graphArgs := args[1:]
		switch graphType {
		case "network":
			err = cli.VizGraphNetworkCommand(database, graphArgs)
		case "orgchart":
			err = cli.VizGraphOrgchartCommand(database, graphArgs)
		case "quadrant":
			err = cli.VizGraphQuadrantCommand(database, graphArgs)
		default:
			fmt.Printf("Unknown graph type: %s\n\n", graphType)
			printUsage()
			os.Exit(1)
		}
	case "dashboard":
		err = cli.VizDashboardCommand(database, args)
	default:
		fmt.Printf("Unknown viz command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func getDatabasePath(dbPath string) string {
	if dbPath != "" {
		return dbPath
	}
	return filepath.Join(xdg.DataHome, "stakeholdr", "stakeholdr.db")
}

func printUsage() {
	fmt.Printf(`stakeholdr v%s - Stakeholder relationship manager for program managers

USAGE:
  stakeholdr [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/stakeholdr/stakeholdr.db)
  --init                 Initialize database and exit

COMMANDS:
  mcp                    Start MCP server for Claude Desktop
  pm                     Project and stakeholder management commands
  ask                    Ask the assistant a question
  brief                  Generate a meeting brief for a stakeholder
  blockers               List potential blockers
  overdue                List stakeholders overdue for contact
  viz                    Visualization commands
  export                 Export a project (json or csv)
  import                 Import stakeholders (csv) or a project snapshot (json)
  tui                    Interactive chat interface

PM COMMANDS:
  stakeholdr pm add-project        --name "..." [--description ...] [--status active]
  stakeholdr pm list-projects
  stakeholdr pm update-project     --project "..." [--name ...] [--status ...]
  stakeholdr pm delete-project     --project "..."

  stakeholdr pm add-stakeholder    --name "..." [--title ...] [--department ...]
                                   [--influence high|medium|low]
                                   [--support champion|supporter|neutral|resistant]
                                   [--project "..."] [--function ...]
  stakeholdr pm list-stakeholders  [--project "..."] [--query ...]
  stakeholdr pm update-stakeholder --name "..." [--influence ...] [--support ...]
  stakeholdr pm delete-stakeholder --name "..."
  stakeholdr pm assign             --project "..." --stakeholder "..." [--function ...]
  stakeholdr pm unassign           --project "..." --stakeholder "..."
  stakeholdr pm history            --stakeholder "..."

  stakeholdr pm add-workstream     --project "..." --name "..."
  stakeholdr pm list-workstreams   --project "..."
  stakeholdr pm delete-workstream  --project "..." --name "..."

  stakeholdr pm raci               --project "..." --stakeholder "..." --workstream "..." --role R|A|C|I
  stakeholdr pm raci-matrix        --project "..."
  stakeholdr pm raci-gaps          --project "..."

  stakeholdr pm comm-plan          --project "..." --stakeholder "..." --channel email --frequency weekly
  stakeholdr pm list-comm-plans    --project "..."

  stakeholdr pm log                --project "..." --stakeholder "..." --type meeting --summary "..."
  stakeholdr pm list-engagements   --project "..." [--stakeholder "..."]

  stakeholdr pm add-tag            --name "..." [--color "#6366f1"]
  stakeholdr pm list-tags
  stakeholdr pm tag                --stakeholder "..." --tag "..." [--remove]
  stakeholdr pm delete-tag         --name "..."

  stakeholdr pm relate             --from "..." --to "..." --type reports_to [--strength strong]
  stakeholdr pm list-relationships [--stakeholder "..."]
  stakeholdr pm delete-relationship <id>

ASSISTANT COMMANDS:
  stakeholdr ask --project "..." "who is responsible for design?"
  stakeholdr brief --project "..." "Dana"
  stakeholdr blockers --project "..."
  stakeholdr overdue --project "..."

VIZ COMMANDS:
  stakeholdr viz graph network   [--stakeholder "..."] [--anonymous] [--output file]
  stakeholdr viz graph orgchart  [--anonymous] [--output file]
  stakeholdr viz graph quadrant  --project "..." [--anonymous] [--output file]
  stakeholdr viz dashboard       --project "..."

EXPORT / IMPORT:
  stakeholdr export json --project "..." [--output file]
  stakeholdr export csv  --project "..." [--dir .]
  stakeholdr import --project "..." --file stakeholders.csv
  stakeholdr import --json --file project.json

EXAMPLES:
  # Create a project with stakeholders
  stakeholdr pm add-project --name "Platform Migration"
  stakeholdr pm add-stakeholder --name "Dana Torres" --title "VP Engineering" \
    --influence high --support champion --project "Platform Migration"

  # Set up the RACI matrix
  stakeholdr pm add-workstream --project "Platform Migration" --name "Design"
  stakeholdr pm raci --project "Platform Migration" --stakeholder "Dana" \
    --workstream "Design" --role A

  # Ask the assistant
  stakeholdr ask --project "Platform Migration" "who is accountable for design?"

`, version)
}
