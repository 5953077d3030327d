// ABOUTME: Export and import CLI commands
// ABOUTME: JSON snapshots, CSV spreadsheets, and CSV stakeholder import
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harperreed/stakeholdr/db"
)

// ExportJSONCommand writes a full project snapshot as JSON.
func ExportJSONCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export json", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	output := fs.String("output", "", "Output file (default: stdout)")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		if err := db.WriteProjectJSON(database, p.ID, f); err != nil {
			return fmt.Errorf("failed to export project: %w", err)
		}
		fmt.Printf("✓ Exported %s to %s\n", p.Name, *output)
		return nil
	}

	return db.WriteProjectJSON(database, p.ID, os.Stdout)
}

// ExportCSVCommand writes stakeholder, RACI, and comm-plan spreadsheets into
// a directory.
func ExportCSVCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export csv", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required)")
	dir := fs.String("dir", ".", "Output directory")
	_ = fs.Parse(args)

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	files := []struct {
		filename string
		write    func(*os.File) error
	}{
		{"stakeholders.csv", func(f *os.File) error { return db.WriteStakeholdersCSV(database, p.ID, f) }},
		{"raci.csv", func(f *os.File) error { return db.WriteRACICSV(database, p.ID, f) }},
		{"comm_plans.csv", func(f *os.File) error { return db.WriteCommPlansCSV(database, p.ID, f) }},
	}

	for _, out := range files {
		path := filepath.Join(*dir, out.filename)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := out.write(f); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", path, err)
		}
		fmt.Printf("✓ Wrote %s\n", path)
	}
	return nil
}

// ImportCommand reads stakeholders from CSV, or a full project snapshot from
// JSON with --json.
func ImportCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	project := fs.String("project", "", "Project name (required for CSV import)")
	file := fs.String("file", "", "Input file (required)")
	asJSON := fs.Bool("json", false, "Import a full project JSON snapshot")
	_ = fs.Parse(args)

	if *file == "" {
		return fmt.Errorf("--file is required")
	}

	f, err := os.Open(*file)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	if *asJSON {
		imported, err := db.ReadProjectJSON(database, f)
		if err != nil {
			return fmt.Errorf("failed to import project: %w", err)
		}
		fmt.Printf("✓ Imported project: %s (ID: %s)\n", imported.Name, imported.ID)
		return nil
	}

	p, err := resolveProject(database, *project)
	if err != nil {
		return err
	}

	count, err := db.ImportStakeholdersCSV(database, p.ID, f)
	if err != nil {
		return fmt.Errorf("failed to import stakeholders: %w", err)
	}

	fmt.Printf("✓ Imported %d stakeholder(s) into %s\n", count, p.Name)
	return nil
}
