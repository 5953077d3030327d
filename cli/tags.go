// ABOUTME: Tag CLI commands
// ABOUTME: Commands for creating tags and labeling stakeholders
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/harperreed/stakeholdr/db"
	"github.com/harperreed/stakeholdr/models"
)

// AddTagCommand creates a tag.
func AddTagCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-tag", flag.ExitOnError)
	name := fs.String("name", "", "Tag name (required)")
	color := fs.String("color", "", "Hex color (default #6366f1)")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	tag := &models.Tag{Name: *name, Color: *color}
	if err := db.CreateTag(database, tag); err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}

	fmt.Printf("✓ Tag created: %s (%s)\n", tag.Name, tag.Color)
	return nil
}

// ListTagsCommand lists all tags.
func ListTagsCommand(database *sql.DB, args []string) error {
	tags, err := db.ListTags(database)
	if err != nil {
		return fmt.Errorf("failed to list tags: %w", err)
	}
	if len(tags) == 0 {
		fmt.Println("No tags found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tCOLOR\tID")
	_, _ = fmt.Fprintln(w, "----\t-----\t--")
	for _, tag := range tags {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", tag.Name, tag.Color, tag.ID)
	}
	return w.Flush()
}

// TagCommand attaches a tag to a stakeholder, or detaches it with --remove.
func TagCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	stakeholder := fs.String("stakeholder", "", "Stakeholder name or fragment (required)")
	tagName := fs.String("tag", "", "Tag name (required)")
	remove := fs.Bool("remove", false, "Detach the tag instead of attaching it")
	_ = fs.Parse(args)

	target, err := findStakeholder(database, *stakeholder)
	if err != nil {
		return err
	}

	tag, err := db.FindTagByName(database, *tagName)
	if err != nil {
		return fmt.Errorf("failed to lookup tag: %w", err)
	}
	if tag == nil {
		return fmt.Errorf("tag not found: %s (try 'stakeholdr pm add-tag')", *tagName)
	}

	if *remove {
		if err := db.UntagStakeholder(database, target.ID, tag.ID); err != nil {
			return fmt.Errorf("failed to remove tag: %w", err)
		}
		fmt.Printf("✓ Removed tag %s from %s\n", tag.Name, target.Name)
		return nil
	}

	if err := db.TagStakeholder(database, target.ID, tag.ID); err != nil {
		return fmt.Errorf("failed to tag stakeholder: %w", err)
	}
	fmt.Printf("✓ Tagged %s with %s\n", target.Name, tag.Name)
	return nil
}

// DeleteTagCommand deletes a tag and all its stakeholder links.
func DeleteTagCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-tag", flag.ExitOnError)
	name := fs.String("name", "", "Tag name (required)")
	_ = fs.Parse(args)

	tag, err := db.FindTagByName(database, *name)
	if err != nil {
		return fmt.Errorf("failed to lookup tag: %w", err)
	}
	if tag == nil {
		return fmt.Errorf("tag not found: %s", *name)
	}

	if err := db.DeleteTag(database, tag.ID); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}

	fmt.Printf("✓ Tag deleted: %s\n", tag.Name)
	return nil
}
