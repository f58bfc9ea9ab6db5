package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/locket"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "ID:         %s\n", doc.ID)
	fmt.Fprintf(deps.Stdout, "URL:        %s\n", doc.URL)
	fmt.Fprintf(deps.Stdout, "Title:      %s\n", doc.Title)
	fmt.Fprintf(deps.Stdout, "Author:     %s\n", doc.Author)
	if doc.PublishedAt != nil {
		fmt.Fprintf(deps.Stdout, "Published:  %s\n", doc.PublishedAt.Format("2006-01-02"))
	}
	fmt.Fprintf(deps.Stdout, "Source:     %s\n", doc.Source)
	if len(doc.Tags) > 0 {
		fmt.Fprintf(deps.Stdout, "Tags:       %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Summary != "" {
		fmt.Fprintf(deps.Stdout, "Summary:    %s\n", doc.Summary)
	}
	if doc.Screenshot != "" {
		fmt.Fprintf(deps.Stdout, "Screenshot: %s\n", doc.Screenshot)
	}
	fmt.Fprintf(deps.Stdout, "Saved:      %s\n", doc.CreatedAt.Format(time.RFC3339))

	if c.Content {
		if doc.Content == "" {
			fmt.Fprintln(deps.Stdout, "\n(no extracted content)")
		} else {
			fmt.Fprintf(deps.Stdout, "\n%s\n", doc.Content)
		}
	}

	return nil
}
