package main

import (
	"fmt"

	"github.com/fwojciec/locket"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := locket.DocumentFilter{Limit: c.Limit}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(deps.Stdout, "No documents found. Use 'locket add' to save one.")
		return nil
	}

	for _, d := range docs {
		title := d.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", d.ID, title, d.URL)
	}

	return nil
}
