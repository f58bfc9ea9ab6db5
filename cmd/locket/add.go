package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/locket"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	doc := &locket.Document{
		URL:   c.URL,
		Title: c.Title,
		Tags:  parseTags(c.Tags),
	}

	if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added %s (%s)\n", doc.URL, doc.ID)

	// Enrich synchronously; the pipeline is absent in storage-only tests.
	if deps.Pipeline != nil {
		if err := deps.Pipeline.EnqueueDocument(doc.ID); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, "  Enriching...")
		deps.Pipeline.Wait()

		enriched, err := deps.Documents.FindDocumentByID(deps.Ctx, doc.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
			return err
		}
		printEnrichment(deps, enriched)
	}

	return nil
}

func printEnrichment(deps *Dependencies, doc *locket.Document) {
	if doc.Title != "" {
		fmt.Fprintf(deps.Stdout, "  Title:      %s\n", doc.Title)
	}
	if doc.Author != "" {
		fmt.Fprintf(deps.Stdout, "  Author:     %s\n", doc.Author)
	}
	if doc.Content != "" {
		fmt.Fprintf(deps.Stdout, "  Content:    %d bytes\n", len(doc.Content))
	}
	if doc.Summary != "" {
		fmt.Fprintf(deps.Stdout, "  Summary:    %s\n", doc.Summary)
	}
	if doc.Screenshot != "" {
		fmt.Fprintf(deps.Stdout, "  Screenshot: %s\n", doc.Screenshot)
	}
}

// parseTags splits a comma-separated tag list, dropping blanks.
func parseTags(s string) []string {
	var tags []string
	for _, tag := range strings.Split(s, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
