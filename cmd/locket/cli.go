package main

import (
	"context"
	"io"

	"github.com/fwojciec/locket"
	"github.com/fwojciec/locket/pipeline"
	"github.com/fwojciec/locket/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Documents locket.DocumentService
	Pipeline  *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Add    AddCmd    `cmd:"" help:"Save a URL and enrich it"`
	List   ListCmd   `cmd:"" help:"List saved documents"`
	Show   ShowCmd   `cmd:"" help:"Show a saved document"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved document"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	URL          string `arg:"" help:"URL to save"`
	Title        string `short:"t" help:"Title override (page title is ignored)"`
	Tags         string `short:"T" help:"Comma-separated tags"`
	NoScreenshot bool   `help:"Skip the screenshot stage"`
	Verbose      bool   `short:"v" help:"Log enrichment progress"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Tag   string `help:"Only documents with this tag"`
	Limit int    `short:"n" help:"Maximum number of documents to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID      string `arg:"" help:"Document ID"`
	Content bool   `short:"c" help:"Print the extracted article content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Document ID"`
	Force bool   `help:"Confirm deletion"`
}
