package main

import (
	"fmt"

	"github.com/fwojciec/locket"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return locket.Errorf(locket.EINVALID, "use --force to confirm deletion")
	}

	doc, err := deps.Documents.FindDocumentByID(deps.Ctx, c.ID)
	if err != nil {
		if locket.ErrorCode(err) == locket.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'locket list' to see saved documents.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
		}
		return err
	}

	if err := deps.Documents.DeleteDocument(deps.Ctx, doc.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locket.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted %s\n", doc.URL)
	return nil
}
