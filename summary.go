package locket

// Summarizer derives a short extractive summary from article content.
type Summarizer interface {
	// Summarize returns a one-sentence summary of content. The title, when
	// known, is used to strip a leading title echo and to reject sentences
	// that merely restate it. An empty return with nil error means no
	// sentence qualified; that is a valid no-op outcome.
	Summarize(content, title string) (string, error)
}
