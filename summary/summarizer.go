// Package summary provides an extractive implementation of
// locket.Summarizer. It cleans article markdown, segments it into
// sentences, filters out boilerplate and title echoes, and picks the first
// sentence that fits a 150-character budget.
package summary

import (
	"regexp"
	"strings"

	"github.com/fwojciec/locket"
)

const (
	// minContentLen is the minimum cleaned content length worth summarizing.
	minContentLen = 200

	// minSentenceLen filters out fragments and stray headers.
	minSentenceLen = 20

	// targetLength is the summary character budget.
	targetLength = 150

	// minTruncatedLen is the minimum acceptable length for a truncated
	// summary; shorter truncations are rejected and the scan continues.
	minTruncatedLen = 50

	// similarityThreshold rejects sentences that mostly restate the title.
	// The comparison is deliberately strict: a sentence at exactly 70%
	// similarity is kept.
	similarityThreshold = 70.0
)

// Ensure Summarizer implements locket.Summarizer at compile time.
var _ locket.Summarizer = (*Summarizer)(nil)

var (
	htmlTagRe       = regexp.MustCompile(`<[^>]*>`)
	mdRefLinkRe     = regexp.MustCompile(`\[\]\(#[^)]*\)`)
	mdHeaderRe      = regexp.MustCompile(`(?m)^#{1,6}\s+.*$`)
	mdUnderEqRe     = regexp.MustCompile(`(?m)^.+\n={3,}.*$`)
	mdUnderDashRe   = regexp.MustCompile(`(?m)^.+\n-{3,}.*$`)
	bareEqLineRe    = regexp.MustCompile(`(?m)^=+[ \t]*$`)
	bareDashLineRe  = regexp.MustCompile(`(?m)^-+[ \t]*$`)
	mdLinkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	fencedCodeRe    = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe    = regexp.MustCompile("`[^`]+`")
	leadingDateRe   = regexp.MustCompile(`(?i)^\s*\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{4}\s*`)
	blankRunRe      = regexp.MustCompile(`\n\s*\n`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// abbreviations are protected from being misread as sentence boundaries by
// substituting placeholder tokens before segmentation.
var abbreviations = []struct {
	re          *regexp.Regexp
	placeholder string
	canonical   string
}{
	{regexp.MustCompile(`(?i)\bA\.I\.`), "PLACEHOLDER_AI", "A.I."},
	{regexp.MustCompile(`(?i)\bU\.S\.`), "PLACEHOLDER_US", "U.S."},
	{regexp.MustCompile(`(?i)\bU\.K\.`), "PLACEHOLDER_UK", "U.K."},
	{regexp.MustCompile(`(?i)\bU\.N\.`), "PLACEHOLDER_UN", "U.N."},
	{regexp.MustCompile(`(?i)\bE\.U\.`), "PLACEHOLDER_EU", "E.U."},
	{regexp.MustCompile(`(?i)\bMr\.`), "PLACEHOLDER_MR", "Mr."},
	{regexp.MustCompile(`(?i)\bMs\.`), "PLACEHOLDER_MS", "Ms."},
	{regexp.MustCompile(`(?i)\bDr\.`), "PLACEHOLDER_DR", "Dr."},
}

// unwantedRes match boilerplate sentences: leading bare dates, blog
// navigation, bare years, and strings with no letters at all. Evaluated
// against lowercased sentences.
var unwantedRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{1,2}\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`),
	regexp.MustCompile(`^also on this blog`),
	regexp.MustCompile(`^fast[- ]forward to`),
	regexp.MustCompile(`^\d{4}$`),
	regexp.MustCompile(`^[^a-z]*$`),
}

// Summarizer derives a one-sentence extractive summary from article content.
type Summarizer struct{}

// NewSummarizer creates a new Summarizer.
func NewSummarizer() *Summarizer {
	return &Summarizer{}
}

// Summarize returns a short summary of content, or the empty string when no
// sentence qualifies. Content shorter than 200 characters after cleaning
// produces no summary.
func (s *Summarizer) Summarize(content, title string) (string, error) {
	cleaned := Clean(content, title)

	if len(cleaned) < minContentLen {
		return "", nil
	}

	sentences := splitSentences(protectAbbreviations(cleaned))
	for i, sentence := range sentences {
		sentences[i] = restoreAbbreviations(sentence)
	}

	for _, sentence := range sentences {
		sentence = strings.TrimSpace(sentence)

		if len(sentence) < minSentenceLen || isUnwanted(sentence, title) {
			continue
		}

		if len(sentence) <= targetLength {
			return sentence, nil
		}

		// Sentence is over budget; accumulate whole words up to the
		// budget minus room for the ellipsis.
		truncated := truncateAtWord(sentence, targetLength-3)
		if len(truncated) > minTruncatedLen {
			return truncated + "...", nil
		}
	}

	return "", nil
}

// Clean strips markup from content: HTML tags, markdown link and header
// syntax, code spans, a leading date prefix, and a leading occurrence of the
// title. Whitespace runs collapse to single spaces.
func Clean(content, title string) string {
	content = htmlTagRe.ReplaceAllString(content, "")
	content = mdRefLinkRe.ReplaceAllString(content, "")
	content = mdHeaderRe.ReplaceAllString(content, "")
	content = mdUnderEqRe.ReplaceAllString(content, "")
	content = mdUnderDashRe.ReplaceAllString(content, "")
	content = bareEqLineRe.ReplaceAllString(content, "")
	content = bareDashLineRe.ReplaceAllString(content, "")
	content = mdLinkRe.ReplaceAllString(content, "$1")
	content = fencedCodeRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = leadingDateRe.ReplaceAllString(content, "")

	if title != "" {
		titleRe, err := regexp.Compile(`(?i)^\s*` + regexp.QuoteMeta(title) + `\s*`)
		if err == nil {
			content = titleRe.ReplaceAllString(content, "")
		}
	}

	content = blankRunRe.ReplaceAllString(content, " ")
	content = whitespaceRunRe.ReplaceAllString(content, " ")

	return strings.TrimSpace(content)
}

func protectAbbreviations(s string) string {
	for _, abbr := range abbreviations {
		s = abbr.re.ReplaceAllString(s, abbr.placeholder)
	}
	return s
}

func restoreAbbreviations(s string) string {
	for _, abbr := range abbreviations {
		s = strings.ReplaceAll(s, abbr.placeholder, abbr.canonical)
	}
	return s
}

// splitSentences segments text by splitting after '.', '!' or '?' followed
// by whitespace. The terminator stays with its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0

	for i := 0; i < len(text)-1; i++ {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && isSpace(text[i+1]) {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isUnwanted reports whether a sentence should be skipped: near-duplicates
// of the title or known boilerplate patterns.
func isUnwanted(sentence, title string) bool {
	lower := strings.ToLower(strings.TrimSpace(sentence))
	titleLower := strings.ToLower(strings.TrimSpace(title))

	if titleLower != "" {
		if strings.Contains(lower, titleLower) {
			return true
		}
		if similarityPercent(lower, titleLower) > similarityThreshold {
			return true
		}
	}

	for _, re := range unwantedRes {
		if re.MatchString(lower) {
			return true
		}
	}

	return false
}

// truncateAtWord accumulates whole words while staying within max bytes.
func truncateAtWord(sentence string, max int) string {
	words := strings.Split(sentence, " ")
	var truncated string

	for _, word := range words {
		potential := word
		if truncated != "" {
			potential = truncated + " " + word
		}
		if len(potential) > max {
			break
		}
		truncated = potential
	}

	return truncated
}

// similarityPercent computes character-level similarity of two strings as a
// percentage: matching characters (longest-common-substring, recursively on
// both flanks) times two, over the combined length.
func similarityPercent(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	sim := similarChars(a, b)
	return float64(sim) * 200.0 / float64(len(a)+len(b))
}

func similarChars(a, b string) int {
	posA, posB, max := 0, 0, 0

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > max {
				max = k
				posA = i
				posB = j
			}
		}
	}

	if max == 0 {
		return 0
	}

	sum := max
	if posA > 0 && posB > 0 {
		sum += similarChars(a[:posA], b[:posB])
	}
	if posA+max < len(a) && posB+max < len(b) {
		sum += similarChars(a[posA+max:], b[posB+max:])
	}
	return sum
}
