// Package locket provides a local read-later tool. It saves URLs as
// documents and enriches them in the background: page metadata, readable
// article content as markdown, a headless-browser screenshot, and a short
// extractive summary.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, rod/).
package locket
