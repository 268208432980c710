// Package lessonfetch turns web pages into language-learning lessons.
// It fetches a page, strips boilerplate, extracts the main readable
// content (by heuristic scoring or explicit CSS selectors), and imports
// the result as a lesson into LingQ, archiving artifacts locally.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package lessonfetch
