// Package pagesift extracts structured content from web pages.
//
// A request names a page, a content type (text, image, link, card) and
// a strategy (keyword match, exhaustive listing, repeating-card
// detection, or language-model topic resolution). The page is fetched
// exactly once per request and the selected strategy runs against the
// parsed document. Every strategy's raw output is normalized into a
// small set of canonical result shapes.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// gemini/, http/), orchestration in scrape/.
package pagesift
