// Package webcheck watches a registry of web pages for content changes.
// Each check cycle fetches every active page, extracts the monitored region,
// diffs it against the last observed content, and sends a notification and
// records the new content when something changed.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, diffmatchpatch/).
package webcheck
