// Package xwalk maps authored block markup into typed content nodes.
// A block is a markup subtree identified by its first class name; its rows
// are matched positionally against the fields of a component model taken
// from an externally supplied content schema, and repeating child rows are
// matched against every component a block's filter allows.
//
// This package contains domain types, interfaces and the pure parts of the
// engine (field planning, schema resolution, text normalization) following
// Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// etree/, bluemonday/).
package xwalk
