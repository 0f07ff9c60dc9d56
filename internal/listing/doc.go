// Package listing is the table engine behind every admin list: an owned,
// copy-on-write record store plus the filter -> sort -> paginate pipeline that
// turns a snapshot and a set of controls into the rows to render.
//
// The engine is entity agnostic. Each table supplies a Config with accessor
// functions (identifier, searchable text, filter dimensions, sort keys) and the
// same code serves users, courses, products and transactions.
package listing
