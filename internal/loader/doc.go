// Package loader turns already-parsed documents into records.
//
// YAML mapping nodes keep their document order, so a record loaded here
// iterates in the order the keys were written. JSON is valid YAML and loads
// the same way. CUE shape files are compiled into record schemas.
//
// The package only reads. Records are never written back to files.
package loader
