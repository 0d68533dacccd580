// Package types defines the script record, the draft used to create and edit
// records, the Storage interface and the sentinel errors shared by the
// prompter packages.
package types
