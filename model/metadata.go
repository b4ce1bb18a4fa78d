package model

// Metadata contains document-level information read from the container's
// core properties, carried through to the output document catalog.
type Metadata struct {
	Title   string
	Author  string
	Subject string
	Creator string // producing application
}
