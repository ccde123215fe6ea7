// Package artifact assembles generated content into a single downloadable
// blob. ZIP archives and XLSX workbooks are both produced through Builder so
// callers handle them the same way once built.
package artifact

import "errors"

var (
	ErrDuplicateEntry = errors.New("duplicate archive entry")
	ErrEmptyFileName  = errors.New("artifact file name is required")
	ErrInvalidEntry   = errors.New("invalid archive entry name")
)

const (
	MIMEZip  = "application/zip"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Artifact is an in-memory blob plus the hints a Saver needs to persist it.
type Artifact struct {
	FileName    string
	Description string
	MIMEType    string
	Extensions  []string
	Data        []byte
}

// Accept returns the MIME type to extension mapping offered to a save dialog.
func (a *Artifact) Accept() map[string][]string {
	return map[string][]string{a.MIMEType: a.Extensions}
}

// Size returns the blob length in bytes.
func (a *Artifact) Size() int { return len(a.Data) }

// Builder produces an Artifact from content accumulated by the caller.
type Builder interface {
	Build() (*Artifact, error)
}
