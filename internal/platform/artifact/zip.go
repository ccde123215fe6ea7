package artifact

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"time"
)

// zipEpoch is stamped on every entry so identical input yields identical bytes.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Entry is one file inside an archive folder.
type Entry struct {
	Folder  string
	Name    string
	Content []byte
}

// Path returns the slash separated path of the entry inside the archive.
// Names are used verbatim; Add rejects any that would change the layout.
func (e Entry) Path() string {
	if e.Folder == "" {
		return e.Name
	}
	return e.Folder + "/" + e.Name
}

// validSegment reports whether s can be a single path element.
func validSegment(s string) bool {
	return s != "" && s != "." && !strings.ContainsAny(s, `/\`) && !strings.Contains(s, "..")
}

// ZipBuilder lays out folders and files in insertion order.
type ZipBuilder struct {
	fileName string
	folders  []string
	entries  []Entry
	seen     map[string]bool
}

// NewZip creates a builder whose archive contains the given top-level
// folders even when they end up empty.
func NewZip(fileName string, folders ...string) *ZipBuilder {
	return &ZipBuilder{
		fileName: fileName,
		folders:  folders,
		seen:     make(map[string]bool),
	}
}

// Add queues a file. Folder and name must each be a single path element
// without "..", and paths must be unique within the archive.
func (b *ZipBuilder) Add(folder, name string, content []byte) error {
	if !validSegment(name) || (folder != "" && !validSegment(folder)) {
		return fmt.Errorf("%w: %q in folder %q", ErrInvalidEntry, name, folder)
	}
	e := Entry{Folder: folder, Name: name, Content: content}
	p := e.Path()
	if b.seen[p] {
		return fmt.Errorf("%w: %s", ErrDuplicateEntry, p)
	}
	b.seen[p] = true
	b.entries = append(b.entries, e)
	return nil
}

// Entries returns the queued files.
func (b *ZipBuilder) Entries() []Entry { return b.entries }

// Build writes folder entries followed by file entries.
func (b *ZipBuilder) Build() (*Artifact, error) {
	if b.fileName == "" {
		return nil, ErrEmptyFileName
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, folder := range b.folders {
		hdr := &zip.FileHeader{Name: folder + "/", Method: zip.Store, Modified: zipEpoch}
		if _, err := zw.CreateHeader(hdr); err != nil {
			return nil, fmt.Errorf("create folder %s: %w", folder, err)
		}
	}

	for _, e := range b.entries {
		hdr := &zip.FileHeader{Name: e.Path(), Method: zip.Deflate, Modified: zipEpoch}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, fmt.Errorf("create entry %s: %w", e.Path(), err)
		}
		if _, err := w.Write(e.Content); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", e.Path(), err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}

	return &Artifact{
		FileName:    b.fileName,
		Description: "ZIP Archive",
		MIMEType:    MIMEZip,
		Extensions:  []string{".zip"},
		Data:        buf.Bytes(),
	}, nil
}
