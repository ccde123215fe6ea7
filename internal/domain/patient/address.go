package patient

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/viant/afs"

	"github.com/qagen/qagen/internal/apperr"
)

var ErrAddressFormat = errors.New("invalid address data format")

//go:embed addresses_embedded.js
var embeddedAddresses []byte

// Address is one entry of the address pool. JSON keys follow the pool file.
type Address struct {
	Street string `json:"Address"`
	City   string `json:"City"`
	State  string `json:"State"`
	Zip    string `json:"Zip"`
}

// looseString accepts a JSON string or number.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	if string(b) == "null" {
		*s = ""
		return nil
	}
	*s = looseString(bytes.TrimSpace(b))
	return nil
}

type rawAddress struct {
	Address looseString `json:"Address"`
	City    looseString `json:"City"`
	State   looseString `json:"State"`
	Zip     looseString `json:"Zip"`
}

// ParseAddressScript extracts the JSON array between the first '[' and the
// last ']' of a script such as `window.ADDRESS_DATA = [...];`.
func ParseAddressScript(text []byte) ([]Address, error) {
	start := bytes.IndexByte(text, '[')
	end := bytes.LastIndexByte(text, ']')
	if start == -1 || end == -1 || end <= start {
		return nil, ErrAddressFormat
	}

	var raw []rawAddress
	if err := json.Unmarshal(text[start:end+1], &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressFormat, err)
	}
	out := make([]Address, len(raw))
	for i, r := range raw {
		out[i] = Address{
			Street: string(r.Address),
			City:   string(r.City),
			State:  string(r.State),
			Zip:    string(r.Zip),
		}
	}
	return out, nil
}

// DefaultAddresses returns the pool compiled into the binary.
func DefaultAddresses() []Address {
	pool, err := ParseAddressScript(embeddedAddresses)
	if err != nil {
		panic(fmt.Sprintf("embedded address pool: %v", err))
	}
	return pool
}

// FakeAddresses builds a pool of n synthetic addresses.
func FakeAddresses(f *gofakeit.Faker, n int) []Address {
	out := make([]Address, n)
	for i := range out {
		out[i] = Address{
			Street: f.Street(),
			City:   strings.ToUpper(f.City()),
			State:  f.StateAbr(),
			Zip:    f.Zip(),
		}
	}
	return out
}

// AddressSource provides the pool used by the synthesizer.
type AddressSource interface {
	Addresses(ctx context.Context) ([]Address, error)
}

// StaticAddresses serves a fixed pool.
type StaticAddresses []Address

func (s StaticAddresses) Addresses(context.Context) ([]Address, error) { return s, nil }

// AddressLoader downloads the pool from a URL on first use and keeps it for
// the life of the process. Failed loads are not cached.
type AddressLoader struct {
	fs  afs.Service
	url string

	mu   sync.Mutex
	pool []Address
}

// NewAddressLoader creates a loader for url. Any afs scheme is accepted.
func NewAddressLoader(fs afs.Service, url string) *AddressLoader {
	return &AddressLoader{fs: fs, url: url}
}

func (l *AddressLoader) Addresses(ctx context.Context) ([]Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pool != nil {
		return l.pool, nil
	}

	data, err := l.fs.DownloadWithURL(ctx, l.url)
	if err != nil {
		return nil, apperr.Environment("Failed to load address data", err)
	}
	pool, err := ParseAddressScript(data)
	if err != nil {
		return nil, apperr.Format("Failed to load address data", err)
	}
	l.pool = pool
	return pool, nil
}
