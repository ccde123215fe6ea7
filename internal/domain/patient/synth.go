package patient

import (
	"errors"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/pkg/sequence"
)

// Batch is one run of sequential identifiers.
type Batch struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	StartName string `json:"start_name" yaml:"start_name"`
	Count     int    `json:"count" yaml:"count"`
}

// Record is a generated identity with sampled demographics. Ordinal stays
// local to the batch the record came from.
type Record struct {
	sequence.Identity
	Address Address `json:"address"`
	Gender  Gender  `json:"gender"`
	DOB     string  `json:"dob"`
}

// Synthesize expands each batch into records, in batch order then sequence
// order. The first failing batch aborts the run.
func Synthesize(batches []Batch, pool []Address, rnd Random) ([]Record, error) {
	var out []Record
	for _, b := range batches {
		ids, err := sequence.Generate(b.StartName, b.Count)
		if err != nil {
			return nil, classify(err)
		}
		for _, id := range ids {
			out = append(out, Record{
				Identity: id,
				Address:  SampleAddress(pool, rnd),
				Gender:   RandomGender(rnd),
				DOB:      RandomDateOfBirth(rnd),
			})
		}
	}
	return out, nil
}

func classify(err error) error {
	var oe *sequence.OverflowError
	if errors.As(err, &oe) {
		return apperr.Overflow(err, oe.Start, oe.Generated)
	}
	return apperr.WrapValidation(err)
}
