package patient

import (
	"io"
	"strings"
)

func stringsReader(s string) io.Reader { return strings.NewReader(s) }

// seqRandom replays fixed values, cycling when exhausted. Each value is
// reduced modulo n.
type seqRandom struct {
	vals []int
	i    int
}

func (r *seqRandom) IntN(n int) int {
	if len(r.vals) == 0 || n <= 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

var testPool = []Address{
	{Street: "100 Glacier Ave", City: "JUNEAU", State: "ak", Zip: "501"},
	{Street: "200 Harbor Dr", City: "SITKA", State: "AK", Zip: "99835"},
}
