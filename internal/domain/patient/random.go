package patient

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

// Random is the randomness strategy used for sampling. IntN returns a value
// in [0, n).
type Random interface {
	IntN(n int) int
}

type fakerRandom struct {
	f *gofakeit.Faker
}

// NewRandom returns a Random backed by gofakeit. Seed 0 draws a seed from
// crypto/rand.
func NewRandom(seed int64) Random {
	return fakerRandom{f: gofakeit.New(seed)}
}

func (r fakerRandom) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return r.f.Number(0, n-1)
}

// Gender is the administrative gender written to a record.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

var (
	dobStart = time.Date(1950, time.January, 1, 0, 0, 0, 0, time.UTC)
	dobEnd   = time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)
	dobDays  = int(dobEnd.Sub(dobStart).Hours()/24) + 1
)

const (
	zipWidth  = 5
	dobLayout = "01/02/2006"
)

// SampleAddress picks a pool entry uniformly, with replacement. An empty
// pool yields an Address with empty fields.
func SampleAddress(pool []Address, rnd Random) Address {
	if len(pool) == 0 {
		return Address{}
	}
	a := pool[rnd.IntN(len(pool))]
	return Address{
		Street: a.Street,
		City:   a.City,
		State:  strings.ToUpper(a.State),
		Zip:    padZip(a.Zip),
	}
}

func padZip(zip string) string {
	if zip == "" || len(zip) >= zipWidth {
		return zip
	}
	return strings.Repeat("0", zipWidth-len(zip)) + zip
}

// RandomGender picks Male or Female with equal probability.
func RandomGender(rnd Random) Gender {
	if rnd.IntN(2) == 0 {
		return Male
	}
	return Female
}

// RandomDateOfBirth picks a day between 1950-01-01 and 1999-12-31
// inclusive, formatted MM/DD/YYYY.
func RandomDateOfBirth(rnd Random) string {
	return dobStart.AddDate(0, 0, rnd.IntN(dobDays)).Format(dobLayout)
}
