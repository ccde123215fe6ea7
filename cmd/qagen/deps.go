package main

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/viant/afs"

	"github.com/qagen/qagen/internal/config"
	"github.com/qagen/qagen/internal/domain/patient"
)

// addressSource picks the pool named by ADDRESS_SOURCE.
func addressSource(cfg *config.Config, fs afs.Service) patient.AddressSource {
	switch cfg.AddressSource {
	case config.AddressEmbedded:
		return patient.StaticAddresses(patient.DefaultAddresses())
	case config.AddressFake:
		return patient.StaticAddresses(patient.FakeAddresses(gofakeit.New(cfg.RandomSeed), cfg.FakeAddressCount))
	default:
		return patient.NewAddressLoader(fs, cfg.AddressSource)
	}
}

// randomFactory returns a fresh Random per request. A non-zero seed makes
// every request draw the same sequence.
func randomFactory(seed int64) func() patient.Random {
	return func() patient.Random { return patient.NewRandom(seed) }
}
