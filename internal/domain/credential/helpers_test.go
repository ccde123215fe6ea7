package credential

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// mockCredentialRepo is an in-memory CredentialRepository.
type mockCredentialRepo struct {
	store []*Credential
	err   error
}

func newMockRepo() *mockCredentialRepo {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &mockCredentialRepo{store: []*Credential{
		{SerialNo: 1, User: "DBA", Environment: "Cert", Username: "TestDBA2", Password: "Cerner123", CreatedAt: created},
		{SerialNo: 2, User: "NP", Environment: "Cert", Username: "AUTONP1", Password: "Cerner1234", CreatedAt: created},
		{SerialNo: 3, User: "DBA", Environment: "Build", Username: "BuildDBA", Password: "Build123", CreatedAt: created},
	}}
}

func (m *mockCredentialRepo) Find(_ context.Context, user, environment string) (*Credential, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, c := range m.store {
		if strings.EqualFold(c.User, user) && strings.EqualFold(c.Environment, environment) {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockCredentialRepo) List(_ context.Context, environment string, limit, offset int) ([]*Credential, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var matched []*Credential
	for _, c := range m.store {
		if environment == "" || strings.EqualFold(c.Environment, environment) {
			matched = append(matched, c)
		}
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func newTestService() (*Service, *mockCredentialRepo) {
	repo := newMockRepo()
	return NewService(repo, zerolog.Nop()), repo
}
