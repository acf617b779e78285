package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/genzclient/internal/client/api"
)

type fakeAuth struct {
	LoginResp    *api.AuthResponse
	RegisterResp *api.AuthResponse
	RefreshResp  *api.AuthResponse
	Err          error

	LastLogin    *api.LoginRequest
	LastRegister *api.RegisterRequest
	RefreshCalls int
}

func (f *fakeAuth) Login(_ context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	f.LastLogin = &req
	if f.Err != nil {
		return nil, f.Err
	}
	return f.LoginResp, nil
}

func (f *fakeAuth) Register(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	f.LastRegister = &req
	if f.Err != nil {
		return nil, f.Err
	}
	return f.RegisterResp, nil
}

func (f *fakeAuth) Refresh(context.Context) (*api.AuthResponse, error) {
	f.RefreshCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.RefreshResp, nil
}

type fakeProfiles struct {
	Profile *api.Profile
	Err     error
	Calls   int
}

func (f *fakeProfiles) Me(context.Context) (*api.Profile, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Profile, nil
}

type memSlot struct {
	mu       sync.Mutex
	data     map[string][]byte
	GetErr   error
	SetErr   error
	DelErr   error
	SetCalls int
}

func newMemSlot() *memSlot {
	return &memSlot{data: map[string][]byte{}}
}

func (m *memSlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.data[key], nil
}

func (m *memSlot) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetErr != nil {
		return m.SetErr
	}
	m.data[key] = value
	return nil
}

func (m *memSlot) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DelErr != nil {
		return m.DelErr
	}
	delete(m.data, key)
	return nil
}

var errBoom = errors.New("boom")
