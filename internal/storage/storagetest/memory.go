// Package storagetest provides an in-memory store for tests of packages
// built on top of storage.
package storagetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/mohit-756/interview-bot/internal/models"
	"github.com/mohit-756/interview-bot/internal/storage"
)

// Memory is an in-process store with the same not-found and duplicate
// semantics as storage.DB.
type Memory struct {
	mu         sync.Mutex
	users      map[string]*models.User
	jds        []*models.JDConfig
	candidates []*models.Candidate
	updates    int
}

// NewMemory returns an empty store
func NewMemory() *Memory {
	return &Memory{users: make(map[string]*models.User)}
}

func cloneCandidate(c *models.Candidate) *models.Candidate {
	out := *c
	out.Questions = append([]string{}, c.Questions...)
	out.Answers = append([]models.Answer{}, c.Answers...)
	return &out
}

func (m *Memory) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return storage.ErrDuplicate
	}
	u.ID = int64(len(m.users) + 1)
	u.CreatedAt = time.Now()
	stored := *u
	m.users[u.Email] = &stored
	return nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *Memory) CreateJDConfig(_ context.Context, jd *models.JDConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	jd.ID = int64(len(m.jds) + 1)
	stored := *jd
	m.jds = append(m.jds, &stored)
	return nil
}

func (m *Memory) GetJDConfig(_ context.Context, id int64) (*models.JDConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, jd := range m.jds {
		if jd.ID == id {
			out := *jd
			return &out, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *Memory) LatestJDConfig(_ context.Context) (*models.JDConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.jds) == 0 {
		return nil, storage.ErrNotFound
	}
	out := *m.jds[len(m.jds)-1]
	return &out, nil
}

func (m *Memory) ListJDConfigs(_ context.Context) ([]*models.JDConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.JDConfig, 0, len(m.jds))
	for i := len(m.jds) - 1; i >= 0; i-- {
		jd := *m.jds[i]
		out = append(out, &jd)
	}
	return out, nil
}

func (m *Memory) CreateCandidate(_ context.Context, c *models.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.candidates {
		if existing.Email == c.Email {
			return storage.ErrDuplicate
		}
	}
	c.ID = int64(len(m.candidates) + 1)
	c.CreatedAt = time.Now()
	m.candidates = append(m.candidates, cloneCandidate(c))
	return nil
}

func (m *Memory) find(match func(*models.Candidate) bool) (*models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.candidates {
		if match(c) {
			return cloneCandidate(c), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *Memory) GetCandidate(_ context.Context, id int64) (*models.Candidate, error) {
	return m.find(func(c *models.Candidate) bool { return c.ID == id })
}

func (m *Memory) GetCandidateByEmail(_ context.Context, email string) (*models.Candidate, error) {
	return m.find(func(c *models.Candidate) bool { return c.Email == email })
}

func (m *Memory) GetCandidateByToken(_ context.Context, token string) (*models.Candidate, error) {
	if token == "" {
		return nil, storage.ErrNotFound
	}
	return m.find(func(c *models.Candidate) bool { return c.InterviewToken == token })
}

func (m *Memory) ListCandidates(_ context.Context) ([]*models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.Candidate, 0, len(m.candidates))
	for _, c := range m.candidates {
		out = append(out, cloneCandidate(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *Memory) UpdateCandidate(_ context.Context, c *models.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.candidates {
		if existing.ID == c.ID {
			m.candidates[i] = cloneCandidate(c)
			m.updates++
			return nil
		}
	}
	return storage.ErrNotFound
}

// Updates reports how many times UpdateCandidate succeeded
func (m *Memory) Updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updates
}
