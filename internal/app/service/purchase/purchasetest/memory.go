// Package purchasetest provides an in-memory purchase.Store for service and
// handler tests, with switches to inject failures.
package purchasetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/tool"
)

// ErrInjected is returned by operations whose Fail* switch is set.
var ErrInjected = errors.New("injected store failure")

type Memory struct {
	mu   sync.Mutex
	rows map[string]*models.Purchase

	FailFind    bool
	FailUpsert  bool
	FailDelete  bool
	FailReserve bool
	FailRelease bool
	FailMark    bool

	Calls []string
}

func NewMemory() *Memory {
	return &Memory{rows: map[string]*models.Purchase{}}
}

// Put stores a copy of p as-is.
func (m *Memory) Put(p *models.Purchase) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.Email = purchase.NormalizeEmail(cp.Email)
	if cp.ID == "" {
		cp.ID = tool.GenerateUUIDV7()
	}
	m.rows[cp.Email] = &cp
}

// Get returns a copy of the row, or nil.
func (m *Memory) Get(email string) *models.Purchase {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[purchase.NormalizeEmail(email)]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *Memory) record(call string) {
	m.Calls = append(m.Calls, call)
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("find")
	if m.FailFind {
		return nil, ErrInjected
	}
	p, ok := m.rows[purchase.NormalizeEmail(email)]
	if !ok {
		return nil, purchase.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *Memory) Upsert(_ context.Context, p *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("upsert")
	if m.FailUpsert {
		return ErrInjected
	}
	cp := *p
	cp.Email = purchase.NormalizeEmail(cp.Email)
	if old, ok := m.rows[cp.Email]; ok {
		cp.ID = old.ID
		cp.CreatedAt = old.CreatedAt
		cp.ComboGenerated = old.ComboGenerated
		cp.ComboGeneratedAt = old.ComboGeneratedAt
	} else {
		if cp.ID == "" {
			cp.ID = tool.GenerateUUIDV7()
		}
		cp.CreatedAt = time.Now()
		cp.ComboGenerated = false
		cp.ComboGeneratedAt = nil
	}
	cp.UpdatedAt = time.Now()
	m.rows[cp.Email] = &cp
	return nil
}

func (m *Memory) DeleteByEmail(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("delete")
	if m.FailDelete {
		return ErrInjected
	}
	delete(m.rows, purchase.NormalizeEmail(email))
	return nil
}

func (m *Memory) ReserveCombo(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("reserve")
	if m.FailReserve {
		return false, ErrInjected
	}
	p, ok := m.rows[purchase.NormalizeEmail(email)]
	if !ok || !p.Approved || p.ComboGenerated {
		return false, nil
	}
	p.ComboGenerated = true
	return true, nil
}

func (m *Memory) ReleaseCombo(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("release")
	if m.FailRelease {
		return ErrInjected
	}
	if p, ok := m.rows[purchase.NormalizeEmail(email)]; ok {
		p.ComboGenerated = false
		p.ComboGeneratedAt = nil
	}
	return nil
}

func (m *Memory) MarkComboGenerated(_ context.Context, email string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("mark")
	if m.FailMark {
		return ErrInjected
	}
	p, ok := m.rows[purchase.NormalizeEmail(email)]
	if !ok {
		return purchase.ErrNotFound
	}
	p.ComboGenerated = true
	p.ComboGeneratedAt = &at
	return nil
}

// Scan ignores filters and returns every row ordered by email.
func (m *Memory) Scan(_ context.Context, _ *purchase.ScanRequest) (*purchase.ScanResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("scan")
	items := make([]*models.Purchase, 0, len(m.rows))
	for _, p := range m.rows {
		cp := *p
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Email < items[j].Email })
	return &purchase.ScanResponse{Items: items, Total: int64(len(items))}, nil
}

var _ purchase.Store = (*Memory)(nil)
