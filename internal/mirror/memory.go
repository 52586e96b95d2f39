package mirror

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// Memory is an in-process Mirror. It backs tests and single-process demos;
// Fail lets callers simulate an unreachable remote.
type Memory struct {
	mu     sync.Mutex
	tables map[string]map[string]Row
	fail   error
	pushes int
}

func NewMemory() *Memory {
	return &Memory{tables: make(map[string]map[string]Row)}
}

// Fail makes every subsequent call return err (wrapped as unavailable).
// Fail(nil) restores normal operation.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Pushes counts successful Push calls.
func (m *Memory) Pushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pushes
}

func (m *Memory) Configured() bool { return true }

func (m *Memory) Fetch(_ context.Context, table string) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, Unavailable("fetch", m.fail)
	}
	rows := make([]Row, 0, len(m.tables[table]))
	for _, r := range m.tables[table] {
		rows = append(rows, cloneRow(r))
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows, nil
}

func (m *Memory) Push(_ context.Context, table string, rows []Row) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return Unavailable("push", m.fail)
	}
	if !ValidTable(table) {
		return fmt.Errorf("invalid table %q", table)
	}
	t, ok := m.tables[table]
	if !ok {
		t = make(map[string]Row)
		m.tables[table] = t
	}
	for _, r := range rows {
		t[r.ID] = cloneRow(r)
	}
	m.pushes++
	return nil
}

func (m *Memory) Remove(_ context.Context, table string, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return Unavailable("remove", m.fail)
	}
	for _, id := range ids {
		delete(m.tables[table], id)
	}
	return nil
}

func (m *Memory) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return Unavailable("ping", m.fail)
	}
	return nil
}

func (m *Memory) Close() error { return nil }

func cloneRow(r Row) Row {
	r.Payload = slices.Clone(r.Payload)
	r.Nonce = slices.Clone(r.Nonce)
	if r.DeletedAt != nil {
		d := *r.DeletedAt
		r.DeletedAt = &d
	}
	return r
}
