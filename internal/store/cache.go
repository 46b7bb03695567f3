// Package store holds the per-session order state: the order cache, request states and the
// singleton resources refreshed from the remote authority.
package store

import (
	"cmp"
	"slices"
	"sync"

	"github.com/polkiloo/chanorders/internal/domain/model"
)

// ChangeKind describes what kind of mutation produced a Change.
type ChangeKind string

const (
	ChangeOrderUpserted ChangeKind = "order_upserted"
	ChangeOrderRemoved  ChangeKind = "order_removed"
	ChangeResourceState ChangeKind = "resource_state"
	ChangeInfo          ChangeKind = "info"
	ChangeExchangeRates ChangeKind = "exchange_rates"
	ChangeSettings      ChangeKind = "settings"
	ChangeNavigation    ChangeKind = "navigation"
)

// Change is delivered to subscribers after a mutation has been applied.
type Change struct {
	Kind    ChangeKind
	Version uint64
	OrderID string
	Class   model.ResourceClass
}

// Listener receives change notifications. It must not block for long.
type Listener func(Change)

type listeners struct {
	next  int
	items map[int]Listener
}

func (l *listeners) add(fn Listener) int {
	if l.items == nil {
		l.items = make(map[int]Listener)
	}
	id := l.next
	l.next++
	l.items[id] = fn
	return id
}

func (l *listeners) snapshot() []Listener {
	out := make([]Listener, 0, len(l.items))
	ids := make([]int, 0, len(l.items))
	for id := range l.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		out = append(out, l.items[id])
	}
	return out
}

func notify(fns []Listener, ch Change) {
	for _, fn := range fns {
		fn(ch)
	}
}

// OrderCache keeps the latest known record per order id, newest first.
// Mutations are serialized; results of concurrent refreshes are applied in settle order.
type OrderCache struct {
	mu        sync.Mutex
	records   []model.OrderRecord
	version   uint64
	listeners listeners
}

// NewOrderCache creates an empty cache.
func NewOrderCache() *OrderCache {
	return &OrderCache{}
}

// Upsert replaces the record with the same id or appends a new one, then re-sorts the
// collection by creation time descending.
func (c *OrderCache) Upsert(record model.OrderRecord) {
	c.mu.Lock()
	idx := c.indexOf(record.ID)
	if idx >= 0 && c.records[idx] == record {
		c.mu.Unlock()
		return
	}
	if idx >= 0 {
		c.records[idx] = record
	} else {
		c.records = append(c.records, record)
	}
	slices.SortStableFunc(c.records, func(a, b model.OrderRecord) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	c.version++
	ch := Change{Kind: ChangeOrderUpserted, Version: c.version, OrderID: record.ID}
	fns := c.listeners.snapshot()
	c.mu.Unlock()

	notify(fns, ch)
}

// Remove deletes the record with the given id. Missing ids are ignored.
func (c *OrderCache) Remove(id string) {
	c.RemoveIf(id, func(model.OrderRecord) bool { return true })
}

// RemoveIf deletes the record with the given id when pred accepts it.
// The check and the deletion happen atomically with respect to other mutations.
func (c *OrderCache) RemoveIf(id string, pred func(model.OrderRecord) bool) (found, removed bool) {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return false, false
	}
	if !pred(c.records[idx]) {
		c.mu.Unlock()
		return true, false
	}
	c.records = slices.Delete(c.records, idx, idx+1)
	c.version++
	ch := Change{Kind: ChangeOrderRemoved, Version: c.version, OrderID: id}
	fns := c.listeners.snapshot()
	c.mu.Unlock()

	notify(fns, ch)
	return true, true
}

// ListAll returns a snapshot of all records ordered newest first.
func (c *OrderCache) ListAll() []model.OrderRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

// Get returns the cached record for id.
func (c *OrderCache) Get(id string) (model.OrderRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return model.OrderRecord{}, false
	}
	return c.records[idx], true
}

// Len returns the number of cached records.
func (c *OrderCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.records)
}

// Version increases with every mutation that changed the cache content.
func (c *OrderCache) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Subscribe registers fn for change notifications and returns a function removing it.
func (c *OrderCache) Subscribe(fn Listener) func() {
	c.mu.Lock()
	id := c.listeners.add(fn)
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners.items, id)
			c.mu.Unlock()
		})
	}
}

func (c *OrderCache) indexOf(id string) int {
	return slices.IndexFunc(c.records, func(r model.OrderRecord) bool { return r.ID == id })
}
