// collection.go
//
// Productivity dashboard service for real estate agents
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of expiestack.
// expiestack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// expiestack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with expiestack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package database

import "sync"

// Collection is one entity kind's mapping from identifier to record.
// Every primitive is a single critical section; there are no cross-collection
// transactions.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// Cloner is implemented by records that hold slices or pointers. A collection
// stores and hands out clones of them, so a caller never shares memory with a
// stored record.
type Cloner[T any] interface {
	Clone() T
}

func clone[T any](rec T) T {
	if c, ok := any(rec).(Cloner[T]); ok {
		return c.Clone()
	}
	return rec
}

// NewCollection creates an empty collection
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Insert stores rec under a new id. It reports false, and stores nothing, if
// the id is already taken.
func (c *Collection[T]) Insert(id string, rec T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[id]; exists {
		return false
	}
	c.items[id] = clone(rec)
	c.order = append(c.order, id)
	return true
}

// Get looks up a record by id
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.items[id]
	return clone(rec), ok
}

// Scan returns every record accepted by keep, in insertion order.
// A nil keep returns every record.
func (c *Collection[T]) Scan(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		rec := c.items[id]
		if keep == nil || keep(rec) {
			out = append(out, clone(rec))
		}
	}
	return out
}

// Find returns the first record, in insertion order, accepted by match
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if rec := c.items[id]; match(rec) {
			return clone(rec), true
		}
	}
	var zero T
	return zero, false
}

// Replace overwrites an existing record
func (c *Collection[T]) Replace(id string, rec T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	c.items[id] = clone(rec)
	return true
}

// Modify applies fn to a copy of the record and stores the result, all under
// the write lock. It returns the stored record.
func (c *Collection[T]) Modify(id string, fn func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.items[id]
	if !ok {
		var zero T
		return zero, false
	}
	rec := clone(stored)
	fn(&rec)
	c.items[id] = rec
	return clone(rec), true
}

// Remove deletes a record. Removing a missing id reports false.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of records
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
