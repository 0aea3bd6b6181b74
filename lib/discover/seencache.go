// Copyright (C) 2026 The Neighborshow Authors.
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this file,
// You can obtain one at https://mozilla.org/MPL/2.0/.

package discover

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// A seenCache remembers which probe IDs have already been handled, up
// to a fixed capacity. When full, the oldest inserted entry is evicted.
// A lookup of an already-cached ID never refreshes its age; eviction
// order is insertion order, so under sustained ID churn beyond capacity
// an old but still live ID can be evicted and its probe re-processed.
// That is the accepted cost of bounded memory.
type seenCache struct {
	ids *lru.Cache[uint32, time.Time]
}

func newSeenCache(capacity int) *seenCache {
	ids, err := lru.New[uint32, time.Time](capacity)
	if err != nil {
		// Only happens for capacity < 1.
		panic(err)
	}
	return &seenCache{ids: ids}
}

// Seen records id as handled and reports whether it had been seen
// before. The first call for a given id returns false and inserts it;
// subsequent calls return true without touching its position in the
// eviction order. Nothing else promotes entries, so LRU order here is
// plain insertion order.
func (c *seenCache) Seen(id uint32) bool {
	ok, _ := c.ids.ContainsOrAdd(id, time.Now())
	return ok
}

func (c *seenCache) Len() int {
	return c.ids.Len()
}
