package javaio

import "sort"

// validationCallback is one RegisterValidation entry, grounded on the
// original registerValidation's "sorted, higher priority first" ordering.
type validationCallback struct {
	fn       func() error
	priority int
	seq      int
}

// validationQueue collects callbacks registered during a top-level
// readObject call and drains them once, after the whole graph is
// materialized, in priority order (ties broken by registration order).
type validationQueue struct {
	items []validationCallback
	seq   int
}

func (q *validationQueue) add(fn func() error, priority int) {
	q.items = append(q.items, validationCallback{fn: fn, priority: priority, seq: q.seq})
	q.seq++
}

func (q *validationQueue) drain() error {
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].priority > q.items[j].priority
	})
	for _, cb := range q.items {
		if err := cb.fn(); err != nil {
			return err
		}
	}
	return nil
}
