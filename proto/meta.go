package proto

import (
	"runtime"
	"sync"
	"weak"
)

// meta is the metadata record of an object.
type meta struct {
	// parent is consulted when a slot is not found on the object. It is a
	// strong reference: a parent stays alive while a child delegates to it.
	parent *Object

	// guard, when set, is called before every slot write.
	guard writeGuard
}

// writeGuard decides whether name may be written on o.
type writeGuard func(o *Object, name string) error

// metaStore decides where metadata records live.
type metaStore interface {
	load(o *Object) *meta
	store(o *Object, m *meta)
	placement() string
}

// inlineMeta keeps the record on the object itself.
type inlineMeta struct{}

func (inlineMeta) load(o *Object) *meta {
	return o.meta
}

func (inlineMeta) store(o *Object, m *meta) {
	o.meta = m
}

func (inlineMeta) placement() string {
	return "inline"
}

// sideMeta keeps records in a table keyed by weak object pointers, so the
// table never keeps an object alive. Entries are removed by a cleanup once
// their object has been reclaimed. Cleanups run on a runtime goroutine,
// hence the mutex.
type sideMeta struct {
	mu      sync.Mutex
	records map[weak.Pointer[Object]]*meta
}

func newSideMeta() *sideMeta {
	return &sideMeta{records: map[weak.Pointer[Object]]*meta{}}
}

func (s *sideMeta) load(o *Object) *meta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[weak.Make(o)]
}

func (s *sideMeta) store(o *Object, m *meta) {
	key := weak.Make(o)
	s.mu.Lock()
	_, exists := s.records[key]
	s.records[key] = m
	s.mu.Unlock()
	if !exists {
		runtime.AddCleanup(o, s.evict, key)
	}
}

func (s *sideMeta) evict(key weak.Pointer[Object]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}

func (s *sideMeta) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *sideMeta) placement() string {
	return "side-table"
}
