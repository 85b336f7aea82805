package store

import (
	"fmt"
	"sync"
)

// TripleStore is an in-memory RDF triple store with set semantics: adding a
// triple that is already present is a no-op, so unions over per-location
// graphs are idempotent and commutative. Lookups are served by three indexes:
//   - SPO: Subject -> Predicate -> Object (facts about a subject)
//   - POS: Predicate -> Object -> Subject (subjects with property=value)
//   - OSP: Object -> Subject -> Predicate (subjects pointing to an object)
//
// All methods are safe for concurrent use.
type TripleStore struct {
	mu sync.RWMutex

	spo map[string]map[string]map[string]bool
	pos map[string]map[string]map[string]bool
	osp map[string]map[string]map[string]bool

	count int
}

// NewTripleStore creates a new in-memory triple store with all indexes initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		spo: make(map[string]map[string]map[string]bool),
		pos: make(map[string]map[string]map[string]bool),
		osp: make(map[string]map[string]map[string]bool),
	}
}

// Add inserts a triple into the store. Returns nil if successful or if the
// triple already exists (idempotent operation).
func (ts *TripleStore) Add(subject, predicate, object string) error {
	if subject == "" || predicate == "" || object == "" {
		return fmt.Errorf("triple components cannot be empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.addUnsafe(subject, predicate, object)
	return nil
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	return ts.Add(triple.Subject, triple.Predicate, triple.Object)
}

// BulkAdd inserts multiple triples, skipping invalid ones, under a single
// write lock.
func (ts *TripleStore) BulkAdd(triples []Triple) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, triple := range triples {
		if !triple.IsValid() {
			continue
		}
		ts.addUnsafe(triple.Subject, triple.Predicate, triple.Object)
	}
}

// MergeFrom copies all triples from the source store into this store.
// Returns the number of new triples added (duplicates collapse by set
// semantics, so merging the same graph twice adds nothing the second time).
func (ts *TripleStore) MergeFrom(source *TripleStore) int {
	sourceTriples := source.All()
	previousCount := ts.Count()
	ts.BulkAdd(sourceTriples)
	return ts.Count() - previousCount
}

// Exists checks if a specific triple exists in the store.
func (ts *TripleStore) Exists(subject, predicate, object string) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.existsUnsafe(subject, predicate, object)
}

// Find queries triples matching the pattern. Use empty string "" for
// wildcards. Returns all matching triples.
func (ts *TripleStore) Find(subject, predicate, object string) []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.findUnsafe(subject, predicate, object)
}

// All returns all triples in the store.
func (ts *TripleStore) All() []Triple {
	return ts.Find("", "", "")
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.count
}

// Subjects returns all unique subjects in the store.
func (ts *TripleStore) Subjects() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	subjects := make([]string, 0, len(ts.spo))
	for s := range ts.spo {
		subjects = append(subjects, s)
	}
	return subjects
}

// Predicates returns all unique predicates in the store.
func (ts *TripleStore) Predicates() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	predicates := make([]string, 0, len(ts.pos))
	for p := range ts.pos {
		predicates = append(predicates, p)
	}
	return predicates
}

// String returns a string representation of the store statistics.
func (ts *TripleStore) String() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return fmt.Sprintf("TripleStore{triples: %d, subjects: %d, predicates: %d, objects: %d}",
		ts.count, len(ts.spo), len(ts.pos), len(ts.osp))
}

// addUnsafe inserts into all three indexes without locking.
func (ts *TripleStore) addUnsafe(subject, predicate, object string) {
	if ts.existsUnsafe(subject, predicate, object) {
		return
	}

	insert(ts.spo, subject, predicate, object)
	insert(ts.pos, predicate, object, subject)
	insert(ts.osp, object, subject, predicate)
	ts.count++
}

// insert adds a key path into a three-level index.
func insert(index map[string]map[string]map[string]bool, first, second, third string) {
	if index[first] == nil {
		index[first] = make(map[string]map[string]bool)
	}
	if index[first][second] == nil {
		index[first][second] = make(map[string]bool)
	}
	index[first][second][third] = true
}

// existsUnsafe checks if a triple exists without locking.
func (ts *TripleStore) existsUnsafe(subject, predicate, object string) bool {
	if pMap, ok := ts.spo[subject]; ok {
		if oMap, ok := pMap[predicate]; ok {
			return oMap[object]
		}
	}
	return false
}

// findUnsafe finds triples without locking, using the most selective index
// for the bound components.
func (ts *TripleStore) findUnsafe(subject, predicate, object string) []Triple {
	var results []Triple

	switch {
	case subject != "":
		pMap, ok := ts.spo[subject]
		if !ok {
			return nil
		}
		for p, oMap := range pMap {
			if predicate != "" && p != predicate {
				continue
			}
			for o := range oMap {
				if object != "" && o != object {
					continue
				}
				results = append(results, Triple{Subject: subject, Predicate: p, Object: o})
			}
		}

	case predicate != "":
		oMap, ok := ts.pos[predicate]
		if !ok {
			return nil
		}
		for o, sMap := range oMap {
			if object != "" && o != object {
				continue
			}
			for s := range sMap {
				results = append(results, Triple{Subject: s, Predicate: predicate, Object: o})
			}
		}

	case object != "":
		sMap, ok := ts.osp[object]
		if !ok {
			return nil
		}
		for s, pMap := range sMap {
			for p := range pMap {
				results = append(results, Triple{Subject: s, Predicate: p, Object: object})
			}
		}

	default:
		for s, pMap := range ts.spo {
			for p, oMap := range pMap {
				for o := range oMap {
					results = append(results, Triple{Subject: s, Predicate: p, Object: o})
				}
			}
		}
	}

	return results
}
