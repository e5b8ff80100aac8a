package review

import "sync"

// Store is the process-wide review collection, keyed by book id.
// Lists keep insertion order; an update by the same initials keeps its slot.
type Store struct {
	mu      sync.RWMutex
	reviews map[string][]Review

	subMu  sync.Mutex
	nextID int
	subs   []subscriber
}

type subscriber struct {
	id int
	fn func(Change)
}

func NewStore() *Store {
	return &Store{
		reviews: make(map[string][]Review),
	}
}

// Upsert replaces the review with matching (BookID, UserInitials) in place or
// appends it. Input is not validated here.
func (s *Store) Upsert(r Review) {
	s.upsert(r)
}

// upsert reports the change it applied, decided under the store lock.
func (s *Store) upsert(r Review) Change {
	s.mu.Lock()
	list := s.reviews[r.BookID]
	change := Change{Review: r, Position: len(list)}
	for i := range list {
		if list[i].UserInitials == r.UserInitials {
			list[i] = r
			change.Replaced = true
			change.Position = i
			break
		}
	}
	if !change.Replaced {
		list = append(list, r)
	}
	s.reviews[r.BookID] = list
	s.mu.Unlock()

	s.notify(change)
	return change
}

// Clear drops every review for every book.
func (s *Store) Clear() {
	s.mu.Lock()
	s.reviews = make(map[string][]Review)
	s.mu.Unlock()

	s.notify(Change{Cleared: true})
}

// ReviewsFor returns a copy of the book's reviews, never nil.
func (s *Store) ReviewsFor(bookID string) []Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Review, len(s.reviews[bookID]))
	copy(out, s.reviews[bookID])
	return out
}

func (s *Store) ReviewBy(bookID, initials string) (Review, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reviews[bookID] {
		if r.UserInitials == initials {
			return r, true
		}
	}
	return Review{}, false
}

func (s *Store) Len(bookID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reviews[bookID])
}

// Subscribe registers fn for every subsequent change. Callbacks run synchronously
// on the mutating goroutine, after the store lock is released.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(c)
	}
}
