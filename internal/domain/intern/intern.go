// Package intern assigns stable small identifiers to free-text keys.
package intern

// Entry is one interned key with its identifier.
type Entry[ID ~uint32] struct {
	ID   ID
	Name string
}

// Interner maps names to identifiers and back. Identifiers start at 1 and
// grow by one per new key. There is no removal.
//
// An Interner is owned by a single builder and is not safe for concurrent
// mutation; reads after the last Intern call are safe from any goroutine.
type Interner[ID ~uint32] struct {
	ids   map[string]ID
	names []string // names[id-1]
}

// New creates an empty Interner.
func New[ID ~uint32]() *Interner[ID] {
	return &Interner[ID]{ids: make(map[string]ID)}
}

// Intern returns the identifier for key, allocating the next one on first sight.
func (in *Interner[ID]) Intern(key string) ID {
	if id, ok := in.ids[key]; ok {
		return id
	}
	in.names = append(in.names, key)
	id := ID(len(in.names))
	in.ids[key] = id
	return id
}

// ID looks up the identifier of an already interned key.
func (in *Interner[ID]) ID(key string) (ID, bool) {
	id, ok := in.ids[key]
	return id, ok
}

// Name looks up the key of an identifier.
func (in *Interner[ID]) Name(id ID) (string, bool) {
	if id == 0 || int(id) > len(in.names) {
		return "", false
	}
	return in.names[id-1], true
}

// Has reports whether id was allocated.
func (in *Interner[ID]) Has(id ID) bool {
	return id != 0 && int(id) <= len(in.names)
}

// Len returns the number of interned keys.
func (in *Interner[ID]) Len() int { return len(in.names) }

// Entries returns every entry in identifier order.
func (in *Interner[ID]) Entries() []Entry[ID] {
	out := make([]Entry[ID], len(in.names))
	for i, name := range in.names {
		out[i] = Entry[ID]{ID: ID(i + 1), Name: name}
	}
	return out
}

// consistent reports whether forward and reverse tables agree.
func (in *Interner[ID]) consistent() bool {
	if len(in.ids) != len(in.names) {
		return false
	}
	for i, name := range in.names {
		if in.ids[name] != ID(i+1) {
			return false
		}
	}
	return true
}
