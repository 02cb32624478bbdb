package keymgmt

// Ref is the ownership handle exchanged across the provider boundary. It
// holds at most one key; taking the key empties the handle, so ownership
// transfers exactly once and a stale handle can never resurrect a key.
type Ref struct {
	key *Key
}

// NewRef wraps a key in a fresh ownership handle.
func NewRef(k *Key) (*Ref, error) {
	if k == nil {
		return nil, opErr("ref", "", ErrNilKey)
	}
	return &Ref{key: k}, nil
}

// Take returns the held key and empties the handle. A nil or already-taken
// handle is rejected without mutation.
func (r *Ref) Take() (*Key, error) {
	if r == nil || r.key == nil {
		return nil, opErr("load", "", ErrRefSpent)
	}
	k := r.key
	r.key = nil
	return k, nil
}

// Load exchanges an ownership handle for its live key, clearing the source.
// It is the boundary-facing name for Take.
func Load(r *Ref) (*Key, error) {
	return r.Take()
}
