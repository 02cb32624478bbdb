// Package keymgmt implements the key-object lifecycle for post-quantum and
// hybrid public-key algorithms: creation, generation, import/export,
// presence and equality predicates, parameter introspection, and ownership
// transfer. One Key representation serves every algorithm in the registry;
// there is no per-algorithm code path.
//
// Keys are not internally synchronized. The design assumes single-writer
// access per object, with ownership transferred explicitly between
// operations.
package keymgmt

import (
	"github.com/remiblancher/pq-keymgmt/internal/registry"
)

// Key is one key object: an algorithm binding plus optional public and
// private key material. For hybrid algorithms each component is the
// classical bytes immediately followed by the post-quantum bytes, with no
// framing; the split points come from the descriptor alone.
type Key struct {
	desc *registry.Descriptor

	// pub and priv are present or absent as a whole. priv is wiped on
	// release and whenever it is replaced or invalidated.
	pub  []byte
	priv []byte

	// propq is the backend-selection hint. Held as bytes so it can be
	// wiped with the rest of the secret-adjacent state.
	propq []byte

	refs int
}

// New creates a key bound to the descriptor with both components absent.
func New(desc *registry.Descriptor, propq string) (*Key, error) {
	if desc == nil {
		return nil, opErr("new", "", ErrNilKey)
	}
	k := &Key{desc: desc, refs: 1}
	if propq != "" {
		k.propq = []byte(propq)
	}
	return k, nil
}

// Descriptor returns the algorithm metadata the key is bound to.
func (k *Key) Descriptor() *registry.Descriptor { return k.desc }

// Algorithm returns the canonical algorithm name.
func (k *Key) Algorithm() string {
	if k == nil {
		return ""
	}
	return k.desc.Name
}

// Has reports whether every component named by sel is present. An empty
// selection is vacuously true: these algorithms carry no separate domain
// parameters, so the DomainParams bit is always satisfied.
func (k *Key) Has(sel Selection) bool {
	if k == nil {
		return false
	}
	ok := true
	if sel.Has(SelectPublic) {
		ok = ok && k.pub != nil
	}
	if sel.Has(SelectPrivate) {
		ok = ok && k.priv != nil
	}
	return ok
}

// AddRef adds one owner to the key.
func (k *Key) AddRef() {
	k.refs++
}

// Release drops one owner. When the last owner releases, the private key
// bytes and the property query are wiped before the buffers are dropped.
func (k *Key) Release() {
	if k == nil {
		return
	}
	k.refs--
	if k.refs > 0 {
		return
	}
	wipe(k.priv)
	k.priv = nil
	wipe(k.propq)
	k.propq = nil
	k.pub = nil
}

// SetPublic replaces the public key bytes. Any private key is discarded and
// wiped: a new public key invalidates the prior keypair binding. The length
// must match the descriptor exactly.
func (k *Key) SetPublic(b []byte) error {
	if k == nil {
		return opErr("set-public", "", ErrNilKey)
	}
	if len(b) != k.desc.PublicKeySize() {
		return opErr("set-public", k.desc.Name, ErrLengthMismatch)
	}
	k.pub = append([]byte(nil), b...)
	wipe(k.priv)
	k.priv = nil
	return nil
}

// SetPropertyQuery replaces the property-query string. An empty string
// clears it. The prior value is always cleared first, so a failure never
// leaves a stale copy behind.
func (k *Key) SetPropertyQuery(q string) error {
	if k == nil {
		return opErr("set-property-query", "", ErrNilKey)
	}
	wipe(k.propq)
	k.propq = nil
	if q != "" {
		k.propq = []byte(q)
	}
	return nil
}

// PropertyQuery returns the backend-selection hint, or "" when unset.
func (k *Key) PropertyQuery() string {
	if k == nil {
		return ""
	}
	return string(k.propq)
}

// PublicBytes returns a copy of the public component, or nil when absent.
func (k *Key) PublicBytes() []byte {
	if k == nil || k.pub == nil {
		return nil
	}
	return append([]byte(nil), k.pub...)
}

// PrivateBytes returns a copy of the private component, or nil when absent.
// The caller owns the copy and is responsible for wiping it.
func (k *Key) PrivateBytes() []byte {
	if k == nil || k.priv == nil {
		return nil
	}
	return append([]byte(nil), k.priv...)
}

// ClassicalPublic returns a copy of the classical sub-range of the public
// component. It is nil for pure algorithms or when the public key is absent.
func (k *Key) ClassicalPublic() []byte {
	if k == nil || k.pub == nil || !k.desc.IsHybrid() {
		return nil
	}
	return append([]byte(nil), k.pub[:k.desc.ClassicalPub]...)
}

// PQPublic returns a copy of the post-quantum sub-range of the public
// component, or nil when the public key is absent.
func (k *Key) PQPublic() []byte {
	if k == nil || k.pub == nil {
		return nil
	}
	return append([]byte(nil), k.pub[k.desc.ClassicalPub:]...)
}

// ParamBits returns the claimed security strength in bits.
func (k *Key) ParamBits() int {
	if k == nil {
		return 0
	}
	return k.desc.SecurityBits
}

// MaxSize returns the largest output any operation on this key can produce.
func (k *Key) MaxSize() int {
	if k == nil {
		return 0
	}
	return k.desc.MaxSize()
}

// EncodedPublicKey returns the same bytes as the exported public component,
// or nil when absent.
func (k *Key) EncodedPublicKey() []byte {
	return k.PublicBytes()
}

// wipe zeroizes b in place.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
