package keymgmt

import (
	"bytes"
	"crypto/subtle"
)

// Match compares the selected components of two keys. Keys bound to
// different algorithms never match when any component is selected. Public
// components compare with ordinary byte equality (public data is not
// secret). Private components compare in constant time over the full
// length, regardless of where the first mismatching byte occurs; this is a
// side-channel requirement, not an optimization target.
//
// Match is symmetric: Match(a, b, s) == Match(b, a, s) for every selection.
func Match(k1, k2 *Key, sel Selection) bool {
	if k1 == nil || k2 == nil {
		return false
	}
	ok := true
	if sel.Has(SelectDomainParams) {
		ok = ok && k1.desc.Name == k2.desc.Name
	}
	if sel.Has(SelectPublic) {
		if k1.desc.Name != k2.desc.Name {
			return false
		}
		switch {
		case k1.pub == nil && k2.pub == nil:
			// Equal presence state, nothing to compare.
		case k1.pub == nil || k2.pub == nil:
			return false
		default:
			ok = ok && bytes.Equal(k1.pub, k2.pub)
		}
	}
	if sel.Has(SelectPrivate) {
		if k1.desc.Name != k2.desc.Name {
			return false
		}
		switch {
		case k1.priv == nil && k2.priv == nil:
		case k1.priv == nil || k2.priv == nil:
			return false
		default:
			ok = ok && subtle.ConstantTimeCompare(k1.priv, k2.priv) == 1
		}
	}
	return ok
}
