package keymgmt

import (
	"github.com/remiblancher/pq-keymgmt/internal/params"
)

// Import installs key material from a named-field bag onto a key whose
// algorithm is already fixed. Only the components named by sel are
// consulted; a selected field absent from the bag is skipped, not an error.
// Each provided component is validated against the descriptor's total
// length (classical + PQ for hybrids) before anything is installed, so a
// validation failure leaves the key's prior state untouched.
func Import(k *Key, sel Selection, bag *params.Bag) error {
	if k == nil {
		return opErr("import", "", ErrNilKey)
	}
	if bag == nil {
		return opErr("import", k.desc.Name, ErrComponentMissing)
	}

	var newPub, newPriv []byte
	havePub, havePriv := false, false

	if sel.Has(SelectPublic) {
		if p := bag.Locate(params.FieldPubKey); p != nil {
			b, err := p.Octets()
			if err != nil {
				return opErr("import", k.desc.Name, ErrWrongType)
			}
			if len(b) != k.desc.PublicKeySize() {
				return opErr("import", k.desc.Name, ErrLengthMismatch)
			}
			newPub = append([]byte(nil), b...)
			havePub = true
		}
	}
	if sel.Has(SelectPrivate) {
		if p := bag.Locate(params.FieldPrivKey); p != nil {
			b, err := p.Octets()
			if err != nil {
				wipe(newPub)
				return opErr("import", k.desc.Name, ErrWrongType)
			}
			if len(b) != k.desc.PrivateKeySize() {
				wipe(newPub)
				return opErr("import", k.desc.Name, ErrLengthMismatch)
			}
			newPriv = append([]byte(nil), b...)
			havePriv = true
		}
	}

	// A hybrid private key is unusable without its matching classical
	// public point, so a private-only install on a bare key is rejected.
	if havePriv && !havePub && k.pub == nil && k.desc.IsHybrid() {
		wipe(newPriv)
		return opErr("import", k.desc.Name, ErrComponentMissing)
	}

	// Validation done; install atomically.
	if havePub {
		k.pub = newPub
	}
	if havePriv {
		wipe(k.priv)
		k.priv = newPriv
	}
	return nil
}

// Export builds a named-field bag holding the present components named by
// sel, invokes fn with it, and wipes the bag afterwards regardless of fn's
// outcome. A selected component that is absent on the key is simply omitted
// from the bag.
func Export(k *Key, sel Selection, fn func(*params.Bag) error) error {
	if k == nil {
		return opErr("export", "", ErrNilKey)
	}
	if fn == nil {
		return opErr("export", k.desc.Name, ErrComponentMissing)
	}

	bag := params.NewBag()
	defer bag.Wipe()

	if sel.Has(SelectPublic) && k.pub != nil {
		bag.AddOctets(params.FieldPubKey, k.pub)
	}
	if sel.Has(SelectPrivate) && k.priv != nil {
		bag.AddOctets(params.FieldPrivKey, k.priv)
	}
	return fn(bag)
}

// GetParams fills every recognized field present in the bag from the key's
// state. Size and strength fields derive from the descriptor alone. A
// request for key bytes whose component is absent fails the whole call
// without filling anything.
func GetParams(k *Key, bag *params.Bag) error {
	if k == nil {
		return opErr("get-params", "", ErrNilKey)
	}
	if bag == nil {
		return nil
	}

	// All-or-nothing: verify requested components exist before writing.
	for _, name := range []string{params.FieldPubKey, params.FieldEncodedPubKey} {
		if bag.Locate(name) != nil && k.pub == nil {
			return opErr("get-params", k.desc.Name, ErrComponentMissing)
		}
	}
	if bag.Locate(params.FieldPrivKey) != nil && k.priv == nil {
		return opErr("get-params", k.desc.Name, ErrComponentMissing)
	}

	if p := bag.Locate(params.FieldBits); p != nil {
		p.SetInt(k.desc.SecurityBits)
	}
	if p := bag.Locate(params.FieldSecurityBits); p != nil {
		p.SetInt(k.desc.SecurityBits)
	}
	if p := bag.Locate(params.FieldMaxSize); p != nil {
		p.SetInt(k.desc.MaxSize())
	}
	if p := bag.Locate(params.FieldEncodedPubKey); p != nil {
		p.SetOctets(k.pub)
	}
	if p := bag.Locate(params.FieldPubKey); p != nil {
		p.SetOctets(k.pub)
	}
	if p := bag.Locate(params.FieldPrivKey); p != nil {
		p.SetOctets(k.priv)
	}
	return nil
}

// SetParams applies the settable fields present in the bag. A replacement
// public key must match the descriptor length exactly and discards any
// private key. The properties field must be a UTF-8 string. Fields outside
// the settable set are ignored.
func SetParams(k *Key, bag *params.Bag) error {
	if k == nil {
		return opErr("set-params", "", ErrNilKey)
	}
	if bag == nil {
		return nil
	}

	if p := bag.Locate(params.FieldEncodedPubKey); p != nil {
		b, err := p.Octets()
		if err != nil {
			return opErr("set-params", k.desc.Name, ErrWrongType)
		}
		if err := k.SetPublic(b); err != nil {
			return err
		}
	}
	if p := bag.Locate(params.FieldProperties); p != nil {
		s, err := p.UTF8()
		if err != nil {
			return opErr("set-params", k.desc.Name, ErrWrongType)
		}
		if err := k.SetPropertyQuery(s); err != nil {
			return err
		}
	}
	return nil
}

// GettableParams lists the field names GetParams understands.
func GettableParams() []string {
	return []string{
		params.FieldBits,
		params.FieldSecurityBits,
		params.FieldMaxSize,
		params.FieldEncodedPubKey,
		params.FieldPubKey,
		params.FieldPrivKey,
	}
}

// SettableParams lists the field names SetParams understands.
func SettableParams() []string {
	return []string{
		params.FieldEncodedPubKey,
		params.FieldProperties,
	}
}
