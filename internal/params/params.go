// Package params implements the named-field bag exchanged across the
// provider boundary for key import, export, and parameter queries. A bag is
// an ordered list of typed fields located by name; callers must never rely
// on field ordering.
package params

import (
	"errors"
	"fmt"
)

// Field names understood by the key-management core.
const (
	// FieldPubKey carries the raw public key bytes (octet string).
	FieldPubKey = "pub"

	// FieldPrivKey carries the raw private key bytes (octet string).
	FieldPrivKey = "priv"

	// FieldEncodedPubKey carries the same bytes as FieldPubKey
	// (octet string).
	FieldEncodedPubKey = "encoded-pub-key"

	// FieldBits and FieldSecurityBits report the claimed security
	// strength (integer).
	FieldBits         = "bits"
	FieldSecurityBits = "security-bits"

	// FieldMaxSize reports the largest operation output (integer).
	FieldMaxSize = "max-size"

	// FieldProperties carries the backend-selection hint (UTF-8 string).
	FieldProperties = "properties"

	// FieldGroupName carries the generation-time group override
	// (UTF-8 string).
	FieldGroupName = "group"
)

// ErrWrongType is returned when a field holds a different value kind than
// the accessor expects.
var ErrWrongType = errors.New("param holds a different type")

// Kind identifies the value type held by a Param.
type Kind int

const (
	KindOctets Kind = iota + 1
	KindUTF8
	KindInt
)

// Param is one named, typed field in a Bag.
type Param struct {
	Name string
	kind Kind

	octets []byte
	str    string
	num    int
}

// Kind returns the value kind of the field.
func (p *Param) Kind() Kind { return p.kind }

// Octets returns the octet-string value.
func (p *Param) Octets() ([]byte, error) {
	if p.kind != KindOctets {
		return nil, fmt.Errorf("%w: %s is not an octet string", ErrWrongType, p.Name)
	}
	return p.octets, nil
}

// UTF8 returns the UTF-8 string value.
func (p *Param) UTF8() (string, error) {
	if p.kind != KindUTF8 {
		return "", fmt.Errorf("%w: %s is not a UTF-8 string", ErrWrongType, p.Name)
	}
	return p.str, nil
}

// Int returns the integer value.
func (p *Param) Int() (int, error) {
	if p.kind != KindInt {
		return 0, fmt.Errorf("%w: %s is not an integer", ErrWrongType, p.Name)
	}
	return p.num, nil
}

// SetOctets replaces the field value with a copy of v.
func (p *Param) SetOctets(v []byte) {
	p.kind = KindOctets
	p.octets = append([]byte(nil), v...)
	p.str = ""
	p.num = 0
}

// SetUTF8 replaces the field value with s.
func (p *Param) SetUTF8(s string) {
	p.kind = KindUTF8
	p.str = s
	p.octets = nil
	p.num = 0
}

// SetInt replaces the field value with n.
func (p *Param) SetInt(n int) {
	p.kind = KindInt
	p.num = n
	p.octets = nil
	p.str = ""
}

// Bag is a mutable collection of named fields.
type Bag struct {
	fields []*Param
}

// NewBag returns an empty bag.
func NewBag() *Bag { return &Bag{} }

// Locate returns the field with the given name, or nil when absent.
func (b *Bag) Locate(name string) *Param {
	for _, p := range b.fields {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// ensure returns the named field, appending an empty one when absent.
func (b *Bag) ensure(name string) *Param {
	if p := b.Locate(name); p != nil {
		return p
	}
	p := &Param{Name: name}
	b.fields = append(b.fields, p)
	return p
}

// AddOctets sets the named field to a copy of the given octet string.
func (b *Bag) AddOctets(name string, v []byte) *Bag {
	b.ensure(name).SetOctets(v)
	return b
}

// AddUTF8 sets the named field to the given UTF-8 string.
func (b *Bag) AddUTF8(name, s string) *Bag {
	b.ensure(name).SetUTF8(s)
	return b
}

// AddInt sets the named field to the given integer.
func (b *Bag) AddInt(name string, n int) *Bag {
	b.ensure(name).SetInt(n)
	return b
}

// Len returns the number of fields in the bag.
func (b *Bag) Len() int { return len(b.fields) }

// Names returns the field names in insertion order.
func (b *Bag) Names() []string {
	out := make([]string, len(b.fields))
	for i, p := range b.fields {
		out[i] = p.Name
	}
	return out
}

// Wipe zeroizes every octet-string field in the bag. Bags that carried key
// material must be wiped before they are discarded.
func (b *Bag) Wipe() {
	for _, p := range b.fields {
		for i := range p.octets {
			p.octets[i] = 0
		}
		p.octets = nil
	}
}
