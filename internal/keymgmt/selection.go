package keymgmt

// Selection is the bit mask naming which key components an operation acts
// on. These algorithms carry no separate domain parameters, so the
// DomainParams bit only ever constrains algorithm identity.
type Selection int

const (
	// SelectPublic selects the public key component.
	SelectPublic Selection = 1 << iota

	// SelectPrivate selects the private key component.
	SelectPrivate

	// SelectDomainParams selects the (vacuous) domain parameters.
	SelectDomainParams
)

// Compound selections.
const (
	SelectKeypair Selection = SelectPublic | SelectPrivate
	SelectAll     Selection = SelectKeypair | SelectDomainParams
)

// Has reports whether every bit of want is set.
func (s Selection) Has(want Selection) bool {
	return s&want == want
}
