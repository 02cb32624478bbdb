// Package registry holds the static algorithm table consulted by every key
// operation. It supports post-quantum signature and KEM algorithms plus the
// two hybrid forms (classical curve + PQ concatenation) offered for each KEM.
//
// The table is built once from an embedded manifest and is immutable
// afterwards, so unsynchronized concurrent reads are safe.
package registry

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Describe for unrecognized algorithm names.
var ErrNotFound = errors.New("algorithm not found")

// Family categorizes an algorithm as signature or key encapsulation.
type Family int

const (
	FamilySignature Family = iota + 1
	FamilyKEM
)

// String returns the family label.
func (f Family) String() string {
	switch f {
	case FamilySignature:
		return "signature"
	case FamilyKEM:
		return "kem"
	default:
		return "unknown"
	}
}

// HybridMode identifies the classical component of a hybrid algorithm.
type HybridMode int

const (
	// HybridNone marks a pure post-quantum algorithm.
	HybridNone HybridMode = iota

	// HybridECP combines a NIST-curve ECDH component with the PQ component.
	HybridECP

	// HybridECX combines an X25519/X448 component with the PQ component.
	HybridECX
)

// String returns the hybrid-mode label.
func (m HybridMode) String() string {
	switch m {
	case HybridECP:
		return "hybrid-ecp"
	case HybridECX:
		return "hybrid-ecx"
	default:
		return "none"
	}
}

// Descriptor is the immutable per-algorithm metadata record. All byte lengths
// are fixed for the process lifetime; key material that does not match them
// exactly is rejected, never truncated.
type Descriptor struct {
	// Name is the canonical algorithm identifier (lowercase).
	Name string

	Family Family
	Hybrid HybridMode

	// Curve names the classical component ("P-256", "X25519", ...).
	// Empty when Hybrid is HybridNone.
	Curve string

	// Classical component encodings. Zero when Hybrid is HybridNone.
	ClassicalPub  int
	ClassicalPriv int

	// Post-quantum component encodings.
	PQPub  int
	PQPriv int

	// SecurityBits is the claimed classical security strength.
	SecurityBits int

	// BackendName selects the backend scheme implementing the PQ math.
	BackendName string

	// opMax is the largest operation output of the PQ component:
	// signature length for signatures, ciphertext length for KEMs.
	opMax int
}

// PublicKeySize returns the total encoded public key length
// (classical || PQ for hybrids).
func (d *Descriptor) PublicKeySize() int {
	return d.ClassicalPub + d.PQPub
}

// PrivateKeySize returns the total encoded private key length.
func (d *Descriptor) PrivateKeySize() int {
	return d.ClassicalPriv + d.PQPriv
}

// MaxSize returns the largest output any operation on a key of this
// algorithm can produce: the signature length for signature algorithms, the
// ciphertext length (plus the classical ephemeral share for hybrids) for
// KEMs.
func (d *Descriptor) MaxSize() int {
	return d.ClassicalPub + d.opMax
}

// IsHybrid reports whether the algorithm carries a classical component.
func (d *Descriptor) IsHybrid() bool {
	return d.Hybrid != HybridNone
}

// manifest mirrors the embedded YAML document.
type manifest struct {
	Signatures []manifestEntry `yaml:"signatures"`
	KEMs       []manifestEntry `yaml:"kems"`
}

type manifestEntry struct {
	Name         string   `yaml:"name"`
	Backend      string   `yaml:"backend"`
	PublicKey    int      `yaml:"public_key"`
	PrivateKey   int      `yaml:"private_key"`
	Signature    int      `yaml:"signature"`
	Ciphertext   int      `yaml:"ciphertext"`
	SecurityBits int      `yaml:"security_bits"`
	Aliases      []string `yaml:"aliases"`
}

//go:embed algorithms.yaml
var manifestYAML []byte

// table maps canonical names and aliases to their descriptor. Populated once
// in init and never mutated afterwards.
var table map[string]*Descriptor

// canonical holds the sorted canonical names for enumeration.
var canonical []string

func init() {
	var m manifest
	if err := yaml.Unmarshal(manifestYAML, &m); err != nil {
		panic(fmt.Sprintf("registry: bad algorithm manifest: %v", err))
	}

	table = make(map[string]*Descriptor)

	for _, e := range m.Signatures {
		add(&Descriptor{
			Name:         e.Name,
			Family:       FamilySignature,
			Hybrid:       HybridNone,
			PQPub:        e.PublicKey,
			PQPriv:       e.PrivateKey,
			SecurityBits: e.SecurityBits,
			BackendName:  e.Backend,
			opMax:        e.Signature,
		}, e.Aliases)
	}

	// Every KEM is offered in three structural forms: pure, NIST-curve
	// hybrid, and X-curve hybrid. The two hybrid descriptors are derived
	// here rather than listed in the manifest.
	for _, e := range m.KEMs {
		pure := &Descriptor{
			Name:         e.Name,
			Family:       FamilyKEM,
			Hybrid:       HybridNone,
			PQPub:        e.PublicKey,
			PQPriv:       e.PrivateKey,
			SecurityBits: e.SecurityBits,
			BackendName:  e.Backend,
			opMax:        e.Ciphertext,
		}
		add(pure, e.Aliases)
		add(hybridOf(pure, HybridECP), nil)
		add(hybridOf(pure, HybridECX), nil)
	}

	canonical = make([]string, 0, len(table))
	for name, d := range table {
		if name == d.Name {
			canonical = append(canonical, name)
		}
	}
	sort.Strings(canonical)
}

// curveInfo describes one classical hybrid component.
type curveInfo struct {
	label string // name prefix for the hybrid algorithm
	name  string // curve name
	pub   int
	priv  int
}

// ecpCurve selects the NIST curve matching the PQ security level.
func ecpCurve(bits int) curveInfo {
	switch {
	case bits <= 128:
		return curveInfo{"p256", "P-256", 65, 32}
	case bits <= 192:
		return curveInfo{"p384", "P-384", 97, 48}
	default:
		return curveInfo{"p521", "P-521", 133, 66}
	}
}

// ecxCurve selects the Montgomery curve matching the PQ security level.
func ecxCurve(bits int) curveInfo {
	if bits <= 128 {
		return curveInfo{"x25519", "X25519", 32, 32}
	}
	return curveInfo{"x448", "X448", 56, 56}
}

// hybridOf derives the hybrid descriptor for a pure KEM.
func hybridOf(base *Descriptor, mode HybridMode) *Descriptor {
	var c curveInfo
	switch mode {
	case HybridECP:
		c = ecpCurve(base.SecurityBits)
	case HybridECX:
		c = ecxCurve(base.SecurityBits)
	}

	d := *base
	d.Name = c.label + "-" + base.Name
	d.Hybrid = mode
	d.Curve = c.name
	d.ClassicalPub = c.pub
	d.ClassicalPriv = c.priv
	return &d
}

func add(d *Descriptor, aliases []string) {
	if d.PQPub <= 0 || d.PQPriv <= 0 || d.SecurityBits <= 0 || d.opMax <= 0 {
		panic(fmt.Sprintf("registry: malformed manifest entry %q", d.Name))
	}
	if _, dup := table[d.Name]; dup {
		panic(fmt.Sprintf("registry: duplicate algorithm %q", d.Name))
	}
	table[d.Name] = d
	for _, a := range aliases {
		if _, dup := table[a]; dup {
			panic(fmt.Sprintf("registry: duplicate alias %q", a))
		}
		table[a] = d
	}
}

// Describe looks up the descriptor for an algorithm name or alias.
// Lookup is case-insensitive and O(1).
func Describe(name string) (*Descriptor, error) {
	d, ok := table[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return d, nil
}

// Algorithms returns all canonical algorithm names, sorted.
func Algorithms() []string {
	out := make([]string, len(canonical))
	copy(out, canonical)
	return out
}
