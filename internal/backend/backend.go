// Package backend invokes the algorithm implementations that perform the
// actual key-pair mathematics. The key-management core only consumes the
// Generator capability; it never reaches into scheme internals.
//
// Post-quantum schemes are resolved by name from the cloudflare/circl
// registries. Classical hybrid components use crypto/ecdh for the NIST
// curves and X25519, and circl for X448.
package backend

import (
	"crypto/ecdh"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x448"
	kemschemes "github.com/cloudflare/circl/kem/schemes"
	signschemes "github.com/cloudflare/circl/sign/schemes"

	"github.com/remiblancher/pq-keymgmt/internal/registry"
)

// ErrUnknownScheme is returned when a descriptor names a backend scheme the
// linked circl build does not provide.
var ErrUnknownScheme = errors.New("backend scheme not available")

// Generator is the key-pair generation capability consumed by the core.
// The returned buffers are the full encoded key halves, classical component
// first for hybrid algorithms.
type Generator interface {
	Generate(d *registry.Descriptor) (pub, priv []byte, err error)
}

// SchemeGenerator implements Generator over the circl scheme registries.
type SchemeGenerator struct {
	// Rand sources the classical component keys. Defaults to crypto/rand.
	Rand io.Reader
}

var _ Generator = (*SchemeGenerator)(nil)

// New returns a SchemeGenerator using crypto/rand.
func New() *SchemeGenerator {
	return &SchemeGenerator{}
}

func (g *SchemeGenerator) rng() io.Reader {
	if g.Rand != nil {
		return g.Rand
	}
	return rand.Reader
}

// Generate produces a fresh key pair for the descriptor's algorithm. Hybrid
// keys are returned as classical || PQ concatenations with no framing.
func (g *SchemeGenerator) Generate(d *registry.Descriptor) (pub, priv []byte, err error) {
	if d == nil {
		return nil, nil, errors.New("backend: nil descriptor")
	}

	pqPub, pqPriv, err := g.generatePQ(d)
	if err != nil {
		return nil, nil, err
	}
	if len(pqPub) != d.PQPub || len(pqPriv) != d.PQPriv {
		return nil, nil, fmt.Errorf("backend: %s produced %d/%d byte keys, descriptor declares %d/%d",
			d.BackendName, len(pqPub), len(pqPriv), d.PQPub, d.PQPriv)
	}

	if !d.IsHybrid() {
		return pqPub, pqPriv, nil
	}

	cPub, cPriv, err := g.generateClassical(d.Curve)
	if err != nil {
		return nil, nil, fmt.Errorf("backend: %s classical component: %w", d.Name, err)
	}
	if len(cPub) != d.ClassicalPub || len(cPriv) != d.ClassicalPriv {
		return nil, nil, fmt.Errorf("backend: %s produced %d/%d byte classical keys, descriptor declares %d/%d",
			d.Curve, len(cPub), len(cPriv), d.ClassicalPub, d.ClassicalPriv)
	}

	pub = make([]byte, 0, len(cPub)+len(pqPub))
	pub = append(append(pub, cPub...), pqPub...)
	priv = make([]byte, 0, len(cPriv)+len(pqPriv))
	priv = append(append(priv, cPriv...), pqPriv...)
	return pub, priv, nil
}

func (g *SchemeGenerator) generatePQ(d *registry.Descriptor) (pub, priv []byte, err error) {
	switch d.Family {
	case registry.FamilyKEM:
		sch := kemschemes.ByName(d.BackendName)
		if sch == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownScheme, d.BackendName)
		}
		pk, sk, err := sch.GenerateKeyPair()
		if err != nil {
			return nil, nil, fmt.Errorf("backend: %s keygen: %w", d.BackendName, err)
		}
		pub, err = pk.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		priv, err = sk.MarshalBinary()
		return pub, priv, err

	case registry.FamilySignature:
		sch := signschemes.ByName(d.BackendName)
		if sch == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownScheme, d.BackendName)
		}
		pk, sk, err := sch.GenerateKey()
		if err != nil {
			return nil, nil, fmt.Errorf("backend: %s keygen: %w", d.BackendName, err)
		}
		pub, err = pk.MarshalBinary()
		if err != nil {
			return nil, nil, err
		}
		priv, err = sk.MarshalBinary()
		return pub, priv, err

	default:
		return nil, nil, fmt.Errorf("backend: unknown family for %s", d.Name)
	}
}

// generateClassical produces the ECDH component for a hybrid key.
func (g *SchemeGenerator) generateClassical(curve string) (pub, priv []byte, err error) {
	switch curve {
	case "P-256":
		return ecdhKey(ecdh.P256(), g.rng())
	case "P-384":
		return ecdhKey(ecdh.P384(), g.rng())
	case "P-521":
		return ecdhKey(ecdh.P521(), g.rng())
	case "X25519":
		return ecdhKey(ecdh.X25519(), g.rng())
	case "X448":
		var pubK, secK x448.Key
		if _, err := io.ReadFull(g.rng(), secK[:]); err != nil {
			return nil, nil, err
		}
		x448.KeyGen(&pubK, &secK)
		return pubK[:], secK[:], nil
	default:
		return nil, nil, fmt.Errorf("%w: curve %s", ErrUnknownScheme, curve)
	}
}

func ecdhKey(c ecdh.Curve, rng io.Reader) (pub, priv []byte, err error) {
	k, err := c.GenerateKey(rng)
	if err != nil {
		return nil, nil, err
	}
	return k.PublicKey().Bytes(), k.Bytes(), nil
}
