package keymgmt

import (
	"bytes"
	"errors"
	"testing"

	"github.com/remiblancher/pq-keymgmt/internal/params"
	"github.com/remiblancher/pq-keymgmt/internal/registry"
)

// fakeGen is a deterministic stand-in for the algorithm backend. The
// classical and PQ ranges of each component are filled with distinct bytes
// so tests can verify the concatenation layout.
type fakeGen struct {
	fail bool

	cPub, pqPub   byte
	cPriv, pqPriv byte
}

var errBackendDown = errors.New("backend unavailable")

func (g fakeGen) Generate(d *registry.Descriptor) ([]byte, []byte, error) {
	if g.fail {
		return nil, nil, errBackendDown
	}
	pub := append(
		bytes.Repeat([]byte{g.cPub}, d.ClassicalPub),
		bytes.Repeat([]byte{g.pqPub}, d.PQPub)...)
	priv := append(
		bytes.Repeat([]byte{g.cPriv}, d.ClassicalPriv),
		bytes.Repeat([]byte{g.pqPriv}, d.PQPriv)...)
	return pub, priv, nil
}

func defaultFakeGen() fakeGen {
	return fakeGen{cPub: 0xC1, pqPub: 0xA1, cPriv: 0xC2, pqPriv: 0xA2}
}

// genTestKey builds a fully populated key for alg using the fake backend.
func genTestKey(t *testing.T, alg string) *Key {
	t.Helper()
	ctx, err := NewGenContext(alg, SelectKeypair)
	if err != nil {
		t.Fatalf("NewGenContext(%q) error = %v", alg, err)
	}
	defer ctx.Close()

	key, err := ctx.WithGenerator(defaultFakeGen()).Generate()
	if err != nil {
		t.Fatalf("Generate(%q) error = %v", alg, err)
	}
	return key
}

// importPrivate installs priv on k through the regular import path.
func importPrivate(t *testing.T, k *Key, priv []byte) {
	t.Helper()
	bag := params.NewBag().AddOctets(params.FieldPrivKey, priv)
	defer bag.Wipe()
	if err := Import(k, SelectPrivate, bag); err != nil {
		t.Fatalf("Import(private) error = %v", err)
	}
}

func mustDescriptor(t *testing.T, alg string) *registry.Descriptor {
	t.Helper()
	d, err := registry.Describe(alg)
	if err != nil {
		t.Fatalf("Describe(%q) error = %v", alg, err)
	}
	return d
}
