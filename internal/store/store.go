// Package store persists key objects as CBOR keyfiles. The format carries
// the algorithm name plus whichever components were exported, so a file is
// self-describing without any ASN.1 or certificate machinery.
package store

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/sha3"

	"github.com/remiblancher/pq-keymgmt/internal/keymgmt"
	"github.com/remiblancher/pq-keymgmt/internal/params"
	"github.com/remiblancher/pq-keymgmt/internal/registry"
)

// keyFile is the on-disk CBOR layout. Integer keys keep the encoding
// compact for the large PQ components.
type keyFile struct {
	Algorithm  string `cbor:"1,keyasint"`
	Public     []byte `cbor:"2,keyasint,omitempty"`
	Private    []byte `cbor:"3,keyasint,omitempty"`
	Properties string `cbor:"4,keyasint,omitempty"`
}

// Save writes the selected components of a key to path with mode 0600.
// Components absent on the key are omitted from the file.
func Save(path string, k *keymgmt.Key, sel keymgmt.Selection) error {
	if k == nil {
		return fmt.Errorf("store: %w", keymgmt.ErrNilKey)
	}

	return keymgmt.Export(k, sel, func(bag *params.Bag) error {
		kf := keyFile{
			Algorithm:  k.Algorithm(),
			Properties: k.PropertyQuery(),
		}
		if p := bag.Locate(params.FieldPubKey); p != nil {
			b, err := p.Octets()
			if err != nil {
				return err
			}
			kf.Public = b
		}
		if p := bag.Locate(params.FieldPrivKey); p != nil {
			b, err := p.Octets()
			if err != nil {
				return err
			}
			kf.Private = b
		}

		data, err := cbor.Marshal(&kf)
		if err != nil {
			return fmt.Errorf("store: encode keyfile: %w", err)
		}
		defer wipe(data)

		if err := os.WriteFile(path, data, 0600); err != nil {
			return fmt.Errorf("store: write keyfile: %w", err)
		}
		return nil
	})
}

// Load reads a keyfile and rebuilds the key object through the regular
// import path, so all length validation applies. Buffers holding private
// material are wiped before return on every path.
func Load(path string) (*keymgmt.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("store: read keyfile: %w", err)
	}
	defer wipe(data)

	var kf keyFile
	if err := cbor.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("store: decode keyfile: %w", err)
	}
	defer wipe(kf.Private)

	desc, err := registry.Describe(kf.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}

	k, err := keymgmt.New(desc, kf.Properties)
	if err != nil {
		return nil, err
	}

	bag := params.NewBag()
	defer bag.Wipe()
	sel := keymgmt.Selection(0)
	if kf.Public != nil {
		bag.AddOctets(params.FieldPubKey, kf.Public)
		sel |= keymgmt.SelectPublic
	}
	if kf.Private != nil {
		bag.AddOctets(params.FieldPrivKey, kf.Private)
		sel |= keymgmt.SelectPrivate
	}

	if err := keymgmt.Import(k, sel, bag); err != nil {
		k.Release()
		return nil, err
	}
	return k, nil
}

// Fingerprint returns the SHA3-256 digest of the public component in hex,
// or "" when the key has no public component.
func Fingerprint(k *keymgmt.Key) string {
	pub := k.PublicBytes()
	if pub == nil {
		return ""
	}
	sum := sha3.Sum256(pub)
	return hex.EncodeToString(sum[:])
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
