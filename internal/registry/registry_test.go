package registry

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

// =============================================================================
// [Unit] Registry Lookup Tests
// =============================================================================

func TestU_Describe_Known(t *testing.T) {
	tests := []struct {
		name       string
		alg        string
		wantFamily Family
		wantHybrid HybridMode
		wantPub    int
		wantPriv   int
		wantBits   int
	}{
		{"[Unit] Describe: ML-KEM-512 pure", "ml-kem-512", FamilyKEM, HybridNone, 800, 1632, 128},
		{"[Unit] Describe: ML-KEM-768 pure", "ml-kem-768", FamilyKEM, HybridNone, 1184, 2400, 192},
		{"[Unit] Describe: P-256 hybrid", "p256-ml-kem-512", FamilyKEM, HybridECP, 865, 1664, 128},
		{"[Unit] Describe: X25519 hybrid", "x25519-ml-kem-512", FamilyKEM, HybridECX, 832, 1664, 128},
		{"[Unit] Describe: P-384 hybrid", "p384-ml-kem-768", FamilyKEM, HybridECP, 1281, 2448, 192},
		{"[Unit] Describe: X448 hybrid", "x448-ml-kem-768", FamilyKEM, HybridECX, 1240, 2456, 192},
		{"[Unit] Describe: P-521 hybrid", "p521-ml-kem-1024", FamilyKEM, HybridECP, 1701, 3234, 256},
		{"[Unit] Describe: ML-DSA-44", "ml-dsa-44", FamilySignature, HybridNone, 1312, 2560, 128},
		{"[Unit] Describe: SLH-DSA small", "slh-dsa-sha2-128s", FamilySignature, HybridNone, 32, 64, 128},
		{"[Unit] Describe: Frodo", "frodo640shake", FamilyKEM, HybridNone, 9616, 19888, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Describe(tt.alg)
			if err != nil {
				t.Fatalf("Describe(%q) error = %v", tt.alg, err)
			}
			if d.Family != tt.wantFamily {
				t.Errorf("Family = %v, want %v", d.Family, tt.wantFamily)
			}
			if d.Hybrid != tt.wantHybrid {
				t.Errorf("Hybrid = %v, want %v", d.Hybrid, tt.wantHybrid)
			}
			if got := d.PublicKeySize(); got != tt.wantPub {
				t.Errorf("PublicKeySize() = %d, want %d", got, tt.wantPub)
			}
			if got := d.PrivateKeySize(); got != tt.wantPriv {
				t.Errorf("PrivateKeySize() = %d, want %d", got, tt.wantPriv)
			}
			if d.SecurityBits != tt.wantBits {
				t.Errorf("SecurityBits = %d, want %d", d.SecurityBits, tt.wantBits)
			}
		})
	}
}

func TestU_Describe_Aliases(t *testing.T) {
	d1, err := Describe("mlkem768")
	if err != nil {
		t.Fatalf("alias lookup failed: %v", err)
	}
	d2, err := Describe("ml-kem-768")
	if err != nil {
		t.Fatalf("canonical lookup failed: %v", err)
	}
	if d1 != d2 {
		t.Error("alias and canonical name resolved to different descriptors")
	}
}

func TestU_Describe_CaseInsensitive(t *testing.T) {
	if _, err := Describe("ML-KEM-768"); err != nil {
		t.Errorf("uppercase lookup failed: %v", err)
	}
}

func TestU_Describe_Unknown(t *testing.T) {
	_, err := Describe("no-such-algorithm")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Describe() error = %v, want ErrNotFound", err)
	}
}

// =============================================================================
// [Unit] Registry Expansion Tests
// =============================================================================

// Every KEM must be offered in exactly three structural forms.
func TestU_KEMExpansion_ThreeForms(t *testing.T) {
	kems := []string{"ml-kem-512", "ml-kem-768", "ml-kem-1024", "kyber512", "kyber768", "kyber1024", "frodo640shake"}
	for _, base := range kems {
		d, err := Describe(base)
		if err != nil {
			t.Fatalf("Describe(%q) error = %v", base, err)
		}
		if d.Hybrid != HybridNone {
			t.Errorf("%s: base form should be pure", base)
		}

		forms := 0
		for _, name := range Algorithms() {
			if strings.HasSuffix(name, "-"+base) || name == base {
				forms++
			}
		}
		if forms != 3 {
			t.Errorf("%s: found %d structural forms, want 3", base, forms)
		}
	}
}

func TestU_HybridDescriptor_ClassicalLengths(t *testing.T) {
	tests := []struct {
		name      string
		alg       string
		wantCurve string
		wantCPub  int
		wantCPriv int
	}{
		{"[Unit] Hybrid curve: level 1 ECP", "p256-kyber512", "P-256", 65, 32},
		{"[Unit] Hybrid curve: level 3 ECP", "p384-kyber768", "P-384", 97, 48},
		{"[Unit] Hybrid curve: level 5 ECP", "p521-kyber1024", "P-521", 133, 66},
		{"[Unit] Hybrid curve: level 1 ECX", "x25519-kyber512", "X25519", 32, 32},
		{"[Unit] Hybrid curve: level 3 ECX", "x448-kyber768", "X448", 56, 56},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Describe(tt.alg)
			if err != nil {
				t.Fatalf("Describe(%q) error = %v", tt.alg, err)
			}
			if d.Curve != tt.wantCurve {
				t.Errorf("Curve = %s, want %s", d.Curve, tt.wantCurve)
			}
			if d.ClassicalPub != tt.wantCPub || d.ClassicalPriv != tt.wantCPriv {
				t.Errorf("classical lengths = %d/%d, want %d/%d",
					d.ClassicalPub, d.ClassicalPriv, tt.wantCPub, tt.wantCPriv)
			}
		})
	}
}

func TestU_MaxSize(t *testing.T) {
	// Pure KEM: ciphertext size. Hybrid: ciphertext plus classical share.
	d, _ := Describe("ml-kem-768")
	if got := d.MaxSize(); got != 1088 {
		t.Errorf("pure MaxSize() = %d, want 1088", got)
	}
	h, _ := Describe("p384-ml-kem-768")
	if got := h.MaxSize(); got != 1088+97 {
		t.Errorf("hybrid MaxSize() = %d, want %d", got, 1088+97)
	}
	s, _ := Describe("ml-dsa-65")
	if got := s.MaxSize(); got != 3309 {
		t.Errorf("signature MaxSize() = %d, want 3309", got)
	}
}

func TestU_Algorithms_SortedAndStable(t *testing.T) {
	names := Algorithms()
	if len(names) < 39 {
		t.Errorf("Algorithms() returned %d entries, want at least 39", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("Algorithms() not sorted")
	}

	// Returned slice must be a copy.
	names[0] = "mutated"
	if Algorithms()[0] == "mutated" {
		t.Error("Algorithms() exposed internal state")
	}
}
