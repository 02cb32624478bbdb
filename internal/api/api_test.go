package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// =============================================================================
// [Unit] HTTP API Tests
// =============================================================================

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestU_API_ListAlgorithms(t *testing.T) {
	h := NewServer().Router()
	rec := doJSON(t, h, http.MethodGet, "/api/v1/algorithms", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decode[struct {
		Algorithms []algorithmInfo `json:"algorithms"`
	}](t, rec)

	if len(resp.Algorithms) < 39 {
		t.Errorf("listed %d algorithms, want at least 39", len(resp.Algorithms))
	}
	found := false
	for _, a := range resp.Algorithms {
		if a.Name == "x25519-ml-kem-512" {
			found = true
			if a.PublicKeySize != 832 {
				t.Errorf("x25519-ml-kem-512 public_key_size = %d, want 832", a.PublicKeySize)
			}
			if a.Family != "kem" {
				t.Errorf("x25519-ml-kem-512 family = %q, want kem", a.Family)
			}
		}
	}
	if !found {
		t.Error("x25519-ml-kem-512 missing from the algorithm list")
	}
}

func TestU_API_GenerateAndFetch(t *testing.T) {
	h := NewServer().Router()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/keys",
		generateRequest{Algorithm: "ml-kem-512", Properties: "provider=acme"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d, body %s", rec.Code, rec.Body)
	}
	created := decode[keyInfo](t, rec)
	if created.Fingerprint == "" {
		t.Fatal("created key has no fingerprint")
	}
	if created.Algorithm != "ml-kem-512" || !created.HasPrivate {
		t.Errorf("created key = %+v", created)
	}
	if created.SecurityBits != 128 {
		t.Errorf("security_bits = %d, want 128", created.SecurityBits)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/keys/"+created.Fingerprint, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	got := decode[keyInfo](t, rec)
	if got.Fingerprint != created.Fingerprint || got.PublicKey == "" {
		t.Errorf("fetched key = %+v", got)
	}
}

func TestU_API_GenerateUnknownAlgorithm(t *testing.T) {
	h := NewServer().Router()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/keys",
		generateRequest{Algorithm: "ml-kem-9000"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestU_API_GenerateBadBody(t *testing.T) {
	h := NewServer().Router()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/keys",
		bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestU_API_ListKeys(t *testing.T) {
	h := NewServer().Router()
	for _, alg := range []string{"ml-kem-512", "ml-dsa-44"} {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/keys", generateRequest{Algorithm: alg})
		if rec.Code != http.StatusCreated {
			t.Fatalf("generate %s status = %d", alg, rec.Code)
		}
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/keys", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	resp := decode[struct {
		Keys []keyInfo `json:"keys"`
	}](t, rec)
	if len(resp.Keys) != 2 {
		t.Fatalf("listed %d keys, want 2", len(resp.Keys))
	}
	for _, k := range resp.Keys {
		if k.PublicKey != "" {
			t.Error("listing included public key bytes")
		}
	}
}

func TestU_API_DeleteKey(t *testing.T) {
	h := NewServer().Router()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/keys", generateRequest{Algorithm: "ml-kem-512"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate status = %d", rec.Code)
	}
	fp := decode[keyInfo](t, rec).Fingerprint

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/keys/"+fp, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/keys/"+fp, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/keys/"+fp, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("double delete status = %d, want 404", rec.Code)
	}
}

func TestU_API_GetUnknownKey(t *testing.T) {
	h := NewServer().Router()
	rec := doJSON(t, h, http.MethodGet, "/api/v1/keys/deadbeef", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
