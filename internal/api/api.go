// Package api exposes the key-management core over a small JSON HTTP
// surface: algorithm enumeration, key generation, and key inspection. Keys
// live in an in-memory set addressed by public-key fingerprint; no private
// material ever leaves the process through this surface.
package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/remiblancher/pq-keymgmt/internal/backend"
	"github.com/remiblancher/pq-keymgmt/internal/keymgmt"
	"github.com/remiblancher/pq-keymgmt/internal/params"
	"github.com/remiblancher/pq-keymgmt/internal/registry"
	"github.com/remiblancher/pq-keymgmt/internal/store"
)

// Server holds the in-memory key set behind the HTTP surface. The core key
// objects are single-writer; the server serializes access to them.
type Server struct {
	mu   sync.Mutex
	keys map[string]*keymgmt.Key
	gen  backend.Generator
}

// NewServer creates a server with an empty key set.
func NewServer() *Server {
	return &Server{
		keys: make(map[string]*keymgmt.Key),
		gen:  backend.New(),
	}
}

// Router returns the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/v1/algorithms", s.listAlgorithms)
	r.Post("/api/v1/keys", s.generateKey)
	r.Get("/api/v1/keys", s.listKeys)
	r.Get("/api/v1/keys/{fingerprint}", s.getKey)
	r.Delete("/api/v1/keys/{fingerprint}", s.deleteKey)
	return r
}

// apiError is the JSON error envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// algorithmInfo describes one registry entry.
type algorithmInfo struct {
	Name           string `json:"name"`
	Family         string `json:"family"`
	Hybrid         string `json:"hybrid"`
	Curve          string `json:"curve,omitempty"`
	PublicKeySize  int    `json:"public_key_size"`
	PrivateKeySize int    `json:"private_key_size"`
	SecurityBits   int    `json:"security_bits"`
	MaxSize        int    `json:"max_size"`
}

// keyInfo describes one held key. The public key is base64; private
// material is never reported.
type keyInfo struct {
	Fingerprint  string `json:"fingerprint"`
	Algorithm    string `json:"algorithm"`
	SecurityBits int    `json:"security_bits"`
	MaxSize      int    `json:"max_size"`
	HasPrivate   bool   `json:"has_private"`
	PublicKey    string `json:"public_key,omitempty"`
}

type generateRequest struct {
	Algorithm  string `json:"algorithm"`
	Properties string `json:"properties,omitempty"`
}

func describeAlgorithm(d *registry.Descriptor) algorithmInfo {
	return algorithmInfo{
		Name:           d.Name,
		Family:         d.Family.String(),
		Hybrid:         d.Hybrid.String(),
		Curve:          d.Curve,
		PublicKeySize:  d.PublicKeySize(),
		PrivateKeySize: d.PrivateKeySize(),
		SecurityBits:   d.SecurityBits,
		MaxSize:        d.MaxSize(),
	}
}

func describeKey(fp string, k *keymgmt.Key) keyInfo {
	return keyInfo{
		Fingerprint:  fp,
		Algorithm:    k.Algorithm(),
		SecurityBits: k.ParamBits(),
		MaxSize:      k.MaxSize(),
		HasPrivate:   k.Has(keymgmt.SelectPrivate),
		PublicKey:    base64.StdEncoding.EncodeToString(k.PublicBytes()),
	}
}

// listAlgorithms handles GET /api/v1/algorithms.
func (s *Server) listAlgorithms(w http.ResponseWriter, r *http.Request) {
	names := registry.Algorithms()
	out := make([]algorithmInfo, 0, len(names))
	for _, name := range names {
		d, err := registry.Describe(name)
		if err != nil {
			continue
		}
		out = append(out, describeAlgorithm(d))
	}
	respondJSON(w, http.StatusOK, map[string]any{"algorithms": out})
}

// generateKey handles POST /api/v1/keys.
func (s *Server) generateKey(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid JSON request body")
		return
	}

	ctx, err := keymgmt.NewGenContext(req.Algorithm, keymgmt.SelectKeypair)
	if err != nil {
		respondError(w, http.StatusNotFound, "UNKNOWN_ALGORITHM", err.Error())
		return
	}
	ctx.WithGenerator(s.gen)
	defer ctx.Close()

	if req.Properties != "" {
		if err := ctx.Set(params.FieldProperties, req.Properties); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
			return
		}
	}

	key, err := ctx.Generate()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "GENERATION_FAILED", err.Error())
		return
	}

	fp := store.Fingerprint(key)
	s.mu.Lock()
	if old, ok := s.keys[fp]; ok {
		old.Release()
	}
	s.keys[fp] = key
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, describeKey(fp, key))
}

// listKeys handles GET /api/v1/keys.
func (s *Server) listKeys(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]keyInfo, 0, len(s.keys))
	for fp, k := range s.keys {
		info := describeKey(fp, k)
		info.PublicKey = "" // keep the listing small
		out = append(out, info)
	}
	s.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]any{"keys": out})
}

// getKey handles GET /api/v1/keys/{fingerprint}.
func (s *Server) getKey(w http.ResponseWriter, r *http.Request) {
	fp := chi.URLParam(r, "fingerprint")
	s.mu.Lock()
	k, ok := s.keys[fp]
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "KEY_NOT_FOUND", "no key with that fingerprint")
		return
	}
	respondJSON(w, http.StatusOK, describeKey(fp, k))
}

// deleteKey handles DELETE /api/v1/keys/{fingerprint}.
func (s *Server) deleteKey(w http.ResponseWriter, r *http.Request) {
	fp := chi.URLParam(r, "fingerprint")
	s.mu.Lock()
	k, ok := s.keys[fp]
	if ok {
		delete(s.keys, fp)
	}
	s.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "KEY_NOT_FOUND", "no key with that fingerprint")
		return
	}
	k.Release()
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	respondJSON(w, status, map[string]apiError{"error": {Code: code, Message: msg}})
}
