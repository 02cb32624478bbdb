package keymgmt

import (
	"errors"
	"fmt"

	"github.com/remiblancher/pq-keymgmt/internal/backend"
	"github.com/remiblancher/pq-keymgmt/internal/params"
	"github.com/remiblancher/pq-keymgmt/internal/registry"
)

// ctxState tracks the generation context's single-use state machine.
type ctxState int

const (
	ctxConfigured ctxState = iota
	ctxGenerated
	ctxFailed
	ctxClosed
)

// GenContext captures the configuration for exactly one key generation
// attempt: the algorithm, the requested components, and optional overrides.
// It is single-use: after Generate succeeds or fails the context is spent,
// and Close must be called before it is discarded regardless of outcome.
type GenContext struct {
	desc      *registry.Descriptor
	selection Selection
	groupName string
	propq     []byte

	gen   backend.Generator
	state ctxState
}

// NewGenContext creates a generation context for the named algorithm.
func NewGenContext(algorithm string, sel Selection) (*GenContext, error) {
	desc, err := registry.Describe(algorithm)
	if err != nil {
		return nil, opErr("gen-init", algorithm, err)
	}
	return &GenContext{
		desc:      desc,
		selection: sel,
		gen:       backend.New(),
	}, nil
}

// WithGenerator overrides the algorithm backend. Used by tests and by
// callers that supply their own backend capability.
func (c *GenContext) WithGenerator(g backend.Generator) *GenContext {
	if g != nil {
		c.gen = g
	}
	return c
}

// Set applies one configuration override prior to generation. The
// recognized fields are the group-name override (replaces the negotiated
// algorithm label) and the property query. Unknown field names are
// rejected.
func (c *GenContext) Set(field, value string) error {
	if c.state != ctxConfigured {
		return opErr("gen-set-params", c.desc.Name, ErrContextSpent)
	}
	switch field {
	case params.FieldGroupName:
		c.groupName = value
	case params.FieldProperties:
		wipe(c.propq)
		c.propq = []byte(value)
	default:
		return opErr("gen-set-params", c.desc.Name, fmt.Errorf("%w: %s", ErrUnknownParam, field))
	}
	return nil
}

// Generate invokes the algorithm backend once and returns a fully populated
// key (both components present, the caller owns the sole reference). Any
// failure is terminal for the context; no retry is attempted here.
func (c *GenContext) Generate() (*Key, error) {
	if c.state != ctxConfigured {
		return nil, opErr("generate", c.desc.Name, ErrContextSpent)
	}

	desc := c.desc
	if c.groupName != "" && c.groupName != desc.Name {
		override, err := registry.Describe(c.groupName)
		if err != nil {
			c.state = ctxFailed
			return nil, opErr("generate", c.groupName, err)
		}
		desc = override
	}

	pub, priv, err := c.gen.Generate(desc)
	if err != nil {
		c.state = ctxFailed
		return nil, opErr("generate", desc.Name, errors.Join(ErrGenerationFailed, err))
	}

	c.state = ctxGenerated
	return &Key{
		desc:  desc,
		pub:   pub,
		priv:  priv,
		propq: append([]byte(nil), c.propq...),
		refs:  1,
	}, nil
}

// Close releases the context's owned state. Required once per context,
// whatever terminal state was reached; extra calls are harmless.
func (c *GenContext) Close() {
	if c == nil {
		return
	}
	wipe(c.propq)
	c.propq = nil
	c.state = ctxClosed
}
