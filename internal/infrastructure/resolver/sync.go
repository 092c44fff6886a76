package resolver

import (
	"context"

	"github.com/miorlan/yamlmodule/internal/domain"
	"gopkg.in/yaml.v3"
)

// Sync turns an AsyncDereferencer into a blocking Dereferencer.
//
// The caller is parked on a result channel until the callback fires. The
// async side must not need anything from the blocked caller, or the wait
// never ends.
type Sync struct {
	async domain.AsyncDereferencer
}

// NewSync wraps async
func NewSync(async domain.AsyncDereferencer) *Sync {
	return &Sync{async: async}
}

var _ domain.Dereferencer = (*Sync)(nil)

type result struct {
	doc *yaml.Node
	err error
}

// Dereference blocks until the asynchronous dereference completes
func (s *Sync) Dereference(ctx context.Context, req domain.DereferenceRequest) (*yaml.Node, error) {
	done := make(chan result, 1)
	s.async.DereferenceAsync(ctx, req, func(doc *yaml.Node, err error) {
		done <- result{doc: doc, err: err}
	})

	select {
	case res := <-done:
		return res.doc, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
