package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-openapi/jsonpointer"
	"github.com/miorlan/yamlmodule/internal/domain"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrEmptyDocument is returned when there is no document to dereference
var ErrEmptyDocument = errors.New("no document to dereference")

// Resolver inlines every $ref of a document while preserving key order.
// Each run works on a copy; the input tree is never modified.
type Resolver struct {
	parser domain.Parser
	client *http.Client
	config domain.Config
	helper *NodeHelper
	logger zerolog.Logger
}

// NewResolver creates a new Resolver. External documents are fetched with
// client when referenced over http(s).
func NewResolver(parser domain.Parser, client *http.Client, config domain.Config, logger zerolog.Logger) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &Resolver{
		parser: parser,
		client: client,
		config: config,
		helper: &NodeHelper{},
		logger: logger,
	}
}

var _ domain.AsyncDereferencer = (*Resolver)(nil)

// DereferenceAsync runs the dereference on its own goroutine and reports
// through done exactly once.
func (r *Resolver) DereferenceAsync(ctx context.Context, req domain.DereferenceRequest, done domain.DereferenceCallback) {
	go func() {
		doc, err := r.dereference(ctx, req)
		done(doc, err)
	}()
}

func (r *Resolver) dereference(ctx context.Context, req domain.DereferenceRequest) (*yaml.Node, error) {
	root := r.helper.Deref(req.Document)
	if root != nil && root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root == nil || (root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null") {
		return nil, ErrEmptyDocument
	}

	start := time.Now()
	base := locationURL(req.Location)
	s := newRun(r, base, root)
	out, err := s.resolve(ctx, root, base, root, 0)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("location", req.Location).
		Str("openapi_version", req.Version).
		Int("documents", len(s.docs)).
		Dur("elapsed", time.Since(start)).
		Msg("document dereferenced")
	return out, nil
}

// run holds the state of one dereference
type run struct {
	r         *Resolver
	loader    *openapi3.Loader
	read      openapi3.ReadFromURIFunc
	docs      map[string]*yaml.Node
	resolving map[string]bool
}

func newRun(r *Resolver, base *url.URL, root *yaml.Node) *run {
	s := &run{
		r:         r,
		loader:    openapi3.NewLoader(),
		read:      openapi3.URIMapCache(openapi3.ReadFromURIs(openapi3.ReadFromHTTP(r.client), openapi3.ReadFromFile)),
		docs:      make(map[string]*yaml.Node),
		resolving: make(map[string]bool),
	}
	s.docs[documentKey(base)] = root
	return s
}

// resolve returns a dereferenced copy of node. base and root describe the
// document node belongs to.
func (s *run) resolve(ctx context.Context, node *yaml.Node, base *url.URL, root *yaml.Node, depth int) (*yaml.Node, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	h := s.r.helper
	node = h.Deref(node)
	if node == nil {
		return nil, nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return s.resolve(ctx, node.Content[0], base, root, depth)

	case yaml.MappingNode:
		if ref, ok := h.GetRef(node); ok {
			return s.expand(ctx, node, ref, base, root, depth)
		}
		out := h.NewContainer(node)
		err := h.IterateMap(node, func(key, value *yaml.Node) error {
			resolved, err := s.resolve(ctx, value, base, root, depth)
			if err != nil {
				return err
			}
			out.Content = append(out.Content, h.CopyScalar(h.Deref(key)), resolved)
			return nil
		})
		return out, err

	case yaml.SequenceNode:
		out := h.NewContainer(node)
		for _, item := range node.Content {
			resolved, err := s.resolve(ctx, item, base, root, depth)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, resolved)
		}
		return out, nil

	default:
		return h.CopyScalar(node), nil
	}
}

// expand replaces a $ref mapping with its resolved target. Sibling keys of
// the $ref are kept when the target is a mapping and take precedence over
// the target's own keys.
func (s *run) expand(ctx context.Context, node *yaml.Node, ref string, base *url.URL, root *yaml.Node, depth int) (*yaml.Node, error) {
	if limit := s.r.config.MaxDepth; limit > 0 && depth >= limit {
		return nil, fmt.Errorf("maximum reference depth %d exceeded at %s", limit, ref)
	}

	target, targetBase, targetRoot, key, err := s.locate(ctx, ref, base, root)
	if err != nil {
		return nil, err
	}
	if s.resolving[key] {
		return nil, &domain.ErrCircularReference{Path: key}
	}
	s.resolving[key] = true
	resolved, err := s.resolve(ctx, target, targetBase, targetRoot, depth+1)
	delete(s.resolving, key)
	if err != nil {
		return nil, err
	}

	h := s.r.helper
	if resolved == nil || resolved.Kind != yaml.MappingNode || len(node.Content) <= 2 {
		return resolved, nil
	}

	merged := h.NewContainer(resolved)
	present := make(map[string]bool)
	err = h.IterateMap(node, func(k, v *yaml.Node) error {
		k = h.Deref(k)
		if k.Value == "$ref" {
			return nil
		}
		value, err := s.resolve(ctx, v, base, root, depth)
		if err != nil {
			return err
		}
		present[k.Value] = true
		merged.Content = append(merged.Content, h.CopyScalar(k), value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(resolved.Content); i += 2 {
		if !present[resolved.Content[i].Value] {
			merged.Content = append(merged.Content, resolved.Content[i], resolved.Content[i+1])
		}
	}
	return merged, nil
}

// locate finds the node a $ref points at, together with the location and
// root of the document holding it and a key identifying the target.
func (s *run) locate(ctx context.Context, ref string, base *url.URL, root *yaml.Node) (*yaml.Node, *url.URL, *yaml.Node, string, error) {
	return s.locateVia(ctx, ref, base, root, make(map[string]bool))
}

// locateVia is locate with the set of $refs already passed through, so a
// pointer that runs through its own reference fails instead of recursing.
func (s *run) locateVia(ctx context.Context, ref string, base *url.URL, root *yaml.Node, via map[string]bool) (*yaml.Node, *url.URL, *yaml.Node, string, error) {
	key := documentKey(base) + " " + ref
	if via[key] {
		return nil, nil, nil, "", &domain.ErrCircularReference{Path: ref}
	}
	via[key] = true

	u, err := url.Parse(ref)
	if err != nil {
		return nil, nil, nil, "", &domain.ErrInvalidReference{Ref: ref, Reason: err.Error()}
	}
	fragment := u.Fragment
	u.Fragment = ""
	u.RawFragment = ""

	docURL, docRoot := base, root
	if u.String() != "" {
		docURL = base.ResolveReference(u)
		if docRoot, err = s.document(ctx, docURL); err != nil {
			return nil, nil, nil, "", err
		}
	}

	pointer, err := jsonpointer.New(fragment)
	if err != nil {
		return nil, nil, nil, "", &domain.ErrInvalidReference{Ref: ref, Reason: err.Error()}
	}

	node := docRoot
	for _, token := range pointer.DecodedTokens() {
		next := s.child(node, token)
		if next == nil {
			// The pointer may pass through another $ref.
			if inner, ok := s.r.helper.GetRef(node); ok {
				node, docURL, docRoot, _, err = s.locateVia(ctx, inner, docURL, docRoot, via)
				if err != nil {
					return nil, nil, nil, "", err
				}
				next = s.child(node, token)
			}
		}
		if next == nil {
			return nil, nil, nil, "", &domain.ErrUnresolvedPointer{Ref: ref, Token: token}
		}
		node = next
	}

	return node, docURL, docRoot, documentKey(docURL) + "#" + fragment, nil
}

func (s *run) child(node *yaml.Node, token string) *yaml.Node {
	h := s.r.helper
	node = h.Deref(node)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		return h.GetMapValue(node, token)
	case yaml.SequenceNode:
		idx, err := strconv.Atoi(token)
		if err != nil || idx < 0 || idx >= len(node.Content) {
			return nil
		}
		return h.Deref(node.Content[idx])
	}
	return nil
}

// document loads and parses an external document once per run
func (s *run) document(ctx context.Context, location *url.URL) (*yaml.Node, error) {
	key := documentKey(location)
	if doc, ok := s.docs[key]; ok {
		return doc, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	data, err := s.read(s.loader, location)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.ErrFileNotFound{Path: key}
		}
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if limit := s.r.config.MaxFileSize; limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("file size %d exceeds maximum allowed size %d", len(data), limit)
	}

	doc, err := s.r.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	s.docs[key] = doc
	return doc, nil
}

// locationURL turns a file path or URL into the base for relative refs
func locationURL(location string) *url.URL {
	if strings.Contains(location, "://") {
		if u, err := url.Parse(location); err == nil {
			return u
		}
	}
	if location == "" {
		location = "."
	}
	if abs, err := filepath.Abs(location); err == nil {
		location = abs
	}
	return &url.URL{Path: filepath.ToSlash(location)}
}

func documentKey(u *url.URL) string {
	c := *u
	c.Fragment = ""
	c.RawFragment = ""
	return c.String()
}
