package schema

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/zero-day-ai/graphchat/internal/graph"
	"github.com/zero-day-ai/graphchat/internal/types"
)

// DefaultSampleLimit caps how many nodes or relationships are sampled per
// label or type.
const DefaultSampleLimit = 50

// Sampler discovers a GraphSchema through the client's read-only path.
type Sampler struct {
	client      graph.GraphClient
	sampleLimit int
	policy      ConflictPolicy
	prober      ConnectionProber
	logger      *slog.Logger
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithSampleLimit sets the per label sample size. Non-positive values keep
// the default.
func WithSampleLimit(n int) SamplerOption {
	return func(s *Sampler) {
		if n > 0 {
			s.sampleLimit = n
		}
	}
}

// WithConflictPolicy sets how attribute type disagreements are resolved.
func WithConflictPolicy(p ConflictPolicy) SamplerOption {
	return func(s *Sampler) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithProber sets the connection probing strategy.
func WithProber(p ConnectionProber) SamplerOption {
	return func(s *Sampler) {
		if p != nil {
			s.prober = p
		}
	}
}

// WithLogger sets the logger used for discovery progress.
func WithLogger(l *slog.Logger) SamplerOption {
	return func(s *Sampler) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSampler creates a Sampler with first-seen typing and cartesian probing
// unless overridden.
func NewSampler(client graph.GraphClient, opts ...SamplerOption) *Sampler {
	s := &Sampler{
		client:      client,
		sampleLimit: DefaultSampleLimit,
		policy:      FirstSeenPolicy{},
		prober:      CartesianProber{},
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover enumerates labels and relationship types, samples their
// attributes and probes relationship endpoints. Any store failure aborts
// discovery; no partial schema is returned.
func (s *Sampler) Discover(ctx context.Context) (*GraphSchema, error) {
	start := time.Now()
	result := NewGraphSchema()

	labels, err := s.client.Labels(ctx)
	if err != nil {
		return nil, discoveryError("list labels", err)
	}

	for _, label := range labels {
		entity := newEntityType(label)
		if err := s.sample(ctx, nodeSampleQuery(label), "n", entity.Attributes); err != nil {
			return nil, discoveryError(fmt.Sprintf("sample label %q", label), err)
		}
		result.Entities.Set(label, entity)
	}

	relTypes, err := s.client.RelationshipTypes(ctx)
	if err != nil {
		return nil, discoveryError("list relationship types", err)
	}

	for _, relType := range relTypes {
		rel := newRelationshipType(relType)
		if err := s.sample(ctx, relationshipSampleQuery(relType), "e", rel.Attributes); err != nil {
			return nil, discoveryError(fmt.Sprintf("sample relationship type %q", relType), err)
		}

		conns, err := s.prober.Probe(ctx, s.client, relType, labels)
		if err != nil {
			return nil, discoveryError(fmt.Sprintf("probe relationship type %q", relType), err)
		}
		for _, c := range conns {
			rel.addConnection(c)
		}
		result.Relationships.Set(relType, rel)
	}

	s.logger.InfoContext(ctx, "schema discovered",
		"labels", result.Entities.Len(),
		"relationship_types", result.Relationships.Len(),
		"probe_strategy", s.prober.Name(),
		"conflict_policy", s.policy.Name(),
		"elapsed", time.Since(start),
	)

	return result, nil
}

// sample reads up to sampleLimit elements from column and records their
// properties. Property keys of a single element are visited in sorted order
// so that attribute order does not depend on map iteration.
func (s *Sampler) sample(ctx context.Context, cypher, column string, attrs *AttributeSet) error {
	res, err := s.client.ReadQuery(ctx, cypher, map[string]any{"limit": int64(s.sampleLimit)})
	if err != nil {
		return err
	}

	for i, record := range res.Records {
		props, ok := propertiesOf(record[column])
		if !ok {
			return types.NewError(graph.ErrCodeGraphResultParsing,
				fmt.Sprintf("row %d: expected node or relationship in column %q, got %T", i, column, record[column]))
		}

		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			attrs.observe(k, TypeOf(props[k]), s.policy)
		}
	}
	return nil
}

func discoveryError(step string, cause error) error {
	return types.WrapError(ErrCodeDiscoveryFailed, "schema discovery failed: "+step, cause)
}
