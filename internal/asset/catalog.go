package asset

import "fmt"

// Catalog supplies the ordered, validated list of assets to distribute.
type Catalog interface {
	Assets() []Spec
}

// StaticCatalog is a config-backed catalog validated once at construction.
type StaticCatalog struct {
	specs []Spec
}

// NewStaticCatalog validates every spec and rejects duplicates. Order is
// preserved; it determines batch order downstream.
func NewStaticCatalog(specs []Spec) (*StaticCatalog, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyCatalog
	}
	seen := make(map[Key]struct{}, len(specs))
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("asset %d: %w", i, err)
		}
		if _, dup := seen[s.Key()]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSpec, s.Key())
		}
		seen[s.Key()] = struct{}{}
	}
	return &StaticCatalog{specs: append([]Spec(nil), specs...)}, nil
}

// Assets returns a copy so callers cannot mutate catalog order.
func (c *StaticCatalog) Assets() []Spec {
	return append([]Spec(nil), c.specs...)
}
