package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	KindLinear       = "linear"
	KindTreeEnsemble = "tree_ensemble"
	KindHeuristic    = "heuristic"
	KindRemote       = "remote"

	TransformNone  = ""
	TransformLog1p = "log1p"
)

var ErrUnknownModelKind = errors.New("unknown model kind")

// Predictor turns a table into one numeric estimate per row.
type Predictor interface {
	Predict(ctx context.Context, t Table) ([]float64, error)
}

// Artifact is the on-disk model document.
type Artifact struct {
	ID              string            `json:"id" yaml:"id"`
	Kind            string            `json:"kind" yaml:"kind"`
	TargetTransform string            `json:"target_transform,omitempty" yaml:"target_transform,omitempty"`
	Linear          *LinearSpec       `json:"linear,omitempty" yaml:"linear,omitempty"`
	Trees           *TreeEnsembleSpec `json:"trees,omitempty" yaml:"trees,omitempty"`
	Remote          *RemoteSpec       `json:"remote,omitempty" yaml:"remote,omitempty"`
}

// Encoding maps the values of a categorical column to a weight. Values not in
// Weights get Default.
type Encoding struct {
	Weights map[string]float64 `json:"weights" yaml:"weights"`
	Default float64            `json:"default" yaml:"default"`
}

func (e Encoding) Weight(key string) float64 {
	if w, ok := e.Weights[key]; ok {
		return w
	}
	return e.Default
}

type Options struct {
	ID            string
	RemoteURL     string
	RemoteTimeout time.Duration
	HTTPClient    *http.Client
}

// Model is the read-only handle loaded once at startup.
type Model struct {
	ID        string
	Kind      string
	transform string
	impl      Predictor
}

func NewModel(id, kind, transform string, impl Predictor) (*Model, error) {
	switch transform {
	case TransformNone, TransformLog1p:
	default:
		return nil, fmt.Errorf("unsupported target_transform %q", transform)
	}
	if impl == nil {
		return nil, errors.New("model implementation is nil")
	}
	return &Model{ID: id, Kind: kind, transform: transform, impl: impl}, nil
}

func (m *Model) Predict(ctx context.Context, t Table) ([]float64, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	out, err := m.impl.Predict(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.ID, err)
	}
	if m.transform == TransformLog1p {
		for i := range out {
			out[i] = math.Expm1(out[i])
		}
	}
	return out, nil
}

// Load builds the model handle. A remote URL wins over a file; an empty path
// selects the built-in heuristic estimator.
func Load(path string, opts Options) (*Model, error) {
	if url := strings.TrimSpace(opts.RemoteURL); url != "" {
		r, err := NewRemote(RemoteSpec{BaseURL: url}, opts)
		if err != nil {
			return nil, err
		}
		return NewModel(modelID(opts.ID, "remote"), KindRemote, TransformNone, r)
	}

	if strings.TrimSpace(path) == "" {
		return NewModel(modelID(opts.ID, "heuristic"), KindHeuristic, TransformNone, NewHeuristic())
	}

	a, err := ReadArtifact(path)
	if err != nil {
		return nil, err
	}
	return FromArtifact(a, opts)
}

func ReadArtifact(path string) (*Artifact, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var a Artifact
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &a)
	default:
		err = json.Unmarshal(b, &a)
	}
	if err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", filepath.Base(path), err)
	}
	return &a, nil
}

func FromArtifact(a *Artifact, opts Options) (*Model, error) {
	kind := strings.ToLower(strings.TrimSpace(a.Kind))
	transform := strings.ToLower(strings.TrimSpace(a.TargetTransform))
	id := modelID(a.ID, modelID(opts.ID, kind))

	var impl Predictor
	switch kind {
	case KindLinear:
		if a.Linear == nil {
			return nil, fmt.Errorf("model %q (linear) missing linear section", id)
		}
		l, err := NewLinear(*a.Linear)
		if err != nil {
			return nil, err
		}
		impl = l
	case KindTreeEnsemble:
		if a.Trees == nil {
			return nil, fmt.Errorf("model %q (tree_ensemble) missing trees section", id)
		}
		e, err := NewTreeEnsemble(*a.Trees)
		if err != nil {
			return nil, err
		}
		impl = e
	case KindHeuristic:
		impl = NewHeuristic()
	case KindRemote:
		if a.Remote == nil {
			return nil, fmt.Errorf("model %q (remote) missing remote section", id)
		}
		r, err := NewRemote(*a.Remote, opts)
		if err != nil {
			return nil, err
		}
		impl = r
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownModelKind, a.Kind)
	}

	return NewModel(id, kind, transform, impl)
}

func modelID(configured, fallback string) string {
	if s := strings.TrimSpace(configured); s != "" {
		return s
	}
	return fallback
}

func isColumn(col string) bool {
	for _, c := range Columns {
		if c == col {
			return true
		}
	}
	return false
}
