package predictor

import (
	"context"
	"errors"
	"fmt"
)

type TreeEnsembleSpec struct {
	BaseScore    float64             `json:"base_score" yaml:"base_score"`
	LearningRate float64             `json:"learning_rate" yaml:"learning_rate"`
	Encodings    map[string]Encoding `json:"encodings,omitempty" yaml:"encodings,omitempty"`
	Trees        []Tree              `json:"trees" yaml:"trees"`
}

type Tree struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
}

// Node is either a split (Feature, Threshold, Left, Right) or a leaf (Leaf set).
// Rows with feature <= Threshold go Left.
type Node struct {
	Feature   string   `json:"feature,omitempty" yaml:"feature,omitempty"`
	Threshold float64  `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Left      int      `json:"left,omitempty" yaml:"left,omitempty"`
	Right     int      `json:"right,omitempty" yaml:"right,omitempty"`
	Leaf      *float64 `json:"leaf,omitempty" yaml:"leaf,omitempty"`
}

// TreeEnsemble sums gradient boosted regression trees:
// base_score + learning_rate * sum(tree(x)).
type TreeEnsemble struct {
	baseScore    float64
	learningRate float64
	encodings    map[string]Encoding
	trees        []Tree
}

func NewTreeEnsemble(spec TreeEnsembleSpec) (*TreeEnsemble, error) {
	if len(spec.Trees) == 0 {
		return nil, errors.New("tree ensemble has no trees")
	}
	lr := spec.LearningRate
	if lr == 0 {
		lr = 1
	}
	for col := range spec.Encodings {
		if !isColumn(col) {
			return nil, fmt.Errorf("tree ensemble: unknown encoding column %q", col)
		}
	}

	for ti, tree := range spec.Trees {
		if len(tree.Nodes) == 0 {
			return nil, fmt.Errorf("tree %d has no nodes", ti)
		}
		for ni, n := range tree.Nodes {
			if n.Leaf != nil {
				continue
			}
			if !isColumn(n.Feature) {
				return nil, fmt.Errorf("tree %d node %d: unknown feature %q", ti, ni, n.Feature)
			}
			if n.Feature == ColChannelTitle {
				if _, ok := spec.Encodings[ColChannelTitle]; !ok {
					return nil, fmt.Errorf("tree %d node %d: %s splits need an encoding", ti, ni, ColChannelTitle)
				}
			}
			// children must point forward to rule out cycles
			if n.Left <= ni || n.Right <= ni || n.Left >= len(tree.Nodes) || n.Right >= len(tree.Nodes) {
				return nil, fmt.Errorf("tree %d node %d: invalid children %d/%d", ti, ni, n.Left, n.Right)
			}
		}
	}

	return &TreeEnsemble{
		baseScore:    spec.BaseScore,
		learningRate: lr,
		encodings:    spec.Encodings,
		trees:        spec.Trees,
	}, nil
}

func (e *TreeEnsemble) Predict(ctx context.Context, t Table) ([]float64, error) {
	out := make([]float64, t.Len())
	for r := 0; r < t.Len(); r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sum := 0.0
		for ti := range e.trees {
			v, err := e.walk(&e.trees[ti], t, r)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", ti, err)
			}
			sum += v
		}
		out[r] = e.baseScore + e.learningRate*sum
	}
	return out, nil
}

func (e *TreeEnsemble) walk(tree *Tree, t Table, r int) (float64, error) {
	i := 0
	for {
		n := tree.Nodes[i]
		if n.Leaf != nil {
			return *n.Leaf, nil
		}
		v, err := e.feature(t, r, n.Feature)
		if err != nil {
			return 0, err
		}
		if v <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

func (e *TreeEnsemble) feature(t Table, r int, col string) (float64, error) {
	if enc, ok := e.encodings[col]; ok {
		key, err := t.Key(r, col)
		if err != nil {
			return 0, err
		}
		return enc.Weight(key), nil
	}
	return t.Float(r, col)
}
