package predictor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

type LinearSpec struct {
	Intercept    float64             `json:"intercept" yaml:"intercept"`
	Coefficients map[string]float64  `json:"coefficients" yaml:"coefficients"`
	Categorical  map[string]Encoding `json:"categorical,omitempty" yaml:"categorical,omitempty"`
}

// Linear is an ordinary least squares style regressor: intercept plus a dot
// product over numeric columns plus one learned weight per categorical value.
type Linear struct {
	intercept   float64
	numeric     []string
	weights     *mat.VecDense
	categorical map[string]Encoding
	catColumns  []string
}

func NewLinear(spec LinearSpec) (*Linear, error) {
	if len(spec.Coefficients) == 0 && len(spec.Categorical) == 0 {
		return nil, errors.New("linear model has no coefficients")
	}

	l := &Linear{intercept: spec.Intercept, categorical: map[string]Encoding{}}

	for _, col := range Columns {
		if _, ok := spec.Coefficients[col]; !ok {
			continue
		}
		if col == ColChannelTitle {
			return nil, fmt.Errorf("linear model: %s is text and needs a categorical encoding", col)
		}
		l.numeric = append(l.numeric, col)
	}
	for col := range spec.Coefficients {
		if !isColumn(col) {
			return nil, fmt.Errorf("linear model: unknown coefficient column %q", col)
		}
	}
	if len(l.numeric) > 0 {
		data := make([]float64, len(l.numeric))
		for i, col := range l.numeric {
			data[i] = spec.Coefficients[col]
		}
		l.weights = mat.NewVecDense(len(data), data)
	}

	for col, enc := range spec.Categorical {
		if !isColumn(col) {
			return nil, fmt.Errorf("linear model: unknown categorical column %q", col)
		}
		l.categorical[col] = enc
		l.catColumns = append(l.catColumns, col)
	}
	sort.Strings(l.catColumns)

	return l, nil
}

func (l *Linear) Predict(ctx context.Context, t Table) ([]float64, error) {
	out := make([]float64, t.Len())
	x := make([]float64, len(l.numeric))
	for r := 0; r < t.Len(); r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		y := l.intercept
		if l.weights != nil {
			for i, col := range l.numeric {
				v, err := t.Float(r, col)
				if err != nil {
					return nil, err
				}
				x[i] = v
			}
			y += mat.Dot(l.weights, mat.NewVecDense(len(x), x))
		}

		for _, col := range l.catColumns {
			key, err := t.Key(r, col)
			if err != nil {
				return nil, err
			}
			y += l.categorical[col].Weight(key)
		}
		out[r] = y
	}
	return out, nil
}
