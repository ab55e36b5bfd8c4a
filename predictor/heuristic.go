package predictor

import "context"

// categoryBoost multiplies the heuristic estimate per category code.
// Categories not listed get 1.
var categoryBoost = map[int64]float64{
	10: 1.25, // Music
	24: 1.18, // Entertainment
	20: 1.15, // Gaming
	22: 1.05, // People & Blogs
	27: 0.90, // Education
	28: 0.92, // Science & Technology
	17: 1.12, // Sports
	23: 1.10, // Comedy
	1:  1.15, // Film & Animation
	25: 0.82, // News & Politics
}

// Heuristic is a hand-tuned estimator used when no trained artifact is
// configured. It is deterministic.
type Heuristic struct{}

func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

func (h *Heuristic) Predict(ctx context.Context, t Table) ([]float64, error) {
	out := make([]float64, t.Len())
	for r := 0; r < t.Len(); r++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var v [6]float64
		for i, col := range []string{ColLikes, ColCommentCount, ColEngagementRate, ColCategoryID, ColPublishHour, ColDayOfWeek} {
			f, err := t.Float(r, col)
			if err != nil {
				return nil, err
			}
			v[i] = f
		}
		likes, comments, engagement, category, hour, day := v[0], v[1], v[2], v[3], v[4], v[5]

		base := likes*1.8 + comments*12 + engagement*20

		boost, ok := categoryBoost[int64(category)]
		if !ok {
			boost = 1
		}
		hourBoost := 0.9
		if hour >= 14 && hour <= 17 {
			hourBoost = 1.2
		}
		weekendBoost := 1.0
		if day >= 5 {
			weekendBoost = 1.15
		}

		out[r] = base * boost * hourBoost * weekendBoost
	}
	return out, nil
}
