package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadEmptyPathUsesHeuristic(t *testing.T) {
	m, err := Load("", Options{ID: "youtube-views"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Kind != KindHeuristic {
		t.Errorf("Kind = %q, want %q", m.Kind, KindHeuristic)
	}
	if m.ID != "youtube-views" {
		t.Errorf("ID = %q, want youtube-views", m.ID)
	}
}

func TestLoadJSONLinear(t *testing.T) {
	path := writeFile(t, "model.json", `{
		"id": "views-linear-v1",
		"kind": "linear",
		"linear": {
			"intercept": 10,
			"coefficients": {"likes": 3},
			"categorical": {"category_id": {"weights": {"10": 7}}}
		}
	}`)

	m, err := Load(path, Options{ID: "fallback-id"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.ID != "views-linear-v1" || m.Kind != KindLinear {
		t.Errorf("model = %s/%s", m.ID, m.Kind)
	}

	tbl, _ := NewTable(sampleRow())
	got, err := m.Predict(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if got[0] != 10+3*1000+7 {
		t.Errorf("prediction = %v, want %v", got[0], 10+3*1000+7)
	}
}

func TestLoadYAMLTreesWithLog1p(t *testing.T) {
	path := writeFile(t, "model.yaml", `
kind: tree_ensemble
target_transform: log1p
trees:
  base_score: 0
  trees:
    - nodes:
        - feature: comment_count
          threshold: 10
          left: 1
          right: 2
        - leaf: 1
        - leaf: 6.907755278982137
`)

	m, err := Load(path, Options{ID: "views-gbt"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.ID != "views-gbt" {
		t.Errorf("ID = %q, want views-gbt", m.ID)
	}

	tbl, _ := NewTable(sampleRow())
	got, err := m.Predict(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	// expm1(log(1000)) == 999
	if math.Abs(got[0]-999) > 1e-6 {
		t.Errorf("prediction = %v, want ~999", got[0])
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "nope.json"), Options{}); err == nil {
			t.Error("expected error for missing artifact")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, "bad.json", `{"kind": `)
		if _, err := Load(path, Options{}); err == nil {
			t.Error("expected decode error")
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		path := writeFile(t, "pickle.json", `{"kind": "sklearn_pickle"}`)
		if _, err := Load(path, Options{}); !errors.Is(err, ErrUnknownModelKind) {
			t.Errorf("error = %v, want ErrUnknownModelKind", err)
		}
	})

	t.Run("missing section", func(t *testing.T) {
		path := writeFile(t, "linear.json", `{"kind": "linear"}`)
		if _, err := Load(path, Options{}); err == nil {
			t.Error("expected error for missing linear section")
		}
	})

	t.Run("bad transform", func(t *testing.T) {
		path := writeFile(t, "h.json", `{"kind": "heuristic", "target_transform": "sqrt"}`)
		if _, err := Load(path, Options{}); err == nil {
			t.Error("expected error for unsupported transform")
		}
	})
}

func TestModelPredictRejectsBadTable(t *testing.T) {
	m, _ := Load("", Options{})
	tbl, _ := NewTable(sampleRow())
	tbl.Columns = tbl.Columns[:6]

	if _, err := m.Predict(context.Background(), tbl); !errors.Is(err, ErrSchemaMismatch) {
		t.Errorf("error = %v, want ErrSchemaMismatch", err)
	}
}

func TestRemotePredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("path = %s, want /predict", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer k" {
			t.Errorf("Authorization = %q", got)
		}
		var in Table
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(in.Columns) != 7 || len(in.Rows) != 1 {
			t.Errorf("unexpected table: %+v", in)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predictions":[12345.9]}`))
	}))
	defer srv.Close()

	r, err := NewRemote(RemoteSpec{BaseURL: srv.URL + "/", APIKey: "k"}, Options{RemoteTimeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewRemote() error: %v", err)
	}

	tbl, _ := NewTable(sampleRow())
	got, err := r.Predict(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Predict() error: %v", err)
	}
	if len(got) != 1 || got[0] != 12345.9 {
		t.Errorf("predictions = %v", got)
	}
}

func TestRemotePredictHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "feature names mismatch", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m, err := Load("", Options{RemoteURL: srv.URL})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m.Kind != KindRemote {
		t.Errorf("Kind = %q, want remote", m.Kind)
	}

	tbl, _ := NewTable(sampleRow())
	_, err = m.Predict(context.Background(), tbl)

	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if httpErr.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("StatusCode = %d", httpErr.StatusCode)
	}
}

func TestRemotePredictCountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	}))
	defer srv.Close()

	r, _ := NewRemote(RemoteSpec{BaseURL: srv.URL}, Options{})
	tbl, _ := NewTable(sampleRow())
	if _, err := r.Predict(context.Background(), tbl); err == nil {
		t.Error("expected error when prediction count differs from row count")
	}
}

func TestNewRemoteRequiresURL(t *testing.T) {
	if _, err := NewRemote(RemoteSpec{}, Options{}); err == nil {
		t.Error("expected error for empty base_url")
	}
}
