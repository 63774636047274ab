package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/agriyield/internal/features"
	"github.com/yourusername/agriyield/internal/models"
)

// decisionTree is one regression tree in sklearn's array encoding: node i
// branches to ChildrenLeft[i] when x[Feature[i]] <= Threshold[i], and a
// node with ChildrenLeft[i] == -1 is a leaf holding Value[i].
type decisionTree struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

func (t *decisionTree) predict(row []float64) float64 {
	node := 0
	for t.ChildrenLeft[node] != -1 {
		if row[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

func (t *decisionTree) validate() error {
	n := len(t.ChildrenLeft)
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("inconsistent node array lengths")
	}
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	for i := 0; i < n; i++ {
		if t.ChildrenLeft[i] == -1 {
			continue
		}
		if t.ChildrenLeft[i] <= i || t.ChildrenLeft[i] >= n || t.ChildrenRight[i] <= i || t.ChildrenRight[i] >= n {
			return fmt.Errorf("node %d has out-of-range children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= len(features.ModelSchema) {
			return fmt.Errorf("node %d splits on unknown feature index %d", i, t.Feature[i])
		}
	}
	return nil
}

// forestArtifact is the on-disk export of the trained ensemble.
type forestArtifact struct {
	ModelType string          `json:"model_type"`
	Version   string          `json:"version"`
	Features  []string        `json:"features"`
	Trees     []*decisionTree `json:"trees"`
}

// Forest is the trained random forest regressor, loaded from a JSON
// artifact exported by the training pipeline.
type Forest struct {
	info  ModelInfo
	trees []*decisionTree
}

// LoadForest reads and validates a forest artifact. The artifact's feature
// list must match the canonical schema exactly, order included; any drift
// means the model was trained against a different pipeline and is rejected
// with models.ErrSchemaMismatch.
func LoadForest(path string, logger *logrus.Logger) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact: %w", err)
	}

	var artifact forestArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parsing model artifact %s: %w", path, err)
	}

	if len(artifact.Features) != len(features.ModelSchema) {
		return nil, fmt.Errorf("%w: artifact has %d features, pipeline produces %d",
			models.ErrSchemaMismatch, len(artifact.Features), len(features.ModelSchema))
	}
	for i, name := range artifact.Features {
		if name != features.ModelSchema[i] {
			return nil, fmt.Errorf("%w: feature %d is %q, expected %q",
				models.ErrSchemaMismatch, i, name, features.ModelSchema[i])
		}
	}

	if len(artifact.Trees) == 0 {
		return nil, fmt.Errorf("model artifact %s contains no trees", path)
	}
	for i, tree := range artifact.Trees {
		if err := tree.validate(); err != nil {
			return nil, fmt.Errorf("model artifact %s: tree %d: %w", path, i, err)
		}
	}

	modelType := artifact.ModelType
	if modelType == "" {
		modelType = "RandomForestRegressor"
	}

	logger.WithFields(logrus.Fields{
		"path":       path,
		"model_type": modelType,
		"version":    artifact.Version,
		"trees":      len(artifact.Trees),
	}).Info("Loaded trained model artifact")

	return &Forest{
		info: ModelInfo{
			Type:         modelType,
			Version:      artifact.Version,
			IsFallback:   false,
			FeatureCount: len(artifact.Features),
		},
		trees: artifact.Trees,
	}, nil
}

// Predict averages the per-tree regressions for each row.
func (f *Forest) Predict(X *mat.Dense) ([]float64, error) {
	rows, cols := X.Dims()
	if cols != f.info.FeatureCount {
		return nil, fmt.Errorf("%w: input has %d columns, model expects %d",
			models.ErrSchemaMismatch, cols, f.info.FeatureCount)
	}

	out := make([]float64, rows)
	votes := make([]float64, len(f.trees))
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, X)
		for j, tree := range f.trees {
			votes[j] = tree.predict(row)
		}
		out[i] = stat.Mean(votes, nil)
	}
	return out, nil
}

// Info reports the artifact's identity.
func (f *Forest) Info() ModelInfo { return f.info }

// WantsScaledInput is true: the forest was trained on robust-scaled rows.
func (f *Forest) WantsScaledInput() bool { return true }
