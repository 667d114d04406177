// internal/artifact/bundle.go
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"churn-inference/internal/common/errors"
)

const (
	labelEncodersFile = "label_encoders.json"
	oneHotFile        = "one_hot_encoder.json"
	scalerFile        = "min_max_scaler.json"
	modelFile         = "model.json"
	targetFile        = "label_encoder_target.json"
)

// Bundle is the full set of fitted artifacts exported by the training
// pipeline. It is loaded once at startup and shared read-only across
// requests.
type Bundle struct {
	LabelEncoders LabelEncoders
	OneHot        OneHotEncoder
	Scaler        MinMaxScaler
	Model         LogisticRegression
	Target        LabelEncoder
}

// Load reads the five artifact files from dir and verifies they are
// mutually consistent. Any missing, unparseable or inconsistent artifact
// fails with ARTIFACT_LOAD_FAILED.
func Load(dir string) (*Bundle, error) {
	b := &Bundle{}

	if err := loadJSON(dir, labelEncodersFile, &b.LabelEncoders); err != nil {
		return nil, err
	}
	if err := loadJSON(dir, oneHotFile, &b.OneHot); err != nil {
		return nil, err
	}
	if err := loadJSON(dir, scalerFile, &b.Scaler); err != nil {
		return nil, err
	}
	if err := loadJSON(dir, modelFile, &b.Model); err != nil {
		return nil, err
	}
	if err := loadJSON(dir, targetFile, &b.Target); err != nil {
		return nil, err
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func loadJSON(dir, name string, target interface{}) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return errors.NewArtifactLoadFailedError(name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errors.NewArtifactLoadFailedError(name, err)
	}
	return nil
}

func (b *Bundle) validate() error {
	if len(b.LabelEncoders.Columns) == 0 {
		return errors.NewArtifactLoadFailedError(labelEncodersFile, fmt.Errorf("no label-encoded columns"))
	}
	for _, column := range b.LabelEncoders.Columns {
		enc, ok := b.LabelEncoders.Encoders[column]
		if !ok {
			return errors.NewArtifactLoadFailedError(labelEncodersFile, fmt.Errorf("column %q has no encoder", column))
		}
		if len(enc.Classes) == 0 {
			return errors.NewArtifactLoadFailedError(labelEncodersFile, fmt.Errorf("column %q has no classes", column))
		}
	}

	if len(b.OneHot.Columns) == 0 || len(b.OneHot.Columns) != len(b.OneHot.Categories) {
		return errors.NewArtifactLoadFailedError(oneHotFile, fmt.Errorf(
			"%d columns but %d category lists", len(b.OneHot.Columns), len(b.OneHot.Categories)))
	}
	for i, cats := range b.OneHot.Categories {
		if len(cats) == 0 {
			return errors.NewArtifactLoadFailedError(oneHotFile, fmt.Errorf("column %q has no categories", b.OneHot.Columns[i]))
		}
	}

	n := len(b.Scaler.Columns)
	if n == 0 || len(b.Scaler.Min) != n || len(b.Scaler.Max) != n || len(b.Scaler.Mean) != n {
		return errors.NewArtifactLoadFailedError(scalerFile, fmt.Errorf(
			"mismatched parameter lengths for %d columns", n))
	}
	for i, column := range b.Scaler.Columns {
		if b.Scaler.Max[i] == b.Scaler.Min[i] {
			return errors.NewArtifactLoadFailedError(scalerFile, fmt.Errorf("column %q has max == min", column))
		}
	}

	want := len(b.LabelEncoders.Columns) + len(b.Scaler.Columns) + b.OneHot.Width()
	if len(b.Model.Coefficients) != want {
		return errors.NewArtifactLoadFailedError(modelFile, fmt.Errorf(
			"classifier width %d does not match encoder output width %d", len(b.Model.Coefficients), want))
	}
	if len(b.Model.Classes) != 2 {
		return errors.NewArtifactLoadFailedError(modelFile, fmt.Errorf(
			"expected binary classifier, got %d classes", len(b.Model.Classes)))
	}

	if len(b.Target.Classes) == 0 {
		return errors.NewArtifactLoadFailedError(targetFile, fmt.Errorf("target encoder has no classes"))
	}
	return nil
}

// FeatureWidth is the width of the feature vector the bundle encodes and
// the classifier consumes.
func (b *Bundle) FeatureWidth() int {
	return len(b.LabelEncoders.Columns) + len(b.Scaler.Columns) + b.OneHot.Width()
}
