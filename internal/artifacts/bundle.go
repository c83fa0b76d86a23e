// Package artifacts loads the pretrained model and its fitted scalers.
package artifacts

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sumesh-12/energy-demand-prediction/internal/features"
	"github.com/sumesh-12/energy-demand-prediction/internal/predictor"
	"github.com/sumesh-12/energy-demand-prediction/internal/scaling"
)

// Artifact file names.
const (
	ModelFile   = "model.json"
	ScalersFile = "scaler_features.json"
	TargetFile  = "target_scaler.json"
)

// Bundle is everything inference needs. It is immutable once loaded.
type Bundle struct {
	Model   *predictor.SequenceModel
	Scalers *scaling.ScalerSet
	Target  *scaling.TargetTransform

	// Fingerprint is a content hash of the three artifact files.
	Fingerprint string
}

// Load reads and validates the bundle from src. The model's input width must
// match the feature schema and its window length must be predictor.WindowLength.
func Load(ctx context.Context, src Source) (*Bundle, error) {
	hash := sha256.New()

	modelData, err := readAll(ctx, src, ModelFile, hash)
	if err != nil {
		return nil, err
	}
	scalerData, err := readAll(ctx, src, ScalersFile, hash)
	if err != nil {
		return nil, err
	}
	targetData, err := readAll(ctx, src, TargetFile, hash)
	if err != nil {
		return nil, err
	}

	m, err := predictor.LoadSequenceModel(modelData)
	if err != nil {
		return nil, fmt.Errorf("loading model: %w", err)
	}
	if err := CheckShape(m); err != nil {
		return nil, err
	}
	scalers, err := scaling.ParseScalerSet(scalerData)
	if err != nil {
		return nil, err
	}
	target, err := scaling.ParseTargetTransform(targetData)
	if err != nil {
		return nil, err
	}

	return &Bundle{
		Model:       m,
		Scalers:     scalers,
		Target:      target,
		Fingerprint: hex.EncodeToString(hash.Sum(nil))[:16],
	}, nil
}

// CheckShape verifies the model against the feature schema and window length.
func CheckShape(m *predictor.SequenceModel) error {
	if m.InputWidth != features.Count {
		return fmt.Errorf("model input width %d does not match feature schema width %d", m.InputWidth, features.Count)
	}
	if m.WindowLength != predictor.WindowLength {
		return fmt.Errorf("model window length %d, expected %d", m.WindowLength, predictor.WindowLength)
	}
	return nil
}

func readAll(ctx context.Context, src Source, name string, hash io.Writer) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("opening %s from %s: %w", name, src, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s from %s: %w", name, src, err)
	}
	hash.Write(data)
	return data, nil
}

// Write stores the bundle's three files in dir.
func Write(dir string, b *Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	modelData, err := b.Model.Save()
	if err != nil {
		return fmt.Errorf("serializing model: %w", err)
	}
	scalerData, err := b.Scalers.MarshalJSON()
	if err != nil {
		return fmt.Errorf("serializing feature scalers: %w", err)
	}
	targetData, err := b.Target.MarshalJSON()
	if err != nil {
		return fmt.Errorf("serializing target scaler: %w", err)
	}
	files := map[string][]byte{
		ModelFile:   modelData,
		ScalersFile: scalerData,
		TargetFile:  targetData,
	}
	for name, data := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", p, err)
		}
	}
	return nil
}
