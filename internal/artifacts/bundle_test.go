package artifacts

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumesh-12/energy-demand-prediction/internal/features"
	"github.com/sumesh-12/energy-demand-prediction/internal/predictor"
)

func writePlaceholder(t *testing.T, seed uint64) string {
	t.Helper()
	b, err := Placeholder(2025, seed)
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, Write(dir, b))
	return dir
}

func TestPlaceholder(t *testing.T) {
	b, err := Placeholder(2025, 42)
	require.NoError(t, err)

	require.NoError(t, CheckShape(b.Model))
	assert.Equal(t, features.Count, b.Scalers.Len())

	// Month column spans 1..12 over the year, so its scaler is non-trivial.
	sc, ok := b.Scalers.Scaler(features.Month)
	require.True(t, ok)
	assert.InDelta(t, 0.0, sc.Transform(6.5), 0.1)
}

func TestLoad_DirRoundtrip(t *testing.T) {
	dir := writePlaceholder(t, 42)

	for _, name := range []string{ModelFile, ScalersFile, TargetFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	b, err := Load(context.Background(), DirSource{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, features.Count, b.Model.InputWidth)
	assert.Equal(t, predictor.WindowLength, b.Model.WindowLength)
	assert.Len(t, b.Fingerprint, 16)

	again, err := Load(context.Background(), DirSource{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, b.Fingerprint, again.Fingerprint, "fingerprint is content-based")

	other, err := Load(context.Background(), DirSource{Dir: writePlaceholder(t, 7)})
	require.NoError(t, err)
	assert.NotEqual(t, b.Fingerprint, other.Fingerprint)
}

func TestLoad_MissingFile(t *testing.T) {
	dir := writePlaceholder(t, 42)
	require.NoError(t, os.Remove(filepath.Join(dir, TargetFile)))

	_, err := Load(context.Background(), DirSource{Dir: dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), TargetFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_WidthMismatch(t *testing.T) {
	dir := writePlaceholder(t, 42)

	rng := rand.New(rand.NewPCG(1, 0))
	narrow := predictor.NewSequenceModel(predictor.WindowLength, 12, 4, []int{1}, rng)
	data, err := narrow.Save()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFile), data, 0o644))

	_, err = Load(context.Background(), DirSource{Dir: dir})
	assert.ErrorContains(t, err, "schema width")
}

func TestCheckShape_WindowLength(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 0))
	m := predictor.NewSequenceModel(24, features.Count, 4, []int{1}, rng)
	assert.ErrorContains(t, CheckShape(m), "window length")
}

func TestLoad_BadScalerFile(t *testing.T) {
	dir := writePlaceholder(t, 42)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ScalersFile),
		[]byte(`{"scalers":{"cloud_cover":{"kind":"standard","scale":1}}}`), 0o644))

	_, err := Load(context.Background(), DirSource{Dir: dir})
	assert.ErrorContains(t, err, "cloud_cover")
}

func TestSources_String(t *testing.T) {
	assert.Equal(t, "dir:/srv/model", DirSource{Dir: "/srv/model"}.String())

	src, err := NewMinioSource(MinioConfig{Endpoint: "localhost:9000", Bucket: "models", Prefix: "load/v3"})
	require.NoError(t, err)
	assert.Equal(t, "minio:models/load/v3", src.String())
}
