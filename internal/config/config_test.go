package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 10, cfg.Server.MaxFiles)
	assert.Equal(t, "http://localhost:9998", cfg.Tika.ServerURL)
	assert.Equal(t, "dashscope", cfg.Similarity.Provider)
	assert.Equal(t, "text-embedding-v3", cfg.Similarity.Embedding.Model)
	assert.Equal(t, 1024, cfg.Similarity.Embedding.Dimensions)

	assert.InDelta(t, 0.10, cfg.Scoring.Weights.General, 1e-9)
	assert.InDelta(t, 0.40, cfg.Scoring.Weights.Skills, 1e-9)
	assert.InDelta(t, 0.30, cfg.Scoring.Weights.Experience, 1e-9)
	assert.InDelta(t, 0.20, cfg.Scoring.Weights.Education, 1e-9)
	assert.InDelta(t, 1.0, cfg.Scoring.Weights.Sum(), 0.01)

	assert.Equal(t, float64(30), cfg.Scoring.Thresholds.Skills)
	assert.Equal(t, float64(20), cfg.Scoring.Thresholds.Experience)
	assert.Equal(t, float64(12), cfg.Scoring.Thresholds.Education)
	assert.Equal(t, float64(7), cfg.Scoring.Thresholds.General)

	assert.InDelta(t, 1.5, cfg.Scoring.Experience.MaxScalingFactor, 1e-9)
	assert.InDelta(t, 1.0, cfg.Scoring.Experience.NoRequirementScore, 1e-9)
	assert.InDelta(t, 0.5, cfg.Scoring.DegreeBoost, 1e-9)

	assert.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scoring.Weights.Skills = 0.60 // sum = 1.2

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWeightsInvalid)
}

func TestValidateWeightTolerance(t *testing.T) {
	cfg := DefaultConfig()
	// 在容差0.01之内应当通过
	cfg.Scoring.Weights.General = 0.105
	assert.NoError(t, cfg.Validate())

	cfg.Scoring.Weights.General = 0.12
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Similarity.Provider = "magic"
	assert.Error(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
server:
  address: ":9090"
  max_files: 5
tika:
  server_url: "http://tika.internal:9998"
similarity:
  provider: "static"
scoring:
  weights:
    general: 0.25
    skills: 0.25
    experience: 0.25
    education: 0.25
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 5, cfg.Server.MaxFiles)
	assert.Equal(t, "http://tika.internal:9998", cfg.Tika.ServerURL)
	assert.Equal(t, "static", cfg.Similarity.Provider)
	assert.InDelta(t, 0.25, cfg.Scoring.Weights.Skills, 1e-9)
	// 未覆盖的字段保留默认值
	assert.Equal(t, 60, cfg.Tika.Timeout)
	assert.InDelta(t, 1.5, cfg.Scoring.Experience.MaxScalingFactor, 1e-9)
	assert.InDelta(t, 1.0, cfg.Scoring.Experience.NoRequirementScore, 1e-9)
	assert.InDelta(t, 0.5, cfg.Scoring.DegreeBoost, 1e-9)
}

func TestLoadConfigBadWeightsFails(t *testing.T) {
	content := `
scoring:
  weights:
    general: 0.5
    skills: 0.5
    experience: 0.5
    education: 0.5
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWeightsInvalid)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DASHSCOPE_API_KEY", "sk-test-123")
	t.Setenv("SIMILARITY_PROVIDER", "STATIC")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "sk-test-123", cfg.Similarity.Embedding.APIKey)
	assert.Equal(t, "static", cfg.Similarity.Provider)
}
