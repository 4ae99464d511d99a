package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-screening-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3})
		assert.Error(t, err)
	})
}

func TestStaticCalculator(t *testing.T) {
	calc := NewStaticCalculator(0.8)

	vec, err := calc.Encode(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, vec)

	score, err := calc.ComputeSimilarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, score, 1e-9)
}

func TestStaticCalculatorDefaultScore(t *testing.T) {
	calc := NewStaticCalculator(0)
	score, err := calc.ComputeSimilarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.8, score, 1e-9)
}

// newTestCalculator 指向本地httptest服务的DashScope计算器
func newTestCalculator(t *testing.T, handler http.HandlerFunc) *DashScopeCalculator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	calc, err := NewDashScopeCalculator(config.EmbeddingConfig{
		APIKey:     "sk-test",
		Model:      "text-embedding-v3",
		Dimensions: 4,
		BaseURL:    server.URL,
		Timeout:    5,
	})
	require.NoError(t, err)
	return calc
}

func TestDashScopeEncode(t *testing.T) {
	calc := newTestCalculator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req["input"])
		assert.Equal(t, "text-embedding-v3", req["model"])

		fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","embedding":[0.1,0.2,0.3,0.4],"index":0}],"model":"text-embedding-v3","usage":{"prompt_tokens":1,"total_tokens":1}}`)
	})

	vec, err := calc.Encode(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, vec)
}

func TestDashScopeComputeSimilarity(t *testing.T) {
	calc := newTestCalculator(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		// 两段文本合并为一次批量请求
		assert.Equal(t, []interface{}{"text one", "text two"}, req["input"])

		// index乱序返回也要正确对应
		fmt.Fprint(w, `{"object":"list","data":[{"object":"embedding","embedding":[0,1],"index":1},{"object":"embedding","embedding":[1,0],"index":0}],"model":"text-embedding-v3","usage":{"prompt_tokens":2,"total_tokens":2}}`)
	})

	score, err := calc.ComputeSimilarity(context.Background(), "text one", "text two")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestDashScopeAPIError(t *testing.T) {
	calc := newTestCalculator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"Invalid API key","type":"invalid_request_error","code":"invalid_api_key"}`)
	})

	_, err := calc.Encode(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestDashScopeEmbeddedError(t *testing.T) {
	// API级别错误可能随200 OK返回
	calc := newTestCalculator(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"object":"list","data":[],"error":{"message":"too many inputs","type":"invalid_request_error","code":"limit"}}`)
	})

	_, err := calc.Encode(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many inputs")
}

func TestNewDashScopeCalculatorRequiresKey(t *testing.T) {
	_, err := NewDashScopeCalculator(config.EmbeddingConfig{})
	assert.Error(t, err)
}

func TestCacheKeyDeterministic(t *testing.T) {
	c := &CachedCalculator{}

	k1 := c.cacheKey("resume text", "job text")
	k2 := c.cacheKey("resume text", "job text")
	k3 := c.cacheKey("job text", "resume text")

	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3) // 方向敏感，与计算语义一致
	assert.Contains(t, k1, "similarity:score:")
}

func TestWarmup(t *testing.T) {
	assert.NoError(t, Warmup(context.Background(), NewStaticCalculator(0.8)))
}
