package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-screening-go/internal/config"
	"resume-screening-go/internal/logger"
)

// DashScopeCalculator 基于阿里云DashScope Embedding服务的相似度计算器
// (OpenAI兼容接口)
type DashScopeCalculator struct {
	apiKey     string
	model      string
	dimensions int
	baseURL    string
	httpClient *http.Client
}

// NewDashScopeCalculator 创建新的DashScope相似度计算器
func NewDashScopeCalculator(embeddingCfg config.EmbeddingConfig) (*DashScopeCalculator, error) {
	if embeddingCfg.APIKey == "" {
		return nil, fmt.Errorf("API密钥不能为空")
	}

	model := embeddingCfg.Model
	if model == "" {
		model = "text-embedding-v3"
	}
	baseURL := embeddingCfg.BaseURL
	if baseURL == "" {
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings"
	}
	timeout := time.Duration(embeddingCfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &DashScopeCalculator{
		apiKey:     embeddingCfg.APIKey,
		model:      model,
		dimensions: embeddingCfg.Dimensions,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetDimensions 返回配置的向量维度
func (d *DashScopeCalculator) GetDimensions() int {
	return d.dimensions
}

// embeddingRequest Embedding请求结构 (OpenAI compatible)
type embeddingRequest struct {
	Input          interface{} `json:"input"` // string or []string
	Model          string      `json:"model"`
	Dimensions     int         `json:"dimensions,omitempty"`      // text-embedding-v3支持
	EncodingFormat string      `json:"encoding_format,omitempty"` // 例如 "float"
}

// embeddingResponse Embedding响应结构 (OpenAI compatible)
type embeddingResponse struct {
	Object string           `json:"object"`
	Data   []embeddingEntry `json:"data"`
	Model  string           `json:"model"`
	Usage  embeddingUsage   `json:"usage"`
	ID     string           `json:"id,omitempty"`
	Error  *embeddingError  `json:"error,omitempty"`
}

type embeddingEntry struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

type embeddingUsage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// embeddingError API级别错误，可能随200 OK返回
type embeddingError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// Encode 将单段文本转换为向量
func (d *DashScopeCalculator) Encode(ctx context.Context, text string) ([]float64, error) {
	embeddings, err := d.embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("Embedding服务返回空结果")
	}
	return embeddings[0], nil
}

// ComputeSimilarity 计算两段文本的余弦相似度
// 两段文本合并为一次批量请求，减少一半的API调用
func (d *DashScopeCalculator) ComputeSimilarity(ctx context.Context, text1, text2 string) (float64, error) {
	embeddings, err := d.embed(ctx, []string{text1, text2})
	if err != nil {
		return 0, err
	}
	if len(embeddings) < 2 {
		return 0, fmt.Errorf("Embedding服务返回结果数量不足: %d", len(embeddings))
	}

	return CosineSimilarity(embeddings[0], embeddings[1])
}

// embed 调用Embedding接口，input为string或[]string
func (d *DashScopeCalculator) embed(ctx context.Context, input interface{}) ([][]float64, error) {
	reqBody := embeddingRequest{
		Input: input,
		Model: d.model,
	}
	if d.dimensions > 0 {
		reqBody.Dimensions = d.dimensions
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建HTTP请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送HTTP请求失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr embeddingError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API调用失败, 状态码: %d, 类型: %s, 错误: %s, Code: %s",
				resp.StatusCode, apiErr.Type, apiErr.Message, apiErr.Code)
		}
		return nil, fmt.Errorf("API调用失败, 状态码: %d, 响应: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("解析响应JSON失败: %w", err)
	}

	if parsed.Error != nil && parsed.Error.Message != "" {
		return nil, fmt.Errorf("API返回错误: 类型=%s, 消息='%s', Code=%s",
			parsed.Error.Type, parsed.Error.Message, parsed.Error.Code)
	}

	// 响应顺序按index排列，确保与输入对应
	embeddings := make([][]float64, len(parsed.Data))
	for i, entry := range parsed.Data {
		idx := entry.Index
		if idx < 0 || idx >= len(embeddings) {
			idx = i
		}
		embeddings[idx] = entry.Embedding
	}

	logger.Debug().
		Str("model", parsed.Model).
		Int("entries", len(parsed.Data)).
		Int("prompt_tokens", parsed.Usage.PromptTokens).
		Msg("Embedding请求完成")

	return embeddings, nil
}
