// Package parser 提供简历文件的文本提取能力
package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"resume-screening-go/internal/logger"
)

// PDFExtractor PDF提取器接口
type PDFExtractor interface {
	// ExtractTextFromReader 从io.Reader提取纯文本
	ExtractTextFromReader(ctx context.Context, reader io.Reader, filename string) (string, error)

	// ExtractTextFromBytes 从字节数组提取纯文本
	ExtractTextFromBytes(ctx context.Context, data []byte, filename string) (string, error)
}

// TikaPDFExtractor 是基于Apache Tika的PDF解析器
type TikaPDFExtractor struct {
	// Tika服务器地址，例如 http://localhost:9998
	ServerURL string
	// HTTP客户端，可配置超时等参数
	Client *http.Client
	// 是否提取链接注释文本
	extractAnnotations bool
}

// TikaOption 定义配置选项函数
type TikaOption func(*TikaPDFExtractor)

// WithAnnotations 配置是否提取PDF链接注释文本
func WithAnnotations(extract bool) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.extractAnnotations = extract
	}
}

// WithTimeout 配置HTTP客户端超时时间
func WithTimeout(timeout time.Duration) TikaOption {
	return func(e *TikaPDFExtractor) {
		e.Client.Timeout = timeout
	}
}

// 确保TikaPDFExtractor实现了PDFExtractor接口
var _ PDFExtractor = (*TikaPDFExtractor)(nil)

// NewTikaPDFExtractor 创建一个新的Tika PDF解析器
func NewTikaPDFExtractor(serverURL string, options ...TikaOption) *TikaPDFExtractor {
	extractor := &TikaPDFExtractor{
		ServerURL: serverURL,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
		extractAnnotations: true,
	}

	for _, option := range options {
		option(extractor)
	}

	return extractor
}

// ExtractTextFromReader 从io.Reader提取文本内容
func (e *TikaPDFExtractor) ExtractTextFromReader(ctx context.Context, reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("读取PDF内容失败: %w", err)
	}
	return e.ExtractTextFromBytes(ctx, data, filename)
}

// ExtractTextFromBytes 从字节数组提取文本内容
func (e *TikaPDFExtractor) ExtractTextFromBytes(ctx context.Context, data []byte, filename string) (string, error) {
	startTime := time.Now()

	// 纯文本模式
	url := fmt.Sprintf("%s/tika", e.ServerURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("创建HTTP请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "text/plain")
	if filename != "" {
		req.Header.Set("X-Tika-Resource-Name", filename)
	}
	if !e.extractAnnotations {
		req.Header.Set("X-Tika-PDFExtractAnnotationText", "false")
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("发送请求到Tika服务器失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tika服务器返回错误状态码: %d", resp.StatusCode)
	}

	textBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("读取Tika响应失败: %w", err)
	}

	logger.Debug().
		Str("filename", filename).
		Int("text_length", len(textBytes)).
		Dur("duration", time.Since(startTime)).
		Msg("PDF文本提取完成")

	return string(textBytes), nil
}
