/*
Mistral OCR 接口客户端。

处理流程与官方SDK一致：先上传文件（purpose=ocr），再取签名URL，
最后以 document_url 方式发起OCR请求。三步都是一次性调用，不做重试。
*/

package mistral

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"paper-cloud/config"
	"paper-cloud/internal/model"

	"github.com/bytedance/sonic"
)

const (
	defaultBaseURL = "https://api.mistral.ai"
	defaultModel   = "mistral-ocr-latest"
	defaultTimeout = 5 * time.Minute
)

type Client struct {
	baseURL            string
	apiKey             string
	model              string
	includeImageBase64 bool
	httpClient         *http.Client
}

// NewClient 创建Mistral OCR客户端，APIKey为必填项
func NewClient(cfg *config.OCRConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mistral OCR需要配置api_key")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	ocrModel := cfg.Model
	if ocrModel == "" {
		ocrModel = defaultModel
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	return &Client{
		baseURL:            baseURL,
		apiKey:             cfg.APIKey,
		model:              ocrModel,
		includeImageBase64: cfg.IncludeImageBase64,
		httpClient:         &http.Client{Timeout: timeout},
	}, nil
}

// uploadResponse 文件上传接口响应
type uploadResponse struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Purpose  string `json:"purpose"`
}

// signedURLResponse 签名URL接口响应
type signedURLResponse struct {
	URL string `json:"url"`
}

// ocrRequest OCR处理请求体
type ocrRequest struct {
	Model              string      `json:"model"`
	Document           ocrDocument `json:"document"`
	IncludeImageBase64 bool        `json:"include_image_base64"`
}

type ocrDocument struct {
	Type        string `json:"type"`
	DocumentURL string `json:"document_url"`
}

// Process 上传PDF并执行OCR
func (c *Client) Process(ctx context.Context, filePath string) (*model.OCRResult, error) {
	uploaded, err := c.uploadFile(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("文件上传失败: %w", err)
	}

	signedURL, err := c.getSignedURL(ctx, uploaded.ID)
	if err != nil {
		return nil, fmt.Errorf("获取签名URL失败: %w", err)
	}

	result, err := c.processOCR(ctx, signedURL.URL)
	if err != nil {
		return nil, fmt.Errorf("OCR处理失败: %w", err)
	}
	return result, nil
}

// uploadFile 以multipart形式上传文件，purpose固定为ocr
func (c *Client) uploadFile(ctx context.Context, filePath string) (*uploadResponse, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开文件失败: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if err := writer.WriteField("purpose", "ocr"); err != nil {
		return nil, err
	}
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/files", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var uploaded uploadResponse
	if err := c.doJSON(req, &uploaded); err != nil {
		return nil, err
	}
	return &uploaded, nil
}

// getSignedURL 获取已上传文件的临时下载地址
func (c *Client) getSignedURL(ctx context.Context, fileID string) (*signedURLResponse, error) {
	url := fmt.Sprintf("%s/v1/files/%s/url", c.baseURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var signed signedURLResponse
	if err := c.doJSON(req, &signed); err != nil {
		return nil, err
	}
	return &signed, nil
}

// processOCR 以document_url方式发起OCR请求
func (c *Client) processOCR(ctx context.Context, documentURL string) (*model.OCRResult, error) {
	payload, err := sonic.Marshal(ocrRequest{
		Model: c.model,
		Document: ocrDocument{
			Type:        "document_url",
			DocumentURL: documentURL,
		},
		IncludeImageBase64: c.includeImageBase64,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/ocr", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	var result model.OCRResult
	if err := c.doJSON(req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doJSON 执行请求并将响应解析到out，非2xx时返回带响应内容的错误
func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("接口返回 %d: %s", resp.StatusCode, truncate(data, 512))
	}

	if err := sonic.Unmarshal(data, out); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}

func truncate(data []byte, n int) string {
	if len(data) > n {
		return string(data[:n]) + "..."
	}
	return string(data)
}
