package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"baseti_shopapp_v1_202609/internal/api/dto"
)

// ==================== 配置 ====================

type AIConfig struct {
	ApiKey       string
	ModelVersion string // 如 "gemini-2.5-flash"
}

var ErrAIKeyMissing = errors.New("Gemini API Key 未配置")

// ==================== 服务 ====================

// AIService 社媒文案生成
type AIService struct {
	config *AIConfig
}

func NewAIService(cfg *AIConfig) *AIService {
	if cfg.ModelVersion == "" {
		cfg.ModelVersion = "gemini-2.5-flash"
	}
	return &AIService{config: cfg}
}

// GenerateCaption 为商品生成平台定制的社媒文案
func (s *AIService) GenerateCaption(ctx context.Context, productName, description, platform, instruction string) (*dto.GeneratedCaption, error) {
	if s.config.ApiKey == "" {
		return nil, ErrAIKeyMissing
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.config.ApiKey))
	if err != nil {
		return nil, fmt.Errorf("Gemini 初始化失败: %v", err)
	}
	defer client.Close()

	modelAI := client.GenerativeModel(s.config.ModelVersion)
	modelAI.ResponseMIMEType = "application/json"

	prompt := fmt.Sprintf(`
        You are a social media marketing expert for small businesses.
        Write a %s post promoting this product:

        Product: %s
        Details: %s

        Requirements:
        1. Title: short hook, max 80 chars.
        2. Caption: engaging, sales-oriented, fits the platform's tone.
        3. Hashtags: 8 relevant hashtags without the # prefix.
    `, platform, productName, description)

	if instruction != "" {
		prompt += fmt.Sprintf("\nAdditional User Instructions: %s", instruction)
	}

	prompt += `
        Output Schema (JSON):
        {
            "title": "string",
            "caption": "string",
            "hashtags": ["string", "string"]
        }
    `

	resp, err := modelAI.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("AI 生成失败: %v", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("AI 返回为空")
	}

	var rawJSON string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			rawJSON = string(txt)
			break
		}
	}

	// 清洗可能存在的 markdown 符号 (```json ... ```)
	rawJSON = strings.TrimPrefix(rawJSON, "```json")
	rawJSON = strings.TrimPrefix(rawJSON, "```")
	rawJSON = strings.TrimSuffix(rawJSON, "```")

	var result dto.GeneratedCaption
	if err := json.Unmarshal([]byte(rawJSON), &result); err != nil {
		return nil, fmt.Errorf("JSON 解析失败: %v | 原始数据: %s", err, rawJSON)
	}

	return &result, nil
}
