package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Prediction is one ranked classifier output.
type Prediction struct {
	Label      string
	Confidence float64
}

// Classifier ranks the waste item visible in an image. Implementations
// wrap an external pretrained model; the caller only consumes the
// top-ranked predictions.
type Classifier interface {
	Classify(ctx context.Context, image []byte, mimeType string) ([]Prediction, error)
}

type GeminiClassifier struct {
	model string
}

func NewGeminiClassifier(model string) *GeminiClassifier {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiClassifier{model: model}
}

const classifyPrompt = `あなたは廃棄物画像の分類器です。
画像に写っている廃棄物を識別し、最大3件の候補を確信度の高い順に返してください。
各行は「label confidence」の形式で、label は英語の小文字スネークケース
（例: plastic_bottle, paper, glass_jar, metal_can）、confidence は 0〜1 の小数です。
説明文や記号、見出しは出さないでください。
例:
plastic_bottle 0.93
glass_jar 0.41
paper 0.12`

func (c *GeminiClassifier) Classify(ctx context.Context, image []byte, mimeType string) ([]Prediction, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("image is required")
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[classify] stage=client_init err=%v", err)
		return nil, err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(classifyPrompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	log.Printf("[classify] stage=gemini_start model=%s bytes=%d", c.model, len(image))
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[classify] stage=gemini_fail model=%s err=%v", c.model, err)
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	rawText := res.Text()
	preds, err := ParsePredictions(rawText)
	if err != nil {
		text := strings.ReplaceAll(rawText, "\n", " ")
		if len(text) > 80 {
			text = text[:80]
		}
		log.Printf("[classify] stage=parse_fail len=%d text=%q err=%v", len(rawText), text, err)
		return nil, err
	}
	log.Printf("[classify] stage=done model=%s top=%s conf=%.2f totalMs=%d",
		c.model, preds[0].Label, preds[0].Confidence, time.Since(start).Milliseconds())
	return preds, nil
}
