package vision

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client wraps the vision and translation APIs used for photo label search.
type Client struct {
	http   *resty.Client
	apiKey string
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:   resty.New().SetTimeout(15 * time.Second),
		apiKey: apiKey,
	}
}

func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("VISION_API_KEY"))
}

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []struct {
			Description string  `json:"description"`
			Score       float64 `json:"score"`
		} `json:"labelAnnotations"`
	} `json:"responses"`
}

// DetectLabels returns the label descriptions for an image, highest score
// first. A response without annotations yields an empty slice, not an error.
func (c *Client) DetectLabels(ctx context.Context, image []byte, maxResults int) ([]string, error) {
	if maxResults < 1 {
		maxResults = 5
	}

	var out annotateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]any{
			"requests": []map[string]any{{
				"image":    map[string]string{"content": base64.StdEncoding.EncodeToString(image)},
				"features": []map[string]any{{"type": "LABEL_DETECTION", "maxResults": maxResults}},
			}},
		}).
		SetResult(&out).
		Post("https://vision.googleapis.com/v1/images:annotate")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("vision API status %d", resp.StatusCode())
	}

	var labels []string
	if len(out.Responses) > 0 {
		for _, ann := range out.Responses[0].LabelAnnotations {
			labels = append(labels, ann.Description)
		}
	}
	return labels, nil
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate converts the given texts into the target language, preserving
// order. Missing translations come back as empty strings.
func (c *Client) Translate(ctx context.Context, texts []string, target string) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	var out translateResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]any{"q": texts, "target": target}).
		SetResult(&out).
		Post("https://translation.googleapis.com/language/translate/v2")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("translate API status %d", resp.StatusCode())
	}

	translated := make([]string, len(texts))
	for i := range texts {
		if i < len(out.Data.Translations) {
			translated[i] = out.Data.Translations[i].TranslatedText
		}
	}
	return translated, nil
}
