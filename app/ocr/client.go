package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Client recognizes text on document images with a local Tesseract
// installation.
type Client struct {
	language string
}

func NewClient(language string) *Client {
	if language == "" {
		language = "eng"
	}
	return &Client{language: language}
}

// Recognize runs text detection on the image at path. A gosseract client
// is not safe for concurrent use, so each call owns a short-lived one.
func (c *Client) Recognize(ctx context.Context, imagePath string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(c.language); err != nil {
		return "", fmt.Errorf("failed to set OCR language: %w", err)
	}
	if err := client.SetImage(imagePath); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("text recognition failed: %w", err)
	}

	return text, nil
}
