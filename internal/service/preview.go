package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mn-works/earnbot/internal/config"
)

// PreviewService fetches a page title for non-video task URLs so the task
// card can show what the link points at. Best effort; callers ignore errors.
type PreviewService struct {
	httpClient *http.Client
}

func NewPreviewService() *PreviewService {
	return &PreviewService{
		httpClient: &http.Client{Timeout: config.PreviewTimeout},
	}
}

func (s *PreviewService) Title(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og), nil
	}
	return strings.TrimSpace(doc.Find("title").First().Text()), nil
}
