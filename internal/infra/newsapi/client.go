// Package newsapi reads top headlines per country from NewsAPI.
package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/infra/apiclient"
)

// ErrUpstream is returned when NewsAPI answers 200 with status "error".
var ErrUpstream = errors.New("news api reported an error")

// Client fetches headlines. The API key is resolved on every call.
type Client struct {
	api    *apiclient.Client
	key    func() string
	keyEnv string
}

func New(api *apiclient.Client, key func() string, keyEnv string) *Client {
	return &Client{api: api, key: key, keyEnv: keyEnv}
}

// Headlines returns every article NewsAPI lists for the two-letter country
// code, in source order. An empty slice is a valid result.
func (c *Client) Headlines(ctx context.Context, alpha2 string) ([]entity.NewsArticle, error) {
	key := c.key()
	if key == "" {
		return nil, c.api.MissingKey(c.keyEnv)
	}

	alpha2 = strings.ToLower(strings.TrimSpace(alpha2))
	query := url.Values{
		"country": {alpha2},
		"apiKey":  {key},
	}
	var resp headlinesResponse
	if err := c.api.GetJSON(ctx, "/top-headlines", query, &resp); err != nil {
		return nil, fmt.Errorf("headlines for %s: %w", alpha2, err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("headlines for %s: %w: %s: %s", alpha2, ErrUpstream, resp.Code, resp.Message)
	}

	articles := make([]entity.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, a.toEntity())
	}
	return articles, nil
}

type headlinesResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []articleDTO `json:"articles"`
}

type articleDTO struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

func (a *articleDTO) toEntity() entity.NewsArticle {
	article := entity.NewsArticle{
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.URLToImage,
		SourceName:  a.Source.Name,
	}
	// An unparseable timestamp leaves PublishedAt zero.
	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		article.PublishedAt = t
	}
	return article
}
