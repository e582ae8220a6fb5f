// Package newsrss reads per-country headlines from an RSS or Atom feed.
// It is the alternative to NewsAPI when no API key is available.
package newsrss

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"

	"country-explorer/internal/domain/entity"
	"country-explorer/internal/infra/apiclient"
)

// Client fetches a feed whose URL is built from a template. The template's
// {country} placeholder is replaced with the lower-case code and {COUNTRY}
// with the upper-case code.
type Client struct {
	api         *apiclient.Client
	urlTemplate string
}

func New(api *apiclient.Client, urlTemplate string) *Client {
	return &Client{api: api, urlTemplate: urlTemplate}
}

// FeedURL returns the feed location for a two-letter country code.
func (c *Client) FeedURL(alpha2 string) string {
	alpha2 = strings.TrimSpace(alpha2)
	return strings.NewReplacer(
		"{country}", strings.ToLower(alpha2),
		"{COUNTRY}", strings.ToUpper(alpha2),
	).Replace(c.urlTemplate)
}

// Headlines returns the feed items for the country in feed order.
func (c *Client) Headlines(ctx context.Context, alpha2 string) ([]entity.NewsArticle, error) {
	body, err := c.api.GetURL(ctx, c.FeedURL(alpha2), nil)
	if err != nil {
		return nil, fmt.Errorf("feed for %s: %w", alpha2, err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("feed for %s: %w: %v", alpha2, apiclient.ErrDecode, err)
	}

	articles := make([]entity.NewsArticle, 0, len(feed.Items))
	for _, it := range feed.Items {
		articles = append(articles, toArticle(feed, it))
	}
	return articles, nil
}

func toArticle(feed *gofeed.Feed, it *gofeed.Item) entity.NewsArticle {
	article := entity.NewsArticle{
		Title:       strings.TrimSpace(it.Title),
		Description: strings.TrimSpace(it.Description),
		URL:         it.Link,
		SourceName:  feed.Title,
	}
	if it.PublishedParsed != nil {
		article.PublishedAt = *it.PublishedParsed
	} else if it.UpdatedParsed != nil {
		article.PublishedAt = *it.UpdatedParsed
	}
	if it.Image != nil {
		article.ImageURL = it.Image.URL
	} else {
		for _, enc := range it.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				article.ImageURL = enc.URL
				break
			}
		}
	}
	if len(it.Authors) > 0 && it.Authors[0].Name != "" {
		article.SourceName = it.Authors[0].Name
	}
	return article
}
