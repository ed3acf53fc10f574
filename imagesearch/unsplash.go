package imagesearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.unsplash.com"

// Image is one search result, ready to be embedded in an article.
type Image struct {
	URL    string `json:"url"`
	Alt    string `json:"alt"`
	Credit Credit `json:"credit"`
}

// Credit names the photographer.
type Credit struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// UnsplashClient searches photos through the Unsplash API.
type UnsplashClient struct {
	accessKey string
	appName   string
	baseURL   string
	client    *http.Client
}

// Settings configures an UnsplashClient. AppName is used for the referral
// parameters Unsplash requires on attribution links.
type Settings struct {
	AccessKey string
	AppName   string
	BaseURL   string
}

func NewUnsplashClient(cfg Settings, client *http.Client) (*UnsplashClient, error) {
	if cfg.AccessKey == "" {
		return nil, errors.New("unsplash access key missing; provide unsplash.access_key or UNSPLASH_ACCESS_KEY")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &UnsplashClient{
		accessKey: cfg.AccessKey,
		appName:   cfg.AppName,
		baseURL:   strings.TrimRight(base, "/"),
		client:    client,
	}, nil
}

type searchResp struct {
	Results []photo `json:"results"`
}

type photo struct {
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Full    string `json:"full"`
	} `json:"urls"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

type errorResp struct {
	Errors []string `json:"errors"`
}

// Search returns up to limit photos matching query, in API order.
func (u *UnsplashClient) Search(ctx context.Context, query string, limit int) ([]Image, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("unsplash: empty query")
	}
	if limit <= 0 {
		limit = 1
	}
	params := url.Values{
		"query":    {query},
		"per_page": {strconv.Itoa(limit)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var e errorResp
		if json.Unmarshal(body, &e) == nil && len(e.Errors) > 0 {
			return nil, fmt.Errorf("unsplash returned HTTP %d: %s", resp.StatusCode, strings.Join(e.Errors, "; "))
		}
		return nil, fmt.Errorf("unsplash returned HTTP %d", resp.StatusCode)
	}

	var data searchResp
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing unsplash response: %w", err)
	}

	images := make([]Image, 0, len(data.Results))
	for _, p := range data.Results {
		if len(images) == limit {
			break
		}
		src := p.URLs.Regular
		if src == "" {
			src = p.URLs.Full
		}
		if src == "" {
			continue
		}
		alt := p.AltDescription
		if alt == "" {
			alt = p.Description
		}
		images = append(images, Image{
			URL: src,
			Alt: alt,
			Credit: Credit{
				Name: p.User.Name,
				Link: u.referral(p.User.Links.HTML),
			},
		})
	}
	return images, nil
}

func (u *UnsplashClient) referral(link string) string {
	if link == "" || u.appName == "" {
		return link
	}
	parsed, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := parsed.Query()
	q.Set("utm_source", u.appName)
	q.Set("utm_medium", "referral")
	parsed.RawQuery = q.Encode()
	return parsed.String()
}
