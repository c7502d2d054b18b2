package literature

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// SemanticScholarProvider queries the Semantic Scholar graph API.
type SemanticScholarProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewSemanticScholarProvider(baseURL string, client *http.Client) *SemanticScholarProvider {
	if baseURL == "" {
		baseURL = "https://api.semanticscholar.org"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &SemanticScholarProvider{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

func (p *SemanticScholarProvider) Name() string { return "semantic_scholar" }

type semanticScholarResponse struct {
	Data []struct {
		Title    string `json:"title"`
		Abstract string `json:"abstract"`
		Year     int    `json:"year"`
		Venue    string `json:"venue"`
		URL      string `json:"url"`
		Authors  []struct {
			Name string `json:"name"`
		} `json:"authors"`
		CitationCount int `json:"citationCount"`
	} `json:"data"`
}

func (p *SemanticScholarProvider) Search(ctx context.Context, query string, limit int) ([]Paper, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("fields", "title,abstract,year,venue,url,authors,citationCount")

	endpoint := p.BaseURL + "/graph/v1/paper/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("semantic scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("semantic scholar returned status %d", resp.StatusCode)
	}

	var body semanticScholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("semantic scholar decode: %w", err)
	}

	papers := make([]Paper, 0, len(body.Data))
	for _, item := range body.Data {
		if strings.TrimSpace(item.Title) == "" {
			continue
		}
		paper := Paper{
			Title:     item.Title,
			Abstract:  item.Abstract,
			Year:      item.Year,
			Venue:     item.Venue,
			URL:       item.URL,
			Citations: item.CitationCount,
			Source:    p.Name(),
		}
		for _, a := range item.Authors {
			if a.Name != "" {
				paper.Authors = append(paper.Authors, a.Name)
			}
		}
		papers = append(papers, paper)
	}
	return papers, nil
}
