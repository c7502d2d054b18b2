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

// CrossRefProvider queries the CrossRef works API.
type CrossRefProvider struct {
	BaseURL string
	Client  *http.Client
}

func NewCrossRefProvider(baseURL string, client *http.Client) *CrossRefProvider {
	if baseURL == "" {
		baseURL = "https://api.crossref.org"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &CrossRefProvider{BaseURL: strings.TrimRight(baseURL, "/"), Client: client}
}

func (p *CrossRefProvider) Name() string { return "crossref" }

type crossRefResponse struct {
	Message struct {
		Items []crossRefItem `json:"items"`
	} `json:"message"`
}

type crossRefItem struct {
	Title    []string `json:"title"`
	Abstract string   `json:"abstract"`
	Author   []struct {
		Given  string `json:"given"`
		Family string `json:"family"`
	} `json:"author"`
	Issued struct {
		DateParts [][]int `json:"date-parts"`
	} `json:"issued"`
	ContainerTitle []string `json:"container-title"`
	URL            string   `json:"URL"`
	CitedByCount   int      `json:"is-referenced-by-count"`
}

func (p *CrossRefProvider) Search(ctx context.Context, query string, limit int) ([]Paper, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("rows", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/works?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("crossref request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crossref returned status %d", resp.StatusCode)
	}

	var body crossRefResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("crossref decode: %w", err)
	}

	papers := make([]Paper, 0, len(body.Message.Items))
	for _, item := range body.Message.Items {
		if len(item.Title) == 0 || strings.TrimSpace(item.Title[0]) == "" {
			continue
		}
		paper := Paper{
			Title:     item.Title[0],
			Abstract:  stripJATS(item.Abstract),
			URL:       item.URL,
			Citations: item.CitedByCount,
			Source:    p.Name(),
		}
		if len(item.ContainerTitle) > 0 {
			paper.Venue = item.ContainerTitle[0]
		}
		if len(item.Issued.DateParts) > 0 && len(item.Issued.DateParts[0]) > 0 {
			paper.Year = item.Issued.DateParts[0][0]
		}
		for _, a := range item.Author {
			name := strings.TrimSpace(a.Given + " " + a.Family)
			if name != "" {
				paper.Authors = append(paper.Authors, name)
			}
		}
		papers = append(papers, paper)
	}
	return papers, nil
}

// stripJATS removes the XML markup CrossRef embeds in abstracts.
func stripJATS(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
