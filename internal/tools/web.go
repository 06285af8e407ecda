package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/RomanEngeler1805/deep-research-agent/internal/schema"
)

const (
	DefaultSearchEndpoint = "https://www.googleapis.com/customsearch/v1"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultFetchTimeout   = 10 * time.Second
	DefaultMaxChars       = 8000
	maxRedirects          = 5
	maxBodyBytes          = 5 << 20
	maxArticles           = 5
)

// SearchOptions configures GoogleSearch.
type SearchOptions struct {
	APIKey     string
	EngineID   string
	Endpoint   string
	MaxResults int
}

// FetchOptions configures PageReader.
type FetchOptions struct {
	UserAgent string
	Timeout   time.Duration
	MaxChars  int
}

// ---------------------------------------------------------------------------
// GoogleSearch
// ---------------------------------------------------------------------------

// GoogleSearch queries the Google Custom Search JSON API.
type GoogleSearch struct {
	apiKey     string
	engineID   string
	endpoint   string
	maxResults int
	httpClient *http.Client
}

// NewGoogleSearch creates a GoogleSearch. MaxResults defaults to 10.
func NewGoogleSearch(opts SearchOptions) *GoogleSearch {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultSearchEndpoint
	}
	if opts.MaxResults <= 0 || opts.MaxResults > 10 {
		opts.MaxResults = 10
	}
	return &GoogleSearch{
		apiKey:     opts.APIKey,
		engineID:   opts.EngineID,
		endpoint:   opts.Endpoint,
		maxResults: opts.MaxResults,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Search runs query and formats the hits as numbered title/URL/snippet entries.
// Every failure is returned as "Error: ..." text.
func (s *GoogleSearch) Search(ctx context.Context, query string) string {
	if s.apiKey == "" {
		return "Error: Google API key not found. Please set GOOGLE_API_KEY environment variable."
	}
	if s.engineID == "" {
		return "Error: Google Search Engine ID not found. Please set GOOGLE_SEARCH_ENGINE_ID environment variable."
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return fmt.Sprintf("Error: API request failed: %v", err)
	}
	q := req.URL.Query()
	q.Set("key", s.apiKey)
	q.Set("cx", s.engineID)
	q.Set("q", query)
	q.Set("num", fmt.Sprintf("%d", s.maxResults))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error: API request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Sprintf("Error: API request failed: %s", resp.Status)
	}

	var data struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return fmt.Sprintf("Error: Failed to parse API response: %v", err)
	}
	if len(data.Items) == 0 {
		return fmt.Sprintf("No results found for query: '%s'", query)
	}

	entries := make([]string, 0, len(data.Items))
	for i, item := range data.Items {
		entries = append(entries, fmt.Sprintf("%d. %s\n   URL: %s\n   %s\n", i+1, item.Title, item.Link, item.Snippet))
	}
	return fmt.Sprintf("Top %d Google search results for '%s':\n\n", len(entries), query) +
		strings.Join(entries, "\n")
}

type googleSearchArgs struct {
	Query string `json:"query" description:"The search query string (e.g. \"latest stock market news\", \"Python tutorial\")"`
}

// NewGoogleSearchTool exposes s as the google_search tool.
func NewGoogleSearchTool(s *GoogleSearch) schema.Tool {
	return NewFunc(string(ToolGoogleSearch),
		"Search Google and return the top results with titles, URLs and snippets. Use this to find current information, news or any web content.",
		func(ctx context.Context, a googleSearchArgs) (string, error) {
			return s.Search(ctx, a.Query), nil
		})
}

// ---------------------------------------------------------------------------
// PageReader
// ---------------------------------------------------------------------------

// PageReader fetches a web page and extracts its readable content.
type PageReader struct {
	userAgent  string
	maxChars   int
	httpClient *http.Client
}

// NewPageReader creates a PageReader. Zero options fall back to a browser
// user agent, a 10s timeout and 8000 characters of output.
func NewPageReader(opts FetchOptions) *PageReader {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	client := &http.Client{
		Timeout: opts.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
	return &PageReader{userAgent: opts.UserAgent, maxChars: opts.MaxChars, httpClient: client}
}

// Open fetches rawURL and returns its main content as markdown.
// Every failure is returned as "Error: ..." text.
func (p *PageReader) Open(ctx context.Context, rawURL string) string {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Scheme == "" || pageURL.Host == "" {
		return "Error: Invalid URL format. Please provide a complete URL starting with http:// or https://"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Sprintf("Error: Failed to fetch webpage: %v", err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Sprintf("Error: Failed to fetch webpage: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Sprintf("Error: Failed to fetch webpage: %s for url: %s", resp.Status, rawURL)
	}

	ctype := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(ctype, "text/html") {
		return fmt.Sprintf("Error: URL does not return HTML content. Content type: %s", ctype)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Sprintf("Error: Failed to fetch webpage: %v", err)
	}

	text := extractContent(body, pageURL)
	return fmt.Sprintf("Content from %s:\n\n%s", rawURL, truncateText(text, p.maxChars))
}

type openWebpageArgs struct {
	URL string `json:"url" description:"The URL of the webpage to open (e.g. \"https://example.com/article\")"`
}

// NewOpenWebpageTool exposes p as the open_webpage tool.
func NewOpenWebpageTool(p *PageReader) schema.Tool {
	return NewFunc(string(ToolOpenWebpage),
		"Open a webpage and extract its readable content. Use this to read articles, news, documentation or any web content.",
		func(ctx context.Context, a openWebpageArgs) (string, error) {
			return p.Open(ctx, a.URL), nil
		})
}

// ---------------------------------------------------------------------------
// search_and_read
// ---------------------------------------------------------------------------

var reResultURL = regexp.MustCompile(`URL:\s*(https?://[^\s]+)`)

// extractURLs returns the result links of a formatted search listing.
func extractURLs(results string) []string {
	var urls []string
	for _, m := range reResultURL.FindAllStringSubmatch(results, -1) {
		urls = append(urls, m[1])
	}
	return urls
}

type searchAndReadArgs struct {
	Query       string `json:"query" description:"The search query (e.g. \"latest AI developments\")"`
	NumArticles int    `json:"num_articles" default:"2" description:"Number of articles to read (default 2, max 5)"`
}

// NewSearchAndReadTool combines a search with reading the top result pages.
func NewSearchAndReadTool(s *GoogleSearch, p *PageReader) schema.Tool {
	return NewFunc(string(ToolSearchAndRead),
		"Search for information and read the top articles to provide comprehensive, well-sourced information from multiple pages.",
		func(ctx context.Context, a searchAndReadArgs) (string, error) {
			results := s.Search(ctx, a.Query)
			if strings.HasPrefix(results, "Error:") {
				return results, nil
			}
			urls := extractURLs(results)
			if len(urls) == 0 {
				return fmt.Sprintf("No articles found for query: '%s'", a.Query), nil
			}

			n := max(1, min(a.NumArticles, maxArticles))
			if n > len(urls) {
				n = len(urls)
			}
			articles := make([]string, 0, n)
			for _, u := range urls[:n] {
				if err := ctx.Err(); err != nil {
					return "", err
				}
				articles = append(articles, p.Open(ctx, u))
			}
			return fmt.Sprintf("Comprehensive information from %d articles:\n\n%s", n, strings.Join(articles, "\n\n")), nil
		})
}

// ---------------------------------------------------------------------------
// HTML → markdown helpers
// ---------------------------------------------------------------------------

var (
	reBlankLines = regexp.MustCompile(`\n{3,}`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// extractContent pulls the readable article out of body and renders it as
// markdown, falling back to the page's plain text.
func extractContent(body []byte, pageURL *url.URL) string {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err == nil && strings.TrimSpace(article.Content) != "" {
		md, err := htmltomarkdown.ConvertString(
			article.Content,
			converter.WithDomain(pageURL.Scheme+"://"+pageURL.Host),
		)
		if err == nil && strings.TrimSpace(md) != "" {
			md = cleanMarkdown(md)
			if article.Title != "" {
				md = "# " + article.Title + "\n\n" + md
			}
			return md
		}
	}
	return plainText(body)
}

// plainText strips markup with goquery and collapses whitespace.
func plainText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(reSpaces.ReplaceAllString(doc.Text(), " "))
}

func cleanMarkdown(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	md = strings.Join(lines, "\n")
	return strings.TrimSpace(reBlankLines.ReplaceAllString(md, "\n\n"))
}

// truncateText cuts s to at most n characters and marks the cut.
func truncateText(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "... [Content truncated]"
}
