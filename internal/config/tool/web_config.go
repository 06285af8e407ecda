package tool

// WebSearchConfig configures the Google Custom Search tool.
type WebSearchConfig struct {
	APIKey     string `json:"apiKey" yaml:"apiKey"`
	EngineID   string `json:"engineId" yaml:"engineId"`
	Endpoint   string `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,url"`
	MaxResults int    `json:"maxResults" yaml:"maxResults" validate:"gte=1,lte=10"`
}

func DefaultWebSearchConfig() WebSearchConfig {
	return WebSearchConfig{MaxResults: 10}
}

// WebFetchConfig configures the page reader behind open_webpage.
type WebFetchConfig struct {
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds" validate:"gte=1"`
	MaxChars       int    `json:"maxChars" yaml:"maxChars" validate:"gte=1"`
	UserAgent      string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
}

func DefaultWebFetchConfig() WebFetchConfig {
	return WebFetchConfig{TimeoutSeconds: 10, MaxChars: 8000}
}

// WebToolsConfig groups web-related tool settings.
type WebToolsConfig struct {
	Search WebSearchConfig `json:"search" yaml:"search"`
	Fetch  WebFetchConfig  `json:"fetch" yaml:"fetch"`
}

func DefaultWebToolsConfig() WebToolsConfig {
	return WebToolsConfig{Search: DefaultWebSearchConfig(), Fetch: DefaultWebFetchConfig()}
}
