package model

import "time"

// Config is the complete runtime configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Search      SearchConfig      `yaml:"search"`
	LLM         LLMConfig         `yaml:"llm"`
	Verdict     VerdictConfig     `yaml:"verdict"`
	Virality    ViralityConfig    `yaml:"virality"`
	Language    LanguageConfig    `yaml:"language"`
	Jobs        JobsConfig        `yaml:"jobs"`
	Credibility CredibilityConfig `yaml:"credibility"`
	Server      ServerConfig      `yaml:"server"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// SearchConfig controls evidence retrieval
type SearchConfig struct {
	MaxResults      int           `yaml:"max_results"`       // Top-K evidence items per claim
	RawResults      int           `yaml:"raw_results"`       // Raw hits requested from the search capability
	MinCredibility  int           `yaml:"min_credibility"`   // Floor below which hits are discarded
	RequestsPerSec  float64       `yaml:"requests_per_sec"`  // Per-domain rate limit
	Burst           int           `yaml:"burst"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	FactCheckAPIKey string        `yaml:"factcheck_api_key"` // Google Fact Check Tools API (optional)
}

// LLMConfig holds reasoning/translation provider configuration
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// VerdictConfig holds the verification safety parameters
type VerdictConfig struct {
	ReviewThreshold   int      `yaml:"review_threshold"`   // Below this confidence, needs_human_review is forced
	NeutralFloor      int      `yaml:"neutral_floor"`      // Below this confidence, the label is forced Neutral
	EmptyEvidenceCap  int      `yaml:"empty_evidence_cap"` // Confidence ceiling when no evidence was found
	MaxRetries        int      `yaml:"max_retries"`
	SensitiveKeywords []string `yaml:"sensitive_keywords"`
}

// ViralityConfig holds scoring weights. ReachWeight + EngagementWeight must sum to 1.
type ViralityConfig struct {
	ReachWeight      float64  `yaml:"reach_weight"`
	EngagementWeight float64  `yaml:"engagement_weight"`
	MaxBoost         float64  `yaml:"max_boost"`
	ViralKeywords    []string `yaml:"viral_keywords"`
}

// LanguageConfig controls explanation localization
type LanguageConfig struct {
	FullySupported []string `yaml:"fully_supported"`
}

// JobsConfig controls the in-memory job registry and execution
type JobsConfig struct {
	Workers         int           `yaml:"workers"`          // Concurrent jobs
	TTL             time.Duration `yaml:"ttl"`              // Completed-job retention
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// CredibilityConfig allows extending the built-in source table
type CredibilityConfig struct {
	Overrides map[string]CredibilityEntry `yaml:"overrides"`
}

// CredibilityEntry is one curated source record
type CredibilityEntry struct {
	Name  string     `yaml:"name"`
	Type  SourceType `yaml:"type"`
	Score int        `yaml:"score"`
}

// ServerConfig controls the HTTP API
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Veritas/1.0 (+https://github.com/veritaslabs/veritas)",
			MaxBodyBytes: 2_000_000,
		},
		Search: SearchConfig{
			MaxResults:     5,
			RawResults:     10,
			MinCredibility: 40,
			RequestsPerSec: 1,
			Burst:          3,
			CacheTTL:       15 * time.Minute,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Verdict: VerdictConfig{
			ReviewThreshold:  60,
			NeutralFloor:     35,
			EmptyEvidenceCap: 40,
			MaxRetries:       3,
			SensitiveKeywords: []string{
				"covid", "vaccine", "vaccination", "corona",
				"election", "voting", "ballot", "vote",
				"riot", "violence", "attack", "terror",
				"disaster", "earthquake", "flood", "cyclone",
				"medicine", "drug", "treatment", "cure",
			},
		},
		Virality: ViralityConfig{
			ReachWeight:      0.6,
			EngagementWeight: 0.4,
			MaxBoost:         2.5,
			ViralKeywords: []string{
				"breaking", "urgent", "alert", "warning", "shocking",
				"exposed", "revealed", "truth", "scandal", "secret",
				"share", "forward", "spread", "viral", "must watch",
			},
		},
		Language: LanguageConfig{
			FullySupported: []string{"en", "hi", "mr"},
		},
		Jobs: JobsConfig{
			Workers:         4,
			TTL:             24 * time.Hour,
			CleanupInterval: time.Hour,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}
