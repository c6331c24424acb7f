// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Thresholds the decision rules depend on are named fields, never literals.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// MinMatchScore is the minimum fuzzy-match score (0-100) a subject
	// lookup must reach before field extraction trusts the window.
	MinMatchScore int `koanf:"min_match_score"`

	// SimilarityMin is the minimum course-content similarity (0-100)
	// required for the similarity signal to pass.
	SimilarityMin float64 `koanf:"similarity_min"`

	// MinCreditHours is the minimum credit-hour count required to pass.
	MinCreditHours int `koanf:"min_credit_hours"`

	// MinPassingGrade is the lowest letter grade accepted, e.g. "C".
	MinPassingGrade string `koanf:"min_passing_grade"`

	// WindowRadius is the number of lines searched on each side of a
	// located subject line.
	WindowRadius int `koanf:"window_radius"`

	// Scorer selects the similarity strategy: "embedding" or "tfidf".
	Scorer string `koanf:"scorer"`

	// ModelBaseURL points at the Ollama-compatible model API.
	ModelBaseURL string `koanf:"model_base_url"`

	// EmbedModel names the embedding model.
	EmbedModel string `koanf:"embed_model"`

	// GenerateModel names the generative model used as extraction fallback.
	GenerateModel string `koanf:"generate_model"`

	// GenerateMaxTokens bounds the fallback response length.
	GenerateMaxTokens int `koanf:"generate_max_tokens"`

	// ModelMaxConcurrent bounds in-flight calls against the model API.
	ModelMaxConcurrent int `koanf:"model_max_concurrent"`

	// ModelTimeoutMS is the per-call timeout for model requests.
	ModelTimeoutMS int `koanf:"model_timeout_ms"`

	// EmbeddingCacheSize bounds the in-memory embedding cache.
	EmbeddingCacheSize int `koanf:"embedding_cache_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8000",
		MinMatchScore:      80,
		SimilarityMin:      80,
		MinCreditHours:     3,
		MinPassingGrade:    "C",
		WindowRadius:       3,
		Scorer:             "embedding",
		ModelBaseURL:       "http://localhost:11434/api",
		EmbedModel:         "all-minilm",
		GenerateModel:      "flan-t5",
		GenerateMaxTokens:  16,
		ModelMaxConcurrent: 4,
		ModelTimeoutMS:     30_000,
		EmbeddingCacheSize: 10_000,
	}
}
