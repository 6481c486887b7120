package config

import (
	"os"
	"strconv"
	"time"
)

// Config is loaded once at process start and handed to components through
// their constructors. No package keeps its own os.Getenv reads.
type Config struct {
	Port    string
	DBPath  string
	AI      AIConfig
	Reddit  RedditConfig
	Scraper ScraperConfig
}

type AIConfig struct {
	Provider string
	APIKey   string
	Model    string
}

type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

type ScraperConfig struct {
	SearchTimeout      time.Duration
	DetailTimeout      time.Duration
	ReviewsPerLocation int
	CommentsPerPost    int
	MinCommentLength   int
}

func Load() Config {
	cfg := Config{
		Port:   getEnvWithDefault("PORT", "8000"),
		DBPath: getEnvWithDefault("VIBENAV_DB_PATH", "vibe_navigator.db"),
		AI: AIConfig{
			Provider: getEnvWithDefault("AI_PROVIDER", "openai"),
			Model:    os.Getenv("AI_MODEL"),
		},
		Reddit: RedditConfig{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			UserAgent:    getEnvWithDefault("REDDIT_USER_AGENT", "vibenav-scraper/1.0"),
		},
		Scraper: ScraperConfig{
			SearchTimeout:      getDurationWithDefault("SCRAPER_SEARCH_TIMEOUT", 10*time.Second),
			DetailTimeout:      getDurationWithDefault("SCRAPER_DETAIL_TIMEOUT", 15*time.Second),
			ReviewsPerLocation: getIntWithDefault("SCRAPER_REVIEWS_PER_LOCATION", 25),
			CommentsPerPost:    getIntWithDefault("SCRAPER_COMMENTS_PER_POST", 20),
			MinCommentLength:   getIntWithDefault("SCRAPER_MIN_COMMENT_LENGTH", 50),
		},
	}

	switch cfg.AI.Provider {
	case "gemini":
		cfg.AI.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.AI.Model == "" {
			cfg.AI.Model = "gemini-1.5-flash"
		}
	default:
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.AI.Model == "" {
			cfg.AI.Model = "gpt-3.5-turbo"
		}
	}

	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
