package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Commercetools CommercetoolsConfig
	OpenAI        OpenAIConfig
	Stripe        StripeConfig
	Klaviyo       KlaviyoConfig
	Polisher      PolisherConfig
	Images        ImagesConfig
}

type AppConfig struct {
	Name            string
	Version         string
	Environment     string
	BaseURL         string
	CheckoutBaseURL string
}

type ServerConfig struct {
	Port string
}

type CommercetoolsConfig struct {
	ProjectKey   string
	ClientID     string
	ClientSecret string
	AuthURL      string
	APIURL       string
}

type OpenAIConfig struct {
	APIKey     string
	ChatModel  string
	ImageModel string
}

type StripeConfig struct {
	SecretKey string
	APIURL    string
}

type KlaviyoConfig struct {
	APIKey    string
	APIURL    string
	ListID    string
	FromEmail string
	FromName  string
}

type PolisherConfig struct {
	URL string
}

type ImagesConfig struct {
	Dir                 string
	DownloadTimeoutSecs int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	downloadTimeout := 30
	if raw := os.Getenv("IMAGE_DOWNLOAD_TIMEOUT_SECONDS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.New("invalid image download timeout")
		}
		downloadTimeout = parsed
	}

	cfg := &Config{
		App: AppConfig{
			Name:            getEnv("APP_NAME", "BundleForge"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			Environment:     getEnv("APP_ENV", "development"),
			BaseURL:         getEnv("APP_BASE_URL", "http://localhost:8080"),
			CheckoutBaseURL: getEnv("CHECKOUT_BASE_URL", "https://your-storefront.com/checkout"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Commercetools: CommercetoolsConfig{
			ProjectKey:   getEnv("CTP_PROJECT_KEY", ""),
			ClientID:     getEnv("CTP_CLIENT_ID", ""),
			ClientSecret: getEnv("CTP_CLIENT_SECRET", ""),
			AuthURL:      getEnv("CTP_AUTH_URL", "https://auth.us-central1.gcp.commercetools.com"),
			APIURL:       getEnv("CTP_API_URL", "https://api.us-central1.gcp.commercetools.com"),
		},
		OpenAI: OpenAIConfig{
			APIKey:     getEnv("OPENAI_API_KEY", ""),
			ChatModel:  getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
			APIURL:    getEnv("STRIPE_API_URL", "https://api.stripe.com"),
		},
		Klaviyo: KlaviyoConfig{
			APIKey:    getEnv("KLAVIYO_API_KEY", ""),
			APIURL:    getEnv("KLAVIYO_API_URL", "https://a.klaviyo.com"),
			ListID:    getEnv("KLAVIYO_LIST_ID", ""),
			FromEmail: getEnv("KLAVIYO_FROM_EMAIL", "campaigns@example.com"),
			FromName:  getEnv("KLAVIYO_FROM_NAME", "BundleForge"),
		},
		Polisher: PolisherConfig{
			URL: getEnv("EMAIL_POLISHER_URL", ""),
		},
		Images: ImagesConfig{
			Dir:                 getEnv("BUNDLE_IMAGE_DIR", "public/bundle-images"),
			DownloadTimeoutSecs: downloadTimeout,
		},
	}

	if cfg.Commercetools.ProjectKey == "" {
		return nil, errors.New("missing commercetools project key")
	}

	if cfg.Commercetools.ClientID == "" || cfg.Commercetools.ClientSecret == "" {
		return nil, errors.New("missing commercetools client credentials")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
