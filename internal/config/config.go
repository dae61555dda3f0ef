package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is constructed once at
// startup and passed explicitly into each component; business logic never
// reads the environment directly.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Razorpay RazorpayConfig `mapstructure:"razorpay"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Payout   PayoutConfig   `mapstructure:"payout"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// OpenAIConfig holds AI provider configuration
type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// RazorpayConfig holds payout gateway credentials
type RazorpayConfig struct {
	KeyID         string `mapstructure:"key_id"`
	KeySecret     string `mapstructure:"key_secret"`
	AccountNumber string `mapstructure:"account_number"`
	BaseURL       string `mapstructure:"base_url"`
}

// StorageConfig selects and configures the blob storage backend
type StorageConfig struct {
	Backend    string           `mapstructure:"backend"` // local, cloudinary, supabase
	Folder     string           `mapstructure:"folder"`
	Local      LocalStorage     `mapstructure:"local"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Supabase   SupabaseConfig   `mapstructure:"supabase"`
}

// LocalStorage holds local filesystem backend configuration
type LocalStorage struct {
	Dir     string `mapstructure:"dir"`
	BaseURL string `mapstructure:"base_url"`
}

// CloudinaryConfig holds media CDN credentials
type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
}

// SupabaseConfig holds object store credentials
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
	Bucket     string `mapstructure:"bucket"`
}

// PayoutConfig holds payout chain fixtures. The contact and bank account
// fields are demo placeholders carried over from the original deployment;
// a production build would source them from a user profile.
type PayoutConfig struct {
	ContactName       string `mapstructure:"contact_name"`
	ContactType       string `mapstructure:"contact_type"`
	BankHolderName    string `mapstructure:"bank_holder_name"`
	BankIFSC          string `mapstructure:"bank_ifsc"`
	BankAccountNumber string `mapstructure:"bank_account_number"`
	Currency          string `mapstructure:"currency"`
	Mode              string `mapstructure:"mode"`
}

// CORSConfig holds the fixed allow-list of frontend origins
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("openai.model", "gpt-4o")
	viper.SetDefault("openai.temperature", 0.1)
	viper.SetDefault("openai.max_tokens", 1000)

	viper.SetDefault("razorpay.base_url", "https://api.razorpay.com")

	viper.SetDefault("storage.backend", "local")
	viper.SetDefault("storage.folder", "qshala_invoices")
	viper.SetDefault("storage.local.dir", "public/invoices")
	viper.SetDefault("storage.local.base_url", "http://localhost:8080/invoices")
	viper.SetDefault("storage.supabase.bucket", "invoices")

	viper.SetDefault("payout.contact_name", "Qshala Test Employee")
	viper.SetDefault("payout.contact_type", "employee")
	viper.SetDefault("payout.bank_holder_name", "Test Account Holder")
	viper.SetDefault("payout.bank_ifsc", "UTIB0000000")
	viper.SetDefault("payout.bank_account_number", "2323231234567890")
	viper.SetDefault("payout.currency", "INR")
	viper.SetDefault("payout.mode", "IMPS")

	viper.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"https://qshala-reimbursement-app.vercel.app",
	})

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment only
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("razorpay.key_id", "RAZORPAY_KEY_ID")
	viper.BindEnv("razorpay.key_secret", "RAZORPAY_KEY_SECRET")
	viper.BindEnv("razorpay.account_number", "RAZORPAY_ACCOUNT_NUMBER")
	viper.BindEnv("storage.backend", "STORAGE_BACKEND")
	viper.BindEnv("storage.cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("storage.cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("storage.cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	viper.BindEnv("storage.supabase.url", "SUPABASE_URL")
	viper.BindEnv("storage.supabase.service_key", "SUPABASE_SERVICE_KEY")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.api_key is required")
	}
	if c.Razorpay.KeyID == "" {
		return fmt.Errorf("razorpay.key_id is required")
	}
	if c.Razorpay.KeySecret == "" {
		return fmt.Errorf("razorpay.key_secret is required")
	}
	if c.Razorpay.AccountNumber == "" {
		return fmt.Errorf("razorpay.account_number is required")
	}

	switch c.Storage.Backend {
	case "local":
		if c.Storage.Local.Dir == "" || c.Storage.Local.BaseURL == "" {
			return fmt.Errorf("storage.local.dir and storage.local.base_url are required")
		}
	case "cloudinary":
		if c.Storage.Cloudinary.CloudName == "" || c.Storage.Cloudinary.APIKey == "" || c.Storage.Cloudinary.APISecret == "" {
			return fmt.Errorf("cloudinary credentials are required")
		}
	case "supabase":
		if c.Storage.Supabase.URL == "" || c.Storage.Supabase.ServiceKey == "" {
			return fmt.Errorf("supabase url and service_key are required")
		}
	default:
		return fmt.Errorf("unknown storage backend: %s", c.Storage.Backend)
	}

	return nil
}
