package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Server configuration
	Port      string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl   string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://deadlines.example.com)"`
	PublicDir string `long:"public-dir" env:"PUBLIC_DIR" default:"./public" description:"Directory with static files for the upload page"`
	UploadDir string `long:"upload-dir" env:"UPLOAD_DIR" default:"./uploads" description:"Directory for temporary uploaded files"`

	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./deadline-sync.db" description:"Path to the SQLite database file"`

	// Pipeline configuration
	RulesFile string `long:"rules-file" env:"RULES_FILE" default:"./rules.yml" description:"Optional YAML file with additional extraction rules"`

	// Google Calendar configuration
	CredentialsFile string `long:"credentials-file" env:"GOOGLE_CREDENTIALS_FILE" default:"./credentials.json" description:"Google OAuth2 client credentials JSON file"`
	TokenFile       string `long:"token-file" env:"GOOGLE_TOKEN_FILE" default:"./token.json" description:"Path for the persisted OAuth2 token"`
	CalendarID      string `long:"calendar-id" env:"GOOGLE_CALENDAR_ID" default:"primary" description:"Target Google calendar"`

	// OpenAI configuration
	OpenAIKey   string `long:"openai-key" env:"OPENAI_API_KEY" description:"OpenAI API key (study plans and deadline restructuring are disabled without it)"`
	OpenAIModel string `long:"openai-model" env:"OPENAI_MODEL" default:"gpt-4o" description:"OpenAI model for plan generation"`

	// OCR configuration
	OCRLanguage string `long:"ocr-language" env:"OCR_LANGUAGE" default:"eng" description:"Tesseract language code for text recognition"`

	// Application metadata
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the documents endpoints (optional)"`
	Debug        bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:            raw.Port,
		BaseUrl:         raw.BaseUrl,
		PublicDir:       raw.PublicDir,
		UploadDir:       raw.UploadDir,
		DBPath:          raw.DBPath,
		RulesFile:       raw.RulesFile,
		CredentialsFile: raw.CredentialsFile,
		TokenFile:       raw.TokenFile,
		CalendarID:      raw.CalendarID,
		OpenAIKey:       raw.OpenAIKey,
		OpenAIModel:     raw.OpenAIModel,
		OCRLanguage:     raw.OCRLanguage,
		APIAccessKey:    raw.APIAccessKey,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(cfg *Cfg) {
	globalCfg = cfg
}
