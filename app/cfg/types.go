package cfg

type Cfg struct {
	// Server configuration
	Port      string
	BaseUrl   string
	PublicDir string
	UploadDir string

	// Storage configuration
	DBPath string

	// Pipeline configuration
	RulesFile string

	// Google Calendar configuration
	CredentialsFile string
	TokenFile       string
	CalendarID      string

	// OpenAI configuration (planner is disabled when the key is empty)
	OpenAIKey   string
	OpenAIModel string

	// OCR configuration
	OCRLanguage string

	// Application metadata
	APIAccessKey string
	Debug        bool
	Version      string
}
