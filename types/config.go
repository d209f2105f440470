package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
}

// ProjectConfig holds project-related settings
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir"`
}

// DataConfig holds local plan storage configuration
type DataConfig struct {
	PlanFile      string `mapstructure:"planFile" validate:"required"`
	SnapshotsFile string `mapstructure:"snapshotsFile" validate:"required"`
	Format        string `mapstructure:"format" validate:"required,oneof=json yaml"`
	// AutosaveSeconds is the idle window before a pending edit is written out.
	AutosaveSeconds int `mapstructure:"autosaveSeconds" validate:"omitempty,min=1,max=300"`
}

// LLMConfig holds configuration for the generation and coach collaborators
type LLMConfig struct {
	Provider  string `mapstructure:"provider" validate:"omitempty,oneof=openai ollama anthropic gemini"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// BaseURL is only used by the ollama provider.
	BaseURL string `mapstructure:"baseUrl"`
	// RequestTimeoutSeconds controls the timeout for LLM calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
}
