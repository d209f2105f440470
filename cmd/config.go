package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/impactlist/impactlist/types"
)

const (
	configName = ".impactlist"
	envPrefix  = "IMPACTLIST"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

var configValidate = validator.New()

// GetConfig returns the loaded application configuration.
func GetConfig() types.AppConfig {
	return GlobalAppConfig
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env first if present; a missing file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., IMPACTLIST_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	if cfgFileFlag := viper.GetString("config"); cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		rootDir := viper.GetString("project.rootDir")
		viper.AddConfigPath(rootDir)
		viper.AddConfigPath(".")
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file is the common case on first run; only complain
		// about a file that exists but cannot be read.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "Warning: could not read config file: %v\n", err)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not parse configuration: %v\n", err)
		os.Exit(1)
	}

	// API key via env wins over anything in the file.
	if key := os.Getenv(envPrefix + "_LLM_APIKEY"); key != "" {
		GlobalAppConfig.LLM.APIKey = key
	}

	if err := configValidate.Struct(&GlobalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
}

func setConfigDefaults() {
	viper.SetDefault("project.rootDir", ".impactlist")
	viper.SetDefault("project.templatesDir", "templates")
	viper.SetDefault("data.planFile", "plan.json")
	viper.SetDefault("data.snapshotsFile", "snapshots.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("data.autosaveSeconds", 5)
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.modelName", "gpt-4o-mini")
	viper.SetDefault("llm.requestTimeoutSeconds", 120)
}
