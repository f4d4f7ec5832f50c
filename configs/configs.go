package configs

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Env      string
		LogLevel string
		Seed     bool
	}
	Auction struct {
		MinIncrement int
	}
	Admin struct {
		Email        string
		PasswordHash string
	}
	Auth struct {
		SecretKey         string
		SessionTTLMinutes int
		LoginPerMinute    int
		LoginBurst        int
	}
	Persistence struct {
		Backend    string // "memory" or "sqlite"
		SQLitePath string
		DebounceMs int
		ExportDir  string
	}
}

// Default returns the configuration used when no config file is
// present. Tests build on top of this instead of reading files.
func Default() *Config {
	cfg := &Config{}
	cfg.App.Env = "dev"
	cfg.App.LogLevel = "info"
	cfg.App.Seed = true
	cfg.Auction.MinIncrement = 50
	cfg.Admin.Email = "admin@luxeauction.com"
	cfg.Auth.SessionTTLMinutes = 60
	cfg.Auth.LoginPerMinute = 10
	cfg.Auth.LoginBurst = 5
	cfg.Persistence.Backend = "memory"
	cfg.Persistence.SQLitePath = "./data/marketplace.db"
	cfg.Persistence.DebounceMs = 350
	cfg.Persistence.ExportDir = "."
	return cfg
}

func LoadConfig() (*Config, error) {
	// Load .env file
	if err := godotenv.Load("./configs/.env"); err != nil {
		log.Info("No .env file found")
	}

	viper.SetConfigName("config")    // Name of the config file (without extension)
	viper.SetConfigType("yaml")      // Config file type
	viper.AddConfigPath("./configs") // Path to look for the config file
	viper.AutomaticEnv()             // Automatically map environment variables

	// Allow dots in environment variables to map to nested keys
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	// Read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
		log.Info("No config file found, using defaults")
	}

	// Manually substitute environment variables in the config
	substituteEnvVarsInConfig()

	// Unmarshal the config into a struct
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	d := Default()
	viper.SetDefault("app.env", d.App.Env)
	viper.SetDefault("app.loglevel", d.App.LogLevel)
	viper.SetDefault("app.seed", d.App.Seed)
	viper.SetDefault("auction.minincrement", d.Auction.MinIncrement)
	viper.SetDefault("admin.email", d.Admin.Email)
	viper.SetDefault("admin.passwordhash", d.Admin.PasswordHash)
	viper.SetDefault("auth.sessionttlminutes", d.Auth.SessionTTLMinutes)
	viper.SetDefault("auth.loginperminute", d.Auth.LoginPerMinute)
	viper.SetDefault("auth.loginburst", d.Auth.LoginBurst)
	viper.SetDefault("persistence.backend", d.Persistence.Backend)
	viper.SetDefault("persistence.sqlitepath", d.Persistence.SQLitePath)
	viper.SetDefault("persistence.debouncems", d.Persistence.DebounceMs)
	viper.SetDefault("persistence.exportdir", d.Persistence.ExportDir)
}

// Helper function to manually replace environment variables in config file values
func substituteEnvVarsInConfig() {
	// Iterate over each key-value pair in viper's config
	for _, key := range viper.AllKeys() {
		// Get the current value
		value := viper.GetString(key)

		// Check if the value contains environment variable syntax (e.g., ${AUTH_SECRET})
		if strings.Contains(value, "${") {
			// Replace environment variables in the value
			replacedValue := os.Expand(value, func(name string) string {
				// Lookup the environment variable's value
				return os.Getenv(name)
			})

			// Set the replaced value back into viper
			viper.Set(key, replacedValue)
		}
	}
}
