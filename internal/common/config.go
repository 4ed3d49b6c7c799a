package common

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	Output  OutputConfig `yaml:"output"`
	OCR     OCRConfig    `yaml:"ocr"`
	Match   MatchConfig  `yaml:"match"`
	Backup  BackupConfig `yaml:"backup"`
	Queue   QueueConfig  `yaml:"queue"`
	LogJSON bool         `yaml:"log_json"`
}

// OutputConfig holds routing-related configuration
type OutputConfig struct {
	Root          string `yaml:"root"`
	LogsDir       string `yaml:"logs_dir"`
	DocumentLabel string `yaml:"document_label"`
}

// OCRConfig holds text-acquisition configuration
type OCRConfig struct {
	Language      string  `yaml:"language"`
	TextThreshold int     `yaml:"text_threshold"`
	UpscaleFactor float64 `yaml:"upscale_factor"`
	TessdataDir   string  `yaml:"tessdata_dir"`
}

// MatchConfig holds identity-matching configuration
type MatchConfig struct {
	UseFuzzy        bool `yaml:"use_fuzzy"`
	ScoreThreshold  int  `yaml:"score_threshold"`
	CandidateLimit  int  `yaml:"candidate_limit"`
	StripDiacritics bool `yaml:"strip_diacritics"`
}

// BackupConfig holds source-backup configuration
type BackupConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// QueueConfig holds async-execution configuration
type QueueConfig struct {
	Size       int           `yaml:"size"`
	JobTimeout time.Duration `yaml:"job_timeout"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Root:          getEnv("SLIPSORT_OUTPUT_DIR", "./output"),
			LogsDir:       getEnv("SLIPSORT_LOGS_DIR", "./logs"),
			DocumentLabel: getEnv("SLIPSORT_DOC_LABEL", "Recibo"),
		},
		OCR: OCRConfig{
			Language:      getEnv("SLIPSORT_OCR_LANG", "por"),
			TextThreshold: getEnvAsInt("SLIPSORT_OCR_THRESHOLD", 50),
			UpscaleFactor: getEnvAsFloat64("SLIPSORT_OCR_UPSCALE", 2.0),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
		},
		Match: MatchConfig{
			UseFuzzy:        getEnvAsBool("SLIPSORT_FUZZY", false),
			ScoreThreshold:  getEnvAsInt("SLIPSORT_FUZZY_THRESHOLD", 75),
			CandidateLimit:  getEnvAsInt("SLIPSORT_FUZZY_CANDIDATES", 5),
			StripDiacritics: getEnvAsBool("SLIPSORT_STRIP_DIACRITICS", false),
		},
		Backup: BackupConfig{
			Enabled: getEnvAsBool("SLIPSORT_BACKUP", false),
			Dir:     getEnv("SLIPSORT_BACKUP_DIR", "./backup"),
		},
		Queue: QueueConfig{
			Size:       getEnvAsInt("SLIPSORT_QUEUE_SIZE", 16),
			JobTimeout: getEnvAsDuration("SLIPSORT_JOB_TIMEOUT", 30*time.Minute),
		},
		LogJSON: getEnvAsBool("SLIPSORT_LOG_JSON", true),
	}
}

// LoadConfigFile overlays cfg with values from a YAML file. Zero values
// in the file leave the corresponding cfg field untouched only for the
// nested structs' absent keys; callers pass the env-derived config.
func LoadConfigFile(cfg *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, WrapError(err, "parse config file")
	}
	return cfg, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Output.Root == "" {
		return NewAppError("CONFIG_ERROR", "output root is required", ErrInvalidInput)
	}
	if c.OCR.TextThreshold < 0 {
		return NewAppError("CONFIG_ERROR", "ocr text threshold must be >= 0", ErrInvalidInput)
	}
	if c.Match.ScoreThreshold < 0 || c.Match.ScoreThreshold > 100 {
		return NewAppError("CONFIG_ERROR", "fuzzy score threshold must be in 0..100", ErrInvalidInput)
	}
	if c.OCR.UpscaleFactor <= 0 {
		return NewAppError("CONFIG_ERROR", "ocr upscale factor must be > 0", ErrInvalidInput)
	}
	return nil
}
