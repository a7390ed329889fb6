package storage

import "fmt"

// Config selects and configures a storage provider.
type Config struct {
	Provider     string
	S3           S3Config
	LocalPath    string
	LocalBaseURL string
}

// NewClient creates a storage client based on the configured provider type.
func NewClient(cfg *Config) (Client, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Client(&cfg.S3)
	case "local":
		return NewLocalClient(cfg.LocalPath, cfg.LocalBaseURL)
	default:
		return nil, fmt.Errorf("unsupported storage provider type: %s", cfg.Provider)
	}
}
