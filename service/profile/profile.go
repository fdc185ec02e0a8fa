package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"fashionhub/service/version"
)

// Profile is the runtime configuration, populated from flags and env by viper.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string `json:"mode"`
	// Port is the binding port for the server
	Port int `json:"-"`
	// Data is the data directory
	Data string `json:"-"`
	// DSN points to the database file
	DSN string `json:"-"`
	// Version is the current version of the server
	Version string `json:"version"`
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}
	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", fmt.Errorf("unable to access data folder %s, err %w", dataDir, err)
	}
	return dataDir, nil
}

// GetProfile will return a profile for dev, demo or prod.
func GetProfile() (*Profile, error) {
	profile := Profile{}
	if err := viper.Unmarshal(&profile); err != nil {
		return nil, err
	}

	if profile.Mode != "demo" && profile.Mode != "dev" && profile.Mode != "prod" {
		profile.Mode = "demo"
	}
	if profile.Mode == "prod" && profile.Data == "" {
		profile.Data = "./data"
	}

	dataDir, err := checkDataDir(profile.Data)
	if err != nil {
		return nil, err
	}

	profile.Data = dataDir
	profile.DSN = fmt.Sprintf("%s/fashionhub_%s.db", dataDir, profile.Mode)
	profile.Version = version.GetCurrentVersion(profile.Mode)

	return &profile, nil
}
