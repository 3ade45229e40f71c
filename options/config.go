package options

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const configFileName = "config.json"

// Defaults by json file.
type fileConfig struct {
	COMPortName string `json:"comport name"`
	COMBaudRate int    `json:"baud rate"`
	NoEcho      bool   `json:"no echo"`
}

// LoadDefaults returns Default() overridden by config.json, if there is one in
// the working directory or next to the executable.
func LoadDefaults() (Config, error) {
	filePath := configFileName

	// if file not found in current WD, try executable's folder
	if !fileExists(filePath) {
		exePath, err := os.Executable()
		if err != nil {
			return Default(), nil
		}
		filePath = filepath.Join(filepath.Dir(exePath), configFileName)
		if !fileExists(filePath) {
			return Default(), nil
		}
	}
	return loadDefaultsFrom(filePath)
}

func loadDefaultsFrom(filePath string) (Config, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	fc := fileConfig{}
	if err := json.NewDecoder(file).Decode(&fc); err != nil {
		return Config{}, fmt.Errorf("%s: %w", filePath, err)
	}

	cfg := Default()
	cfg.PortName = fc.COMPortName
	if fc.COMBaudRate > 0 {
		cfg.BaudRate = fc.COMBaudRate
	}
	cfg.NoEcho = fc.NoEcho
	return cfg, nil
}

// fileExists checks if a file exists and is not a directory before we try using it to prevent further errors.
func fileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
