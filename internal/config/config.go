package config

import (
	"os"
	"strconv"
)

type Config struct {
	Title  string
	Width  int
	Height int

	// Inspector is the read-only debug stream of the selection readout.
	InspectEnabled bool
	InspectPort    int
	Advertise      bool
}

// Load reads the configuration from environment variables.
func Load() *Config {
	return &Config{
		Title:          getEnv("RECTBOARD_TITLE", "Rectangles"),
		Width:          getEnvAsInt("RECTBOARD_WIDTH", 1024),
		Height:         getEnvAsInt("RECTBOARD_HEIGHT", 768),
		InspectEnabled: getEnvAsBool("RECTBOARD_INSPECT", false),
		InspectPort:    getEnvAsInt("RECTBOARD_INSPECT_PORT", 8888),
		Advertise:      getEnvAsBool("RECTBOARD_ADVERTISE", true),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
