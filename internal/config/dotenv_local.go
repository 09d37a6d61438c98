//go:build !gcloud

package config

import "github.com/joho/godotenv"

// loadDotEnv reads .env from the working directory when present.
// Variables already set in the environment win.
func loadDotEnv() {
	_ = godotenv.Load()
}
