//go:build gcloud

package config

func loadDotEnv() {}
