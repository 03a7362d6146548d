package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"os"
)

type Config struct {
	AppName        string `json:"app_name"`
	ListenIP       string `json:"listen_ip"`
	ListenPort     int    `json:"listen_port"`
	SessionKey     string `json:"session_key"`
	DatabaseURL    string `json:"database_url"`
	TemplatesDir   string `json:"templates_dir"`
	UploadDir      string `json:"upload_dir"`
	CaptchaEnabled bool   `json:"captcha_enabled"`
}

var AppConfig Config

func LoadConfig(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&AppConfig); err != nil {
		return err
	}

	// Environment variables take precedence over the file
	if envKey := os.Getenv("PORTAL_SESSION_KEY"); envKey != "" {
		AppConfig.SessionKey = envKey
	}
	if envDSN := os.Getenv("PORTAL_DATABASE_URL"); envDSN != "" {
		AppConfig.DatabaseURL = envDSN
	}

	if AppConfig.DatabaseURL == "" {
		AppConfig.DatabaseURL = "./portal.db"
	}
	if AppConfig.TemplatesDir == "" {
		AppConfig.TemplatesDir = "templates"
	}
	if AppConfig.UploadDir == "" {
		AppConfig.UploadDir = "static/uploads"
	}

	// If no key is provided or it's the placeholder, generate a secure random one
	if AppConfig.SessionKey == "" || AppConfig.SessionKey == "CHANGE_ME_IN_PRODUCTION" {
		log.Println("WARNING: No session key configured. Generating a random key. Sessions will be invalidated on restart.")
		randomKey := make([]byte, 32)
		if _, err := rand.Read(randomKey); err != nil {
			return err
		}
		AppConfig.SessionKey = hex.EncodeToString(randomKey)
	}

	return nil
}
