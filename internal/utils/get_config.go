package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Server
	AppPort string `yaml:"APP_PORT"`
	AppURL  string `yaml:"APP_URL"`

	// Database configuration (empty DB_HOST selects the in-memory store)
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// OpenAI configuration
	OpenAIAPIKey  string `yaml:"OPENAI_API_KEY"`
	OpenAIBaseURL string `yaml:"OPENAI_BASE_URL"`
	OpenAIModels  string `yaml:"OPENAI_MODELS"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Affiliate partner configuration
	AmazonPartnerTag      string `yaml:"AMAZON_PARTNER_TAG"`
	WalmartAffiliateID    string `yaml:"WALMART_AFFILIATE_ID"`
	ShareASaleAffiliateID string `yaml:"SHAREASALE_AFFILIATE_ID"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("config.yaml not found, falling back to environment: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// GetConfig resolves a key from config.yaml, falling back to the process
// environment when the file does not set it.
func GetConfig(key string) string {
	value := ""
	switch key {
	case "APP_PORT":
		value = config.AppPort
	case "APP_URL":
		value = config.AppURL
	case "DB_USER":
		value = config.DBUser
	case "DB_NAME":
		value = config.DBName
	case "DB_PASSWORD":
		value = config.DBPassword
	case "DB_PORT":
		value = config.DBPort
	case "DB_HOST":
		value = config.DBHost
	case "OPENAI_API_KEY":
		value = config.OpenAIAPIKey
	case "OPENAI_BASE_URL":
		value = config.OpenAIBaseURL
	case "OPENAI_MODELS":
		value = config.OpenAIModels
	case "JWT_SECRET":
		value = config.JWTSecret
	case "SMTP_HOST":
		value = config.SMTPHost
	case "SMTP_PORT":
		value = config.SMTPPort
	case "SMTP_SENDER_NAME":
		value = config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		value = config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		value = config.SMTPAuthPassword
	case "AWS_S3_BUCKET":
		value = config.AWSS3Bucket
	case "AWS_S3_REGION":
		value = config.AWSS3Region
	case "AWS_ACCESS_KEY":
		value = config.AWSAccessKey
	case "AWS_SECRET_KEY":
		value = config.AWSSecretKey
	case "AMAZON_PARTNER_TAG":
		value = config.AmazonPartnerTag
	case "WALMART_AFFILIATE_ID":
		value = config.WalmartAffiliateID
	case "SHAREASALE_AFFILIATE_ID":
		value = config.ShareASaleAffiliateID
	}

	if value == "" {
		value = os.Getenv(key)
	}
	return value
}
