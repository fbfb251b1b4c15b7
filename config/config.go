package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort          string
	MongoURI            string
	MongoDBName         string
	JWTSecret           string
	StripeSecretKey     string
	StripeWebhookSecret string
	FrontendURL         string
	KafkaBroker         string
	KafkaTopic          string
	KafkaUsername       string
	KafkaPassword       string
	FirebaseCredentials string
	Env                 string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	cfg := Config{
		ServerPort:          os.Getenv("SERVER_PORT"),
		MongoURI:            os.Getenv("MONGODB_URI"),
		MongoDBName:         os.Getenv("MONGODB_NAME"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FrontendURL:         os.Getenv("FRONTEND_URL"),
		KafkaBroker:         os.Getenv("KAFKA_BROKER"),
		KafkaTopic:          os.Getenv("KAFKA_TOPIC"),
		KafkaUsername:       os.Getenv("KAFKA_USERNAME"),
		KafkaPassword:       os.Getenv("KAFKA_PASSWORD"),
		FirebaseCredentials: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		Env:                 os.Getenv("ENV"),
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = ":5000"
	}
	if cfg.MongoDBName == "" {
		cfg.MongoDBName = "scholarstream"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:3000"
	}
	if cfg.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY is not set, payments will not work")
	}

	return cfg
}
