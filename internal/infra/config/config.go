// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port string

	GCPCreds                 string
	FirestoreProjectID       string
	FirestoreCredentialsFile string

	// Firebase Auth 用のプロジェクトID
	FirebaseProjectID string

	// GCS: 商品・SKU 画像の公開バケット
	MediaBucket string

	// Postgres (reviews)
	DBHost     string
	DBPort     string
	DBUser     string
	DBName     string
	DBPassword string
	// Secret Manager secret name for the DB password (env fallback: DB_PASSWORD)
	DBPasswordSecret string

	// SendGrid (restock mail)
	SendGridAPIKey string
	// Secret Manager secret name for the SendGrid key (env fallback: SENDGRID_API_KEY)
	SendGridAPIKeySecret string
	MailFromAddress      string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	defaultProject := getenvDefault("GCP_PROJECT_ID", "")

	cfg := &Config{
		Port: getenvDefault("PORT", "8080"),

		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),

		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		MediaBucket: os.Getenv("MEDIA_BUCKET"),

		DBHost:           getenvDefault("DB_HOST", "localhost"),
		DBPort:           getenvDefault("DB_PORT", "5432"),
		DBUser:           getenvDefault("DB_USER", "postgres"),
		DBName:           getenvDefault("DB_NAME", "storefront"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBPasswordSecret: os.Getenv("DB_PASSWORD_SECRET"),

		SendGridAPIKey:       os.Getenv("SENDGRID_API_KEY"),
		SendGridAPIKeySecret: os.Getenv("SENDGRID_API_KEY_SECRET"),
		MailFromAddress:      getenvDefault("MAIL_FROM_ADDRESS", "noreply@example.com"),
	}

	return cfg
}

// GetFirestoreProjectID は Firestore/GCP プロジェクト ID を返します。
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// Firebase 用の ProjectID を返すヘルパー
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
