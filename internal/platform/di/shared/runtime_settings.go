// internal/platform/di/shared/runtime_settings.go
package shared

import (
	"errors"
	"os"
	"strings"

	appcfg "storefront/internal/infra/config"
)

// RuntimeSettings is env/config-resolved runtime settings (normalized once).
// It intentionally contains only "values" (no external clients).
//
// Policy:
// - Prefer config (cfg) where available.
// - Use env fallbacks where historically used.
// - Keep normalization (trim) here.
type RuntimeSettings struct {
	// GCS bucket holding product/SKU images (image id = object path)
	MediaBucket string

	// Restock mail sender
	MailFromAddress string

	// Secret Manager secret names (env fallbacks live in appcfg)
	DBPasswordSecret     string
	SendGridAPIKeySecret string
}

// ResolveRuntimeSettings resolves and normalizes runtime settings from cfg/env.
//
// Notes:
// - This function is side-effect free (no logging).
// - It returns warnings as strings so callers can decide how to surface them.
func ResolveRuntimeSettings(cfg *appcfg.Config) (RuntimeSettings, []string, error) {
	if cfg == nil {
		return RuntimeSettings{}, nil, errors.New("shared.runtime_settings: cfg is nil")
	}

	var warns []string
	var s RuntimeSettings

	// Media bucket (config first; env fallback; warn if empty)
	s.MediaBucket = strings.TrimSpace(cfg.MediaBucket)
	if s.MediaBucket == "" {
		s.MediaBucket = getenvTrim("MEDIA_BUCKET")
	}
	if s.MediaBucket == "" {
		warns = append(warns, "MEDIA_BUCKET is empty (gallery URLs will be omitted)")
	}

	s.MailFromAddress = strings.TrimSpace(cfg.MailFromAddress)
	if s.MailFromAddress == "" {
		warns = append(warns, "MAIL_FROM_ADDRESS is empty (restock mail disabled)")
	}

	s.DBPasswordSecret = strings.TrimSpace(cfg.DBPasswordSecret)
	s.SendGridAPIKeySecret = strings.TrimSpace(cfg.SendGridAPIKeySecret)

	return s, warns, nil
}

func getenvTrim(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
