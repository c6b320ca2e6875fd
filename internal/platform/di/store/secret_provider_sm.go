// internal/platform/di/store/secret_provider_sm.go
package store

import (
	"context"
	"errors"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	secretmanagerpb "cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

var errSecretProviderNotConfigured = errors.New("di.store: secret manager not configured")

// accessSecret reads one secret value (latest version) from Secret Manager.
// Used for the reviews DB password and the SendGrid API key; both fall back
// to plain env vars when the secret name is empty.
func accessSecret(ctx context.Context, sm *secretmanager.Client, projectID, secretID string) (string, error) {
	if sm == nil {
		return "", errSecretProviderNotConfigured
	}
	prj := strings.TrimSpace(projectID)
	sid := strings.TrimSpace(secretID)
	if prj == "" || sid == "" {
		return "", errors.New("di.store: projectID or secretID is empty")
	}

	name := "projects/" + prj + "/secrets/" + sid + "/versions/latest"
	resp, err := sm.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{Name: name})
	if err != nil {
		return "", errors.New("di.store: AccessSecretVersion failed (" + name + "): " + err.Error())
	}
	if resp == nil || resp.Payload == nil {
		return "", errors.New("di.store: empty payload (" + name + ")")
	}

	return strings.TrimSpace(string(resp.Payload.Data)), nil
}
