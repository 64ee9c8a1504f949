package utils

import (
	"carecapture-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.New().String()
}

func GenerateDraftID() string {
	return uuid.New().String()
}

// GenerateLockValue returns the owner token stored in a redis lock.
func GenerateLockValue() string {
	return uuid.NewString()
}
