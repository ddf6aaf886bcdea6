package utils

import "github.com/google/uuid"

// GenThreadID returns a globally unique opaque thread id.
func GenThreadID() string {
	return uuid.NewString()
}
