package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateReceiptNo generates a unique receipt number
func GenerateReceiptNo() string {
	return "REC-" + strings.ToUpper(uuid.New().String()[:8])
}
