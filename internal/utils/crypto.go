package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a unique, human-readable order number.
func GenerateOrderNumber() string {
	timestamp := time.Now().UTC().Format("20060102150405")
	suffix := strings.ToUpper(uuid.New().String()[:8])
	return fmt.Sprintf("ORD-%s-%s", timestamp, suffix)
}

// GenerateSKU builds a unique SKU for products created without one.
func GenerateSKU() string {
	return "SKU-" + strings.ToUpper(uuid.New().String()[:8])
}

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
