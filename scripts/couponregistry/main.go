package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// generates a sample coupon registry document at data/coupons/registry.json.
func main() {
	dataDir := "data/coupons"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	registry := map[string]string{
		"HM-DEC":    "0.10",
		"HMDEC":     "0.10",
		"SPRING20":  "0.20",
		"WELCOME5":  "0.05",
		"FESTIVE15": "0.15",
	}

	data, err := json.MarshalIndent(registry, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode registry: %v", err)
	}

	filePath := filepath.Join(dataDir, "registry.json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d codes\n", filePath, len(registry))
}
