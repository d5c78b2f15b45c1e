package handler

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"vdcode/internal/service"
)

const (
	maxLabelLength = 200
	minTTL         = 60 * time.Second     // 1 minute
	maxTTL         = 365 * 24 * time.Hour // 1 year

	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

func validateLabel(label string) error {
	if utf8.RuneCountInString(label) > maxLabelLength {
		return fmt.Errorf("label exceeds maximum length of %d characters", maxLabelLength)
	}
	return nil
}

func validateLength(length *int) error {
	if length == nil {
		return nil
	}
	if *length < service.MinLength || *length > service.MaxLength {
		return fmt.Errorf("length must be between %d and %d", service.MinLength, service.MaxLength)
	}
	return nil
}

func validateTTL(ttl time.Duration) error {
	if ttl < minTTL {
		return errors.New("ttl_seconds must be at least 60")
	}
	if ttl > maxTTL {
		return errors.New("ttl_seconds must not exceed 31536000 (1 year)")
	}
	return nil
}

func parseQRSize(raw string) (int, error) {
	if raw == "" {
		return defaultQRSize, nil
	}
	size, err := strconv.Atoi(raw)
	if err != nil || size < minQRSize || size > maxQRSize {
		return 0, fmt.Errorf("size must be an integer between %d and %d", minQRSize, maxQRSize)
	}
	return size, nil
}
