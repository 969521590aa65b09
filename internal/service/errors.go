package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vbonduro/pantrychef/internal/domain"
)

var (
	ErrNotFound            = domain.ErrNotFound
	ErrNoLeftoversSelected = errors.New("no leftovers selected")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidName         = errors.New("invalid name")
	ErrInvalidPreferences  = errors.New("invalid cooking preferences")
	ErrInvalidExpiry       = errors.New("invalid expiry")
)

// MaxNameLength bounds leftover, meal and grocery names.
const MaxNameLength = 200

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", ErrInvalidName)
	}
	if len([]rune(name)) > MaxNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}
	return name, nil
}
