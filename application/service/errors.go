package service

import "errors"

// ErrPlatformNotConfigured indicates no platform access token was provided,
// so moderation actions cannot be applied.
var ErrPlatformNotConfigured = errors.New("pagepulse: platform is not configured")

// ErrGeneratorNotConfigured indicates no chat endpoint was provided, so
// replies fall back to the canned response.
var ErrGeneratorNotConfigured = errors.New("pagepulse: chat endpoint is not configured")
