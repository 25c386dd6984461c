package utils

import (
	"easylearn/config"
	"fmt"
	"math/rand"
	"time"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// BaseFileURL returns the public base URL for served files. Falls back to
// the local uploads path when no CDN is configured.
func BaseFileURL() string {
	if config.AppConfig.CDNBaseURL != "" {
		return config.AppConfig.CDNBaseURL
	}
	return "/uploads"
}
