package social

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// ChirpConfig holds credentials for the Chirp social platform API
type ChirpConfig struct {
	BaseURL   string
	AppKey    string
	AppSecret string
	Timeout   time.Duration
}

// Validate checks that the configuration is usable
func (c *ChirpConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("chirp: base URL is required")
	}
	if c.AppKey == "" {
		return errors.New("chirp: app key is required")
	}
	if c.AppSecret == "" {
		return errors.New("chirp: app secret is required")
	}
	return nil
}

// Sign computes the request signature: HMAC-SHA256 over the app key,
// timestamp, and message, hex encoded.
func (c *ChirpConfig) Sign(timestamp, message string) string {
	mac := hmac.New(sha256.New, []byte(c.AppSecret))
	mac.Write([]byte(c.AppKey))
	mac.Write([]byte(timestamp))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
