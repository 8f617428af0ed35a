// Package common provides shared utilities for Ava
package common

import "time"

// Default TTLs for the data caches. Prices move fast, company profiles
// slowly, news somewhere between. Each is independently configurable.
const (
	DefaultPriceTTL = 150 * time.Second
	DefaultNewsTTL  = 600 * time.Second
)
