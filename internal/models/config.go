package models

import "time"

// Config represents the application configuration
type Config struct {
	URLsFilePath   string
	OutputFilePath string
	DBFilePath     string
	LogFilePath    string

	Headless bool
	Resume   bool

	LoginTimeout time.Duration
	NavTimeout   time.Duration
	SettleDelay  time.Duration

	MinProfileDelay time.Duration
	MaxProfileDelay time.Duration
	NavRetries      int

	ShutdownTimeout time.Duration
}
