package config

import "strings"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeExiftool()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	takeoutDir, err := expandPath(c.Paths.TakeoutDir)
	if err != nil {
		return err
	}
	c.Paths.TakeoutDir = takeoutDir

	logDir, err := expandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	if logDir == "" {
		logDir, err = expandPath(defaultLogDir)
		if err != nil {
			return err
		}
	}
	c.Paths.LogDir = logDir
	return nil
}

func (c *Config) normalizeExiftool() {
	c.Exiftool.Binary = strings.TrimSpace(c.Exiftool.Binary)
	if c.Exiftool.Binary == "" {
		c.Exiftool.Binary = defaultExiftoolBinary
	}
	if c.Exiftool.ChunkSize <= 0 {
		c.Exiftool.ChunkSize = defaultExiftoolChunkSize
	}
	if c.Exiftool.TimeoutSeconds <= 0 {
		c.Exiftool.TimeoutSeconds = defaultExiftoolTimeoutSeconds
	}
	if c.Exiftool.MaxAttempts <= 0 {
		c.Exiftool.MaxAttempts = defaultExiftoolMaxAttempts
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
