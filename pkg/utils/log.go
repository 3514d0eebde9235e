package utils

import (
	log "github.com/sirupsen/logrus"
)

// Log is the module-wide logger, configured by bootstrap.
var Log = log.StandardLogger()
