package bootstrap

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	log "github.com/sirupsen/logrus"

	"github.com/vaultsync/quarkdrive/cmd/flags"
	"github.com/vaultsync/quarkdrive/internal/conf"
	"github.com/vaultsync/quarkdrive/pkg/utils"
)

func Log() {
	setLog(log.StandardLogger())
	utils.Log = log.StandardLogger()
}

func setLog(l *log.Logger) {
	if flags.Debug {
		l.SetLevel(log.DebugLevel)
		l.SetReportCaller(true)
	} else {
		l.SetLevel(log.InfoLevel)
		l.SetReportCaller(false)
	}
	logConfig := conf.Conf.Log
	if logConfig.Enable {
		writer := &lumberjack.Logger{
			Filename:   logConfig.Name,
			MaxSize:    logConfig.MaxSize,
			MaxBackups: logConfig.MaxBackups,
			MaxAge:     logConfig.MaxAge,
			Compress:   logConfig.Compress,
		}
		l.SetOutput(io.MultiWriter(os.Stderr, writer))
	}
	l.SetFormatter(&log.TextFormatter{
		ForceColors:               true,
		EnvironmentOverrideColors: true,
		TimestampFormat:           "2006-01-02 15:04:05",
		FullTimestamp:             true,
	})
}
