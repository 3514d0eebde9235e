package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	log "github.com/sirupsen/logrus"

	"github.com/vaultsync/quarkdrive/cmd/flags"
	"github.com/vaultsync/quarkdrive/internal/conf"
	"github.com/vaultsync/quarkdrive/pkg/utils"
)

func InitConfig() {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	if !filepath.IsAbs(flags.DataDir) {
		flags.DataDir = filepath.Join(pwd, flags.DataDir)
	}
	configPath := filepath.Join(flags.DataDir, "config.json")
	log.Debugf("reading config file: %s", configPath)
	if !utils.Exists(configPath) {
		log.Infof("config file not exists, creating default config file")
		_, err := utils.CreateNestedFile(configPath)
		if err != nil {
			log.Fatalf("failed to create config file: %+v", err)
		}
		conf.Conf = conf.DefaultConfig(flags.DataDir)
		if !utils.WriteJsonToFile(configPath, conf.Conf) {
			log.Fatalf("failed to create default config file")
		}
	} else {
		configBytes, err := os.ReadFile(configPath)
		if err != nil {
			log.Fatalf("reading config file error: %+v", err)
		}
		conf.Conf = conf.DefaultConfig(flags.DataDir)
		err = utils.Json.Unmarshal(configBytes, conf.Conf)
		if err != nil {
			log.Fatalf("load config error: %+v", err)
		}
	}
	if !conf.Conf.Force {
		confFromEnv()
	}
	if conf.Conf.Log.Name != "" && !filepath.IsAbs(conf.Conf.Log.Name) {
		conf.Conf.Log.Name = filepath.Join(pwd, conf.Conf.Log.Name)
	}
}

func confFromEnv() {
	prefix := "QD_"
	if flags.NoPrefix {
		prefix = ""
	}
	log.Debugf("load config from env with prefix: %s", prefix)
	if err := env.ParseWithOptions(conf.Conf, env.Options{Prefix: prefix}); err != nil {
		log.Fatalf("load config from env error: %+v", err)
	}
}
