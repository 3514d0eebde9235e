package cmd

import (
	log "github.com/sirupsen/logrus"

	"github.com/vaultsync/quarkdrive/internal/bootstrap"
	"github.com/vaultsync/quarkdrive/internal/conf"
	"github.com/vaultsync/quarkdrive/quark"
)

func Init() {
	bootstrap.Init()
}

func newClient() *quark.Client {
	d := conf.Conf.Drive
	if d.Cookie == "" {
		log.Fatal("no cookie configured; set drive.cookie in config.json or QD_DRIVE_COOKIE")
	}
	override := quark.Conf{
		API:          d.APIBase,
		Pan:          d.PanBase,
		Referer:      d.Referer,
		UA:           d.UserAgent,
		Pr:           d.Platform,
		OSSDomain:    d.OSSDomain,
		OSSUserAgent: d.OSSUserAgent,
		PartSize:     d.PartSize,
	}
	return quark.New(d.Cookie, quark.WithConf(override))
}
