package quark

import (
	"github.com/vaultsync/quarkdrive/pkg/utils"
)

// Conf carries the protocol constants for one drive endpoint. The service
// changes undocumented parameters over time, so every field can be
// overridden per client instance instead of living in package globals.
type Conf struct {
	// API is the drive API base, including the /1/clouddrive prefix.
	API string
	// Pan is the account service base, used only by ValidateCookie.
	Pan     string
	Referer string
	UA      string
	// Pr is the platform marker sent as the "pr" query parameter.
	Pr string
	// OSSDomain is the object-storage host suffix, used when the
	// negotiation response carries no upload_url.
	OSSDomain    string
	OSSUserAgent string
	// PartSize is the chunk size used when the negotiation response
	// suggests none.
	PartSize int64
}

// DefaultConf returns the quark pc endpoint constants.
func DefaultConf() Conf {
	return Conf{
		API:          "https://drive-pc.quark.cn/1/clouddrive",
		Pan:          "https://pan.quark.cn",
		Referer:      "https://pan.quark.cn",
		UA:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) quark-cloud-drive/2.5.20 Chrome/100.0.4896.160 Electron/18.3.5.4-b478491100 Safari/537.36 Channel/pckk_other_ch",
		Pr:           "ucpro",
		OSSDomain:    ".oss-cn-shenzhen.aliyuncs.com",
		OSSUserAgent: "aliyun-sdk-js/6.6.1 Chrome 98.0.4758.80 on Windows 10 64-bit",
		PartSize:     4 * utils.MB,
	}
}

// UCConf returns the UC drive variant of the same protocol.
func UCConf() Conf {
	return Conf{
		API:          "https://pc-api.uc.cn/1/clouddrive",
		Pan:          "https://drive.uc.cn",
		Referer:      "https://drive.uc.cn",
		UA:           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) uc-cloud-drive/2.5.20 Chrome/100.0.4896.160 Electron/18.3.5.4-b478491100 Safari/537.36 Channel/pckk_other_ch",
		Pr:           "UCBrowser",
		OSSDomain:    ".oss-cn-shenzhen.aliyuncs.com",
		OSSUserAgent: "aliyun-sdk-js/6.6.1 Chrome 98.0.4758.80 on Windows 10 64-bit",
		PartSize:     4 * utils.MB,
	}
}

// With returns a copy of c with the non-zero fields of o applied.
func (c Conf) With(o Conf) Conf {
	if o.API != "" {
		c.API = o.API
	}
	if o.Pan != "" {
		c.Pan = o.Pan
	}
	if o.Referer != "" {
		c.Referer = o.Referer
	}
	if o.UA != "" {
		c.UA = o.UA
	}
	if o.Pr != "" {
		c.Pr = o.Pr
	}
	if o.OSSDomain != "" {
		c.OSSDomain = o.OSSDomain
	}
	if o.OSSUserAgent != "" {
		c.OSSUserAgent = o.OSSUserAgent
	}
	if o.PartSize > 0 {
		c.PartSize = o.PartSize
	}
	return c
}
