package quark

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/vaultsync/quarkdrive/internal/errs"
	"github.com/vaultsync/quarkdrive/pkg/utils"
)

const uploadMimeType = "application/octet-stream"

// UpdateProgress receives a non-decreasing percentage in [0, 100].
type UpdateProgress func(percentage float64)

// UploadSession is the negotiated state for one upload. Exactly one
// session exists per Upload call; it is mutated only by appending part
// ETags and is discarded when the pipeline terminates.
type UploadSession struct {
	UpPreData
	PartSize int64

	etags []string
}

// endpoint builds the object-storage URL for this session's object. The
// host advertised by the negotiation wins; the configured domain suffix
// is the fallback.
func (s *UploadSession) endpoint(conf Conf) string {
	if s.UploadURL != "" {
		host := s.UploadURL
		if i := strings.Index(host, "://"); i >= 0 {
			host = host[i+3:]
		}
		return fmt.Sprintf("https://%s.%s/%s", s.Bucket, host, s.ObjKey)
	}
	return fmt.Sprintf("https://%s%s/%s", s.Bucket, conf.OSSDomain, s.ObjKey)
}

// Upload sends data to the folder parentID under name and returns the
// new file's fid. The whole payload is hashed and chunked in memory: the
// dedup handshake needs the complete digests before any byte may be
// transferred, so there is no streaming variant. Parts go out strictly
// one after another even though the negotiation advertises parallel
// upload support.
func (c *Client) Upload(ctx context.Context, parentID, name string, data []byte, up UpdateProgress) (string, error) {
	if up == nil {
		up = func(float64) {}
	}
	md5Str := utils.HashData(utils.MD5, data)
	sha1Str := utils.HashData(utils.SHA1, data)
	up(5)

	session, err := c.upPre(ctx, parentID, name, int64(len(data)))
	if err != nil {
		return "", err
	}
	up(10)

	finish, err := c.upHash(ctx, session.TaskID, md5Str, sha1Str)
	if err != nil {
		return "", err
	}
	if finish || session.Finish {
		log.Debugf("upload %s: content already stored, skipping transfer", name)
		up(100)
		return session.Fid, nil
	}

	var missing []string
	if session.UploadID == "" {
		missing = append(missing, "upload_id")
	}
	if session.ObjKey == "" {
		missing = append(missing, "obj_key")
	}
	if session.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if len(missing) > 0 {
		return "", &errs.UploadParameterError{Missing: missing}
	}

	total := int64(len(data))
	partSize := session.PartSize
	for offset, partNumber := int64(0), 1; offset < total; offset, partNumber = offset+partSize, partNumber+1 {
		end := min(offset+partSize, total)
		if err := c.upPart(ctx, session, partNumber, data[offset:end]); err != nil {
			return "", err
		}
		up(10 + float64(end)/float64(total)*70)
	}

	if err := c.upCommit(ctx, session); err != nil {
		return "", err
	}
	up(85)
	if err := c.upFinish(ctx, session); err != nil {
		return "", err
	}
	up(95)
	up(100)
	return session.Fid, nil
}

func (c *Client) upPre(ctx context.Context, parentID, name string, size int64) (*UploadSession, error) {
	now := time.Now()
	data := Json{
		"ccp_hash_update": true,
		"parallel_upload": true,
		"dir_name":        "",
		"file_name":       name,
		"format_type":     uploadMimeType,
		"l_created_at":    now.UnixMilli(),
		"l_updated_at":    now.UnixMilli(),
		"pdir_fid":        parentID,
		"size":            size,
	}
	var resp UpPreResp
	_, err := c.request(ctx, "/file/upload/pre", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, &resp)
	if err != nil {
		return nil, err
	}
	session := &UploadSession{UpPreData: resp.Data, PartSize: resp.Metadata.PartSize}
	if session.PartSize <= 0 {
		session.PartSize = c.getConf().PartSize
	}
	return session, nil
}

func (c *Client) upHash(ctx context.Context, taskID, md5Str, sha1Str string) (bool, error) {
	data := Json{
		"md5":     md5Str,
		"sha1":    sha1Str,
		"task_id": taskID,
	}
	log.Debugf("upload hash: %+v", data)
	var resp HashResp
	_, err := c.request(ctx, "/file/update/hash", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, &resp)
	return resp.Data.Finish, err
}

func (c *Client) upPart(ctx context.Context, s *UploadSession, partNumber int, chunk []byte) error {
	conf := c.getConf()
	timeStr := time.Now().UTC().Format(http.TimeFormat)
	canonical := fmt.Sprintf(`PUT

%s
%s
x-oss-date:%s
x-oss-user-agent:%s
/%s/%s?partNumber=%d&uploadId=%s`,
		uploadMimeType, timeStr, timeStr, conf.OSSUserAgent,
		s.Bucket, s.ObjKey, partNumber, s.UploadID)
	authKey, err := c.auther.AuthToken(ctx, s.TaskID, s.AuthInfo, canonical)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.endpoint(conf), bytes.NewReader(chunk))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Authorization", authKey)
	req.Header.Set("Content-Type", uploadMimeType)
	req.Header.Set("Referer", conf.Referer+"/")
	req.Header.Set("x-oss-date", timeStr)
	req.Header.Set("x-oss-user-agent", conf.OSSUserAgent)
	q := req.URL.Query()
	q.Add("partNumber", strconv.Itoa(partNumber))
	q.Add("uploadId", s.UploadID)
	req.URL.RawQuery = q.Encode()
	res, err := c.http.Do(req)
	if err != nil {
		return &errs.PartUploadError{PartNumber: partNumber, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return &errs.PartUploadError{
			PartNumber: partNumber,
			StatusCode: res.StatusCode,
			Snippet:    truncate(string(body), 200),
		}
	}
	s.etags = append(s.etags, res.Header.Get("Etag"))
	return nil
}

func (c *Client) upCommit(ctx context.Context, s *UploadSession) error {
	conf := c.getConf()
	timeStr := time.Now().UTC().Format(http.TimeFormat)
	bodyBuilder := strings.Builder{}
	bodyBuilder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<CompleteMultipartUpload>
`)
	for i, etag := range s.etags {
		bodyBuilder.WriteString(fmt.Sprintf(`<Part>
<PartNumber>%d</PartNumber>
<ETag>%s</ETag>
</Part>
`, i+1, etag))
	}
	bodyBuilder.WriteString("</CompleteMultipartUpload>")
	body := bodyBuilder.String()
	m := md5.Sum([]byte(body))
	contentMd5 := base64.StdEncoding.EncodeToString(m[:])
	callbackBytes, err := utils.Json.Marshal(s.Callback)
	if err != nil {
		return errors.WithStack(err)
	}
	callbackBase64 := base64.StdEncoding.EncodeToString(callbackBytes)
	canonical := fmt.Sprintf(`POST
%s
application/xml
%s
x-oss-callback:%s
x-oss-date:%s
x-oss-user-agent:%s
/%s/%s?uploadId=%s`,
		contentMd5, timeStr, callbackBase64, timeStr, conf.OSSUserAgent,
		s.Bucket, s.ObjKey, s.UploadID)
	authKey, err := c.auther.AuthToken(ctx, s.TaskID, s.AuthInfo, canonical)
	if err != nil {
		return err
	}
	log.Debugf("multipart commit body: %s", body)
	res, err := c.resty.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Authorization":    authKey,
			"Content-MD5":      contentMd5,
			"Content-Type":     "application/xml",
			"Referer":          conf.Referer + "/",
			"x-oss-callback":   callbackBase64,
			"x-oss-date":       timeStr,
			"x-oss-user-agent": conf.OSSUserAgent,
		}).
		SetQueryParam("uploadId", s.UploadID).
		SetBody(body).
		Post(s.endpoint(conf))
	if err != nil {
		return &errs.CommitError{Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return &errs.CommitError{
			StatusCode: res.StatusCode(),
			Snippet:    truncate(res.String(), 200),
		}
	}
	return nil
}

func (c *Client) upFinish(ctx context.Context, s *UploadSession) error {
	data := Json{
		"obj_key": s.ObjKey,
		"task_id": s.TaskID,
	}
	_, err := c.request(ctx, "/file/upload/finish", http.MethodPost, func(req *resty.Request) {
		req.SetBody(data)
	}, nil)
	return err
}
