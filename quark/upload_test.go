package quark

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultsync/quarkdrive/internal/errs"
)

// fakeDrive emulates the drive API and the object-storage endpoint in a
// single handler; OSS requests are told apart by their query parameters.
type fakeDrive struct {
	partSize   int64
	hashFinish bool
	failPart   int
	omitBucket bool

	mu             sync.Mutex
	preBody        map[string]any
	parts          map[int][]byte
	partAuth       map[int]string
	maxPart        int
	commitBody     []byte
	commitHeaders  http.Header
	finishCalled   bool
	authCanonicals []string
}

func (f *fakeDrive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch p := apiPath(r); {
	case p == "/file/upload/pre":
		_ = json.NewDecoder(r.Body).Decode(&f.preBody)
		data := map[string]any{
			"task_id":    "task-1",
			"fid":        "fid-1",
			"finish":     false,
			"upload_id":  "up-1",
			"obj_key":    "objkey1",
			"upload_url": "http://oss.example.com",
			"bucket":     "bkt",
			"auth_info":  "authinfo",
			"callback": map[string]any{
				"callbackUrl":  "https://cb.example.com/callback",
				"callbackBody": "bucket=${bucket}&object=${object}",
			},
		}
		if f.omitBucket {
			delete(data, "bucket")
		}
		writeEnvelope(w, data, map[string]any{"part_size": f.partSize})
	case p == "/file/update/hash":
		writeEnvelope(w, map[string]any{"finish": f.hashFinish, "fid": "fid-1"}, nil)
	case p == "/file/upload/auth":
		var body struct {
			AuthMeta string `json:"auth_meta"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.authCanonicals = append(f.authCanonicals, body.AuthMeta)
		writeEnvelope(w, map[string]any{"auth_key": "OSS signed-token"}, nil)
	case p == "/file/upload/finish":
		f.finishCalled = true
		writeEnvelope(w, nil, nil)
	case r.Method == http.MethodPut && r.URL.Query().Get("partNumber") != "":
		n, _ := strconv.Atoi(r.URL.Query().Get("partNumber"))
		if n > f.maxPart {
			f.maxPart = n
		}
		if n == f.failPart {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if f.parts == nil {
			f.parts = map[int][]byte{}
			f.partAuth = map[int]string{}
		}
		f.parts[n] = body
		f.partAuth[n] = r.Header.Get("Authorization")
		w.Header().Set("Etag", fmt.Sprintf("etag-%d", n))
	case r.Method == http.MethodPost && r.URL.Query().Get("uploadId") != "":
		f.commitBody, _ = io.ReadAll(r.Body)
		f.commitHeaders = r.Header.Clone()
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestUploadChunkingAndCommit(t *testing.T) {
	drive := &fakeDrive{partSize: 4}
	client := newTestClient(t, drive)
	payload := []byte("0123456789")

	var progress []float64
	fid, err := client.Upload(context.Background(), "0", "test.bin", payload, func(p float64) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, "fid-1", fid)

	// ceil(10/4) parts, full parts of 4 bytes, a short tail, reassembling
	// to the original payload.
	require.Len(t, drive.parts, 3)
	assert.Equal(t, payload[0:4], drive.parts[1])
	assert.Equal(t, payload[4:8], drive.parts[2])
	assert.Equal(t, payload[8:10], drive.parts[3])
	var joined []byte
	for i := 1; i <= 3; i++ {
		joined = append(joined, drive.parts[i]...)
	}
	assert.Equal(t, payload, joined)

	expectedXML := `<?xml version="1.0" encoding="UTF-8"?>
<CompleteMultipartUpload>
<Part>
<PartNumber>1</PartNumber>
<ETag>etag-1</ETag>
</Part>
<Part>
<PartNumber>2</PartNumber>
<ETag>etag-2</ETag>
</Part>
<Part>
<PartNumber>3</PartNumber>
<ETag>etag-3</ETag>
</Part>
</CompleteMultipartUpload>`
	require.Equal(t, expectedXML, string(drive.commitBody))

	sum := md5.Sum([]byte(expectedXML))
	assert.Equal(t, base64.StdEncoding.EncodeToString(sum[:]), drive.commitHeaders.Get("Content-MD5"))
	assert.Equal(t, "OSS signed-token", drive.commitHeaders.Get("Authorization"))
	assert.Equal(t, "application/xml", drive.commitHeaders.Get("Content-Type"))

	callbackJSON, err := base64.StdEncoding.DecodeString(drive.commitHeaders.Get("x-oss-callback"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"callbackUrl":"https://cb.example.com/callback","callbackBody":"bucket=${bucket}&object=${object}"}`, string(callbackJSON))

	assert.True(t, drive.finishCalled)

	// progress is non-decreasing and ends at exactly 100
	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.GreaterOrEqual(t, progress[i], progress[i-1])
	}
	assert.Equal(t, float64(5), progress[0])
	assert.Equal(t, float64(100), progress[len(progress)-1])
	assert.Contains(t, progress, float64(85))
	assert.Contains(t, progress, float64(95))

	// pre-upload advertises parallel support even though parts went out
	// sequentially
	assert.Equal(t, true, drive.preBody["parallel_upload"])
	assert.Equal(t, "application/octet-stream", drive.preBody["format_type"])
}

func TestUploadCanonicalStrings(t *testing.T) {
	drive := &fakeDrive{partSize: 8}
	client := newTestClient(t, drive)

	_, err := client.Upload(context.Background(), "0", "a.bin", []byte("abcdefgh12"), nil)
	require.NoError(t, err)

	// one token per part plus one for the commit
	require.Len(t, drive.authCanonicals, 3)
	first := drive.authCanonicals[0]
	assert.True(t, len(first) > 4 && first[:5] == "PUT\n\n", "canonical: %q", first)
	assert.Contains(t, first, "x-oss-date:")
	assert.Contains(t, first, "x-oss-user-agent:aliyun-sdk-js/6.6.1")
	assert.Contains(t, first, "/bkt/objkey1?partNumber=1&uploadId=up-1")
	assert.Contains(t, drive.authCanonicals[1], "?partNumber=2&uploadId=up-1")

	commit := drive.authCanonicals[2]
	sum := md5.Sum(drive.commitBody)
	assert.True(t, strings.HasPrefix(commit, "POST\n"+base64.StdEncoding.EncodeToString(sum[:])+"\napplication/xml\n"), "canonical: %q", commit)
	assert.Contains(t, commit, "x-oss-callback:")
	assert.Contains(t, commit, "/bkt/objkey1?uploadId=up-1")
}

func TestUploadDedupShortCircuit(t *testing.T) {
	drive := &fakeDrive{partSize: 4, hashFinish: true}
	client := newTestClient(t, drive)

	var progress []float64
	fid, err := client.Upload(context.Background(), "0", "dup.bin", []byte("0123456789"), func(p float64) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, "fid-1", fid)
	assert.Zero(t, drive.maxPart, "no part should be uploaded")
	assert.Nil(t, drive.commitBody)
	assert.False(t, drive.finishCalled)
	assert.Equal(t, []float64{5, 10, 100}, progress)
}

func TestUploadMissingParameters(t *testing.T) {
	drive := &fakeDrive{partSize: 4, omitBucket: true}
	client := newTestClient(t, drive)

	_, err := client.Upload(context.Background(), "0", "x.bin", []byte("0123456789"), nil)
	var perr *errs.UploadParameterError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Contains(t, perr.Missing, "bucket")
	assert.Zero(t, drive.maxPart)
}

func TestUploadPartFailureAborts(t *testing.T) {
	drive := &fakeDrive{partSize: 4, failPart: 2}
	client := newTestClient(t, drive)

	_, err := client.Upload(context.Background(), "0", "x.bin", []byte("0123456789"), nil)
	var perr *errs.PartUploadError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, 2, perr.PartNumber)
	assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
	assert.Equal(t, 2, drive.maxPart, "no part after the failed one may be attempted")
	assert.False(t, drive.finishCalled)
}

type stubAuther struct {
	mu         sync.Mutex
	canonicals []string
}

func (s *stubAuther) AuthToken(ctx context.Context, taskID, authInfo, canonical string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.canonicals = append(s.canonicals, canonical)
	return "stub-token", nil
}

func TestUploadInjectedAuther(t *testing.T) {
	drive := &fakeDrive{partSize: 16}
	stub := &stubAuther{}
	client := newTestClient(t, drive, WithUploadAuther(stub))

	_, err := client.Upload(context.Background(), "0", "y.bin", []byte("tiny"), nil)
	require.NoError(t, err)
	assert.Empty(t, drive.authCanonicals, "the auth endpoint must not be hit")
	require.Len(t, stub.canonicals, 2)
	assert.Equal(t, "stub-token", drive.partAuth[1])
	assert.Equal(t, "stub-token", drive.commitHeaders.Get("Authorization"))
}
