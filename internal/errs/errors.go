package errs

import (
	"errors"
	"fmt"
	"strings"

	pkgerr "github.com/pkg/errors"
)

var (
	// DownloadURLMissing is returned when the download endpoint resolves a
	// fid to no entries, or to an entry without a url.
	DownloadURLMissing = errors.New("download url missing from response")
)

// NetworkError reports a transport failure or a non-2xx status on a raw
// fetch outside the drive API envelope.
type NetworkError struct {
	StatusCode int
	Snippet    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error: %s", e.Err)
	}
	return fmt.Sprintf("network error: status %d: %s", e.StatusCode, e.Snippet)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError reports an undecodable drive API response body, or an
// envelope whose status code is not a success.
type ProtocolError struct {
	Code    any
	Message string
}

func (e *ProtocolError) Error() string {
	if e.Code == nil {
		return fmt.Sprintf("protocol error: %s", e.Message)
	}
	return fmt.Sprintf("protocol error: code %v: %s", e.Code, e.Message)
}

// UploadParameterError reports a pre-upload negotiation that succeeded but
// did not return the object-storage parameters needed to transfer bytes.
type UploadParameterError struct {
	Missing []string
}

func (e *UploadParameterError) Error() string {
	return "upload parameters missing from negotiation: " + strings.Join(e.Missing, ", ")
}

// PartUploadError reports a failed chunk PUT to object storage.
type PartUploadError struct {
	PartNumber int
	StatusCode int
	Snippet    string
	Err        error
}

func (e *PartUploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("part %d upload failed: %s", e.PartNumber, e.Err)
	}
	return fmt.Sprintf("part %d upload failed: status %d: %s", e.PartNumber, e.StatusCode, e.Snippet)
}

func (e *PartUploadError) Unwrap() error { return e.Err }

// CommitError reports a failed CompleteMultipartUpload POST.
type CommitError struct {
	StatusCode int
	Snippet    string
	Err        error
}

func (e *CommitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("multipart commit failed: %s", e.Err)
	}
	return fmt.Sprintf("multipart commit failed: status %d: %s", e.StatusCode, e.Snippet)
}

func (e *CommitError) Unwrap() error { return e.Err }

func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(pkgerr.Cause(err), &e)
}

func IsProtocolError(err error) bool {
	var e *ProtocolError
	return errors.As(pkgerr.Cause(err), &e)
}
