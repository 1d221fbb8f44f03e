// Package download transfers a single mirror URL to disk.
//
// A transfer streams the body into "<name>.part" next to the final file,
// checks for cancellation after every chunk and renames the partial file
// into place once the body is complete. Partial files never survive a
// failed or cancelled transfer.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cperrin88/mirrorget/internal/logger"
	"github.com/cperrin88/mirrorget/pkg/errutils"
	"github.com/cperrin88/mirrorget/pkg/fsutil"
)

const (
	// ChunkSize is the size of each body read.
	ChunkSize = 8 << 10
	// PartSuffix is appended to the final file name while the body is written.
	PartSuffix = ".part"
	// DefaultTimeout bounds connecting, the response headers and any gap between chunks.
	DefaultTimeout = 20 * time.Second
	// DefaultUserAgent is sent when none is configured.
	DefaultUserAgent = "mirrorget/1.0"
)

var errIdleTimeout = errors.New("no data received within timeout")

// ManagerImpl transfers files over HTTP(S).
type ManagerImpl struct {
	client      *http.Client
	userAgent   string
	idleTimeout time.Duration
}

// NewManager creates a transfer manager. timeout bounds the connection, the
// wait for response headers and the gap between two body chunks; there is
// no limit on the total transfer time.
func NewManager(timeout time.Duration, userAgent string) *ManagerImpl {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return &ManagerImpl{
		client:      &http.Client{Transport: transport},
		userAgent:   userAgent,
		idleTimeout: timeout,
	}
}

// Transfer streams req.URL into req.Dir and returns the final file path.
// Every failure is a *TransferError; cancellation of ctx is reported as
// KindCancelled.
func (m *ManagerImpl) Transfer(ctx context.Context, req Request) (finalPath string, err error) {
	var partPath string
	defer func() {
		if r := recover(); r != nil {
			_ = fsutil.RemoveIfExists(partPath)
			finalPath = ""
			err = newError(KindOther, req.URL, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", newError(KindCancelled, req.URL, err)
	}
	if req.Dir == "" {
		return "", newError(KindIO, req.URL, fmt.Errorf("empty download dir: %w", errutils.ErrInvalidPath))
	}
	if err := fsutil.EnsureDir(req.Dir); err != nil {
		return "", newError(KindIO, req.URL, errutils.Wrap(err, "could not create download dir"))
	}

	reqCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	idle := newIdleTimer(m.idleTimeout, func() { cancel(errIdleTimeout) })
	defer idle.stop()

	resp, err := m.doRequest(reqCtx, req.URL)
	if err != nil {
		return "", classify(ctx, reqCtx, req.URL, KindNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransferError{
			Kind:       KindHTTPStatus,
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errutils.ErrDownloadFailed),
		}
	}

	name := ResolveFilename(resp.Header.Get("Content-Disposition"), req.URL)
	finalPath = filepath.Join(req.Dir, name)
	partPath = finalPath + PartSuffix
	if req.OnStart != nil {
		req.OnStart(name)
	}

	if err := m.writeBody(ctx, reqCtx, resp, partPath, req, idle); err != nil {
		if rmErr := fsutil.RemoveIfExists(partPath); rmErr != nil {
			logger.Warn("could not remove partial file", logger.Fields{"path": partPath, "error": rmErr})
		}
		return "", err
	}
	if err := fsutil.ReplaceFile(partPath, finalPath); err != nil {
		_ = fsutil.RemoveIfExists(partPath)
		return "", newError(KindIO, req.URL, err)
	}

	applyLastModified(finalPath, resp.Header.Get("Last-Modified"), req.OnLog)
	logger.Debug("transfer complete", logger.Fields{"url": req.URL, "path": finalPath})
	return finalPath, nil
}

func (m *ManagerImpl) doRequest(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, errutils.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", m.userAgent)
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, errutils.Wrap(err, "download failed")
	}
	return resp, nil
}

// writeBody streams the body into partPath in ChunkSize reads. Cancellation of
// ctx is observed after every chunk.
func (m *ManagerImpl) writeBody(ctx, reqCtx context.Context, resp *http.Response, partPath string, req Request, idle *idleTimer) error {
	f, err := os.OpenFile(partPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return newError(KindIO, req.URL, errutils.Wrap(err, "could not create partial file"))
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}
	var done int64
	buf := make([]byte, ChunkSize)
	start := time.Now()

	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := f.Write(buf[:n]); err != nil {
				_ = f.Close()
				return newError(KindIO, req.URL, errutils.Wrap(err, "could not write file"))
			}
			done += int64(n)
			idle.reset()
			if req.OnProgress != nil {
				req.OnProgress(Progress{Downloaded: done, Total: total, Elapsed: time.Since(start)})
			}
		}
		if err := ctx.Err(); err != nil {
			_ = f.Close()
			return newError(KindCancelled, req.URL, err)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			_ = f.Close()
			return classify(ctx, reqCtx, req.URL, KindNetwork, errutils.Wrap(readErr, "could not read response body"))
		}
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		return newError(KindIO, req.URL, errutils.Wrap(err, "could not sync file"))
	}
	if err := f.Close(); err != nil {
		return newError(KindIO, req.URL, errutils.Wrap(err, "could not close file"))
	}
	return nil
}

// classify maps a failure to Cancelled when the caller cancelled, to a
// timeout when the idle timer fired, and to fallback otherwise.
func classify(ctx, reqCtx context.Context, rawURL string, fallback Kind, err error) *TransferError {
	if ctx.Err() != nil {
		return newError(KindCancelled, rawURL, ctx.Err())
	}
	if errors.Is(context.Cause(reqCtx), errIdleTimeout) {
		return newError(KindNetwork, rawURL, errIdleTimeout)
	}
	return newError(fallback, rawURL, err)
}

// applyLastModified sets the file's access and modification time from an
// HTTP-date. Problems are reported through onLog and never fail the transfer.
func applyLastModified(path, header string, onLog func(string)) {
	if header == "" {
		return
	}
	warn := func(err error) {
		logger.Warn("could not set file modification time", logger.Fields{"path": path, "error": err})
		if onLog != nil {
			onLog(fmt.Sprintf("Warning: Could not set file modification time: %v", err))
		}
	}

	modTime, err := http.ParseTime(header)
	if err != nil {
		if modTime, err = mail.ParseDate(header); err != nil {
			warn(fmt.Errorf("invalid Last-Modified %q: %w", header, err))
			return
		}
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		warn(err)
	}
}

// idleTimer fires when no chunk arrived within timeout.
type idleTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	timeout time.Duration
}

func newIdleTimer(timeout time.Duration, fire func()) *idleTimer {
	return &idleTimer{timer: time.AfterFunc(timeout, fire), timeout: timeout}
}

func (t *idleTimer) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer.Reset(t.timeout)
}

func (t *idleTimer) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer.Stop()
}
