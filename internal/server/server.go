package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/tartampluch/go-fortune/internal/calendar"
	"github.com/tartampluch/go-fortune/internal/config"
	"github.com/tartampluch/go-fortune/internal/engine"
	"github.com/tartampluch/go-fortune/internal/export"
	"github.com/tartampluch/go-fortune/internal/share"
)

// resource is one rendered response body and its metadata for HTTP caching.
type resource struct {
	data        []byte
	etag        string
	contentType string
}

func newResource(data []byte, contentType string) *resource {
	hash := sha256.Sum256(data)
	return &resource{
		data:        data,
		etag:        fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		contentType: contentType,
	}
}

// snapshot is everything served for one prediction. A nil resource is answered with 404.
type snapshot struct {
	page         *resource
	qr           *resource
	calendar     *resource
	lastModified string // RFC1123 format required by HTTP headers
}

// Preview is the data published by Update.
type Preview struct {
	Report     *export.Report
	Prediction *engine.Prediction
	// ShareURL is optional; without it no QR code is served.
	ShareURL string
}

// PreviewServer serves the latest prediction on the loopback interface.
type PreviewServer struct {
	// snap uses atomic.Pointer for lock-free reads.
	// The page is read by the browser far more often than it is updated.
	snap atomic.Pointer[snapshot]
	Port string

	// QR controls the image served on /qr.png.
	QR share.Options
	// Clock stamps Last-Modified and the calendar DTSTAMP.
	Clock calendar.Clock
}

// NewPreviewServer creates a new instance of the server.
func NewPreviewServer(port string) *PreviewServer {
	return &PreviewServer{
		Port: port,
		QR:   share.DefaultOptions(),
	}
}

// Handler returns the router serving the page, the QR code and the calendar.
func (s *PreviewServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc(config.RouteRoot, s.serve(func(sn *snapshot) *resource { return sn.page }))
	r.HandleFunc(config.RouteQRCode, s.serve(func(sn *snapshot) *resource { return sn.qr }))
	r.HandleFunc(config.RouteCalendar, s.serve(func(sn *snapshot) *resource { return sn.calendar }))
	return r
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *PreviewServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// URL returns the address of the preview page.
func (s *PreviewServer) URL() string {
	return config.SchemeHTTP + "://" + config.LocalhostBindAddr + config.AddrSeparator + s.Port + config.RouteRoot
}

// Ready reports whether a prediction has been published.
func (s *PreviewServer) Ready() bool {
	return s.snap.Load() != nil
}

// Update renders pv and atomically replaces the served content.
// QR code and calendar failures only drop that resource; a page failure is returned.
func (s *PreviewServer) Update(pv Preview) error {
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock.Now()
	}

	page, err := renderPage(pv)
	if err != nil {
		return err
	}

	sn := &snapshot{
		page:         newResource(page, config.MimeHTML),
		lastModified: now.UTC().Format(http.TimeFormat),
	}

	if pv.ShareURL != "" {
		png, err := share.QRCodePNG(pv.ShareURL, s.QR)
		if err != nil {
			slog.Warn(config.MsgPreviewPartial,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyPath, config.RouteQRCode,
				config.LogKeyError, err,
			)
		} else {
			sn.qr = newResource(png, config.MimePNG)
		}
	}

	if pv.Prediction != nil {
		ics, err := engine.BirthdayCalendar(pv.Prediction, now)
		if err != nil {
			slog.Warn(config.MsgPreviewPartial,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyPath, config.RouteCalendar,
				config.LogKeyError, err,
			)
		} else {
			sn.calendar = newResource(ics, config.MimeTextCalendar)
		}
	}

	// Atomic store ensures that any concurrent reader sees either the old or the new complete snapshot.
	s.snap.Store(sn)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(page),
		config.LogKeyETag, sn.page.etag,
	)
	return nil
}

// serve answers one route from the current snapshot with HTTP caching support.
func (s *PreviewServer) serve(pick func(*snapshot) *resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// 1. Method Validation
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		// 2. Readiness Check
		sn := s.snap.Load()
		if sn == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}

		item := pick(sn)
		if item == nil {
			http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
			return
		}

		// 3. Set Response Headers
		w.Header().Set(config.HeaderContentType, item.contentType)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, sn.lastModified)

		// 4. Check Conditional Headers
		if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, sn.lastModified); err == nil {
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		// 5. Serve Content
		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}
