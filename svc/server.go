package svc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pickaboo/radiobrowser-api-go/cache"
	"github.com/pickaboo/radiobrowser-api-go/click"
	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pickaboo/radiobrowser-api-go/metrics"
	"github.com/pickaboo/radiobrowser-api-go/store"
	"github.com/prometheus/client_golang/prometheus"
	expfmt "github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"
)

// shutdownGrace bounds how long Shutdown waits for in-flight requests
// to finish before the daemon gives up and exits anyway.
const shutdownGrace = 10 * time.Second

// Server accepts connections on a bounded worker pool, applies CORS,
// invokes the cache-wrapped Router, logs access, and converts
// ApiResponse into an HTTP response. The worker pool is bounded by a
// semaphore the same way a throttling transport bounds concurrency.
type Server struct {
	httpServer *http.Server
	router     *Router
	cache      *cache.ResponseCache
	access     *metrics.AccessCounter
	sem        *semaphore.Weighted
	accessLog  *os.File
	log        *logrus.Logger
	promReg    *prometheus.Registry
}

// NewServer wires a Server to every collaborator it needs, once config
// and owners are ready.
func NewServer(cfg *cmn.Config, st store.Store, respCache *cache.ResponseCache, access *metrics.AccessCounter, clicks *metrics.ClickCounter, dedup *click.Dedup, log *logrus.Logger) *Server {
	reg := prometheus.NewRegistry()
	exporter := metrics.NewPromExporter(cfg.Prom.Prefix, access, clicks)
	if cfg.Prom.Enabled {
		reg.MustRegister(exporter)
	}
	promFactory := &PromFactory{
		Enabled: cfg.Prom.Enabled,
		Render: func() ([]byte, error) {
			mfs, err := reg.Gather()
			if err != nil {
				return nil, err
			}
			var buf bytes.Buffer
			enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
			for _, mf := range mfs {
				if err := enc.Encode(mf); err != nil {
					return nil, err
				}
			}
			return buf.Bytes(), nil
		},
	}

	router := NewRouter(st, cfg.Server.StaticFilesDir, cfg.Server.ServerURL, dedup, clicks, promFactory)

	var accessLog *os.File
	if cfg.Server.LogDir != "" {
		_ = os.MkdirAll(cfg.Server.LogDir, 0o755)
		if f, err := os.OpenFile(filepath.Join(cfg.Server.LogDir, "access.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err == nil {
			accessLog = f
		} else {
			log.WithError(err).Warn("could not open access log")
		}
	}

	s := &Server{
		router:    router,
		cache:     respCache,
		access:    access,
		sem:       semaphore.NewWeighted(int64(cfg.Server.Threads)),
		accessLog: accessLog,
		log:       log,
		promReg:   reg,
	}
	s.httpServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.ListenHost, strconv.Itoa(cfg.Server.ListenPort)),
		Handler: s,
	}
	return s
}

func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.accessLog != nil {
		defer s.accessLog.Close()
	}
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP enforces the worker pool, method allow-list, CORS headers,
// and the cache-wraps-router pipeline, then converts the resulting
// ApiResponse to bytes on the wire.
func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	receivedAt := time.Now()

	if err := s.sem.Acquire(req.Context(), 1); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	defer s.sem.Release(1)

	addCORSHeaders(w)

	if req.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if req.Method != http.MethodGet && req.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	params := s.buildParams(req, receivedAt)

	status := s.handle(w, params)

	if status < 400 {
		s.access.LogOK(params.Method, params.CleanedURL, status)
	} else {
		s.access.LogErr(params.Method, params.CleanedURL)
	}
	s.logAccess(params, status)
}

func (s *Server) handle(w http.ResponseWriter, params *RequestParams) int {
	key := cache.NewKey(params.Method+" "+pathOnly(params.RawURL), canonicalQuery(params))

	if status, contentType, body, ok := s.cache.Lookup(key); ok {
		writeBody(w, status, contentType, body)
		return status
	}

	outcome := s.router.Dispatch(params)
	format := formatSegment(params.Items)

	status, _ := s.writeResponse(w, outcome, format)

	if outcome.Cacheable && outcome.Response.Kind == KindText {
		if err := s.cache.Store(key, status, outcome.Response.ContentType, outcome.Response.Body); err != nil {
			s.log.WithError(err).Warn("cache store failed")
		}
	}
	return status
}

// writeResponse converts one EndpointOutcome to bytes on the wire,
// applying the format-segment content-type override last, and an
// explicit no-cache marker whenever the router marked the outcome
// non-cacheable.
func (s *Server) writeResponse(w http.ResponseWriter, outcome EndpointOutcome, format string) (status int, contentType string) {
	resp := outcome.Response
	if !outcome.Cacheable {
		w.Header().Set("Cache-Control", "no-store")
	}
	switch resp.Kind {
	case KindText:
		contentType = resp.ContentType
		if ct, ok := cmn.FormatContentType[format]; ok {
			contentType = ct
		}
		if disp, ok := cmn.FormatDisposition[format]; ok {
			w.Header().Set("Content-Disposition", disp)
		}
		status = http.StatusOK
		writeBody(w, status, contentType, resp.Body)
	case KindFile:
		status = http.StatusOK
		w.Header().Set("Content-Type", resp.ContentType)
		w.WriteHeader(status)
		if resp.File != nil {
			defer resp.File.Close()
			_, _ = io.Copy(w, resp.File)
		}
	case KindNotFound:
		status = http.StatusNotFound
		w.WriteHeader(status)
	case KindUnknownContentType:
		status = http.StatusNotAcceptable
		w.WriteHeader(status)
	case KindServerError:
		status = http.StatusInternalServerError
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp.Message))
	case KindLocked:
		status = http.StatusLocked
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(resp.Message))
	default:
		status = http.StatusInternalServerError
		w.WriteHeader(status)
	}
	return status, contentType
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func addCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "origin, x-requested-with, content-type")
	w.Header().Set("Access-Control-Allow-Methods", "GET,POST")
}

func (s *Server) buildParams(req *http.Request, receivedAt time.Time) *RequestParams {
	items := splitItems(req.URL.Path)

	contentType := req.Header.Get("Content-Type")
	if idx := strings.IndexByte(contentType, ';'); idx >= 0 {
		contentType = contentType[:idx]
	}

	remoteIP := req.Header.Get("X-Forwarded-For")
	if remoteIP == "" {
		remoteIP, _, _ = net.SplitHostPort(req.RemoteAddr)
	}

	p := &RequestParams{
		Method:      req.Method,
		RawURL:      req.URL.RequestURI(),
		CleanedURL:  CleanURL(req.URL.RequestURI()),
		Items:       items,
		ContentType: contentType,
		RemoteIP:    remoteIP,
		Referer:     req.Header.Get("Referer"),
		UserAgent:   req.Header.Get("User-Agent"),
		Params:      NewParameterExtractor(req),
	}
	p.ReceivedAt.Sec = receivedAt.Unix()
	p.ReceivedAt.Nsec = int64(receivedAt.Nanosecond())
	return p
}

// splitItems splits the URL path on '/'; items[0] is always "" for any
// absolute path, matching the router's len(items)-counts-the-leading-
// empty-segment convention.
func splitItems(path string) []string {
	decoded, err := url.PathUnescape(path)
	if err != nil {
		decoded = path
	}
	return strings.Split(decoded, "/")
}

// formatSegment returns the URL segment that determines response
// content-type/disposition. For the deprecated /v2/{format}/{command}/{search}
// shape the format sits one segment further in than usual, matching the
// reinterpretation Router.dispatchLen5 already applies.
func formatSegment(items []string) string {
	if len(items) >= 3 && items[1] == cmn.V2Deprecated {
		return items[2]
	}
	if len(items) >= 2 {
		return items[1]
	}
	return ""
}

func pathOnly(rawURL string) string {
	if idx := strings.IndexByte(rawURL, '?'); idx >= 0 {
		return rawURL[:idx]
	}
	return rawURL
}

// canonicalQuery serializes every query-string and form-body parameter of
// a request in a fixed key order so two requests with the same parameters
// but differently-ordered query strings produce byte-equal CacheKeys.
func canonicalQuery(p *RequestParams) string {
	values := p.Params.req.Form
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		vs := append([]string(nil), values[k]...)
		sort.Strings(vs)
		for _, v := range vs {
			fmt.Fprintf(&buf, "%s=%s&", k, v)
		}
	}
	return buf.String()
}

// logAccess writes one Apache-like common-log line per request; a write
// failure is logged, never propagated, and the timestamp used is the one
// captured at handler entry for both the ok and err paths.
func (s *Server) logAccess(p *RequestParams, status int) {
	if s.accessLog == nil {
		return
	}
	line := fmt.Sprintf("%s %d,%09d - [%s] %q %d 0 %q %q\n",
		p.RemoteIP, p.ReceivedAt.Sec, p.ReceivedAt.Nsec,
		time.Unix(p.ReceivedAt.Sec, p.ReceivedAt.Nsec).Format("02/01/2006:15:04:05.000000"),
		p.Method+" "+p.RawURL, status, p.Referer, p.UserAgent)
	if _, err := s.accessLog.WriteString(line); err != nil {
		s.log.WithError(err).Warn("access log write failed")
	}
}
