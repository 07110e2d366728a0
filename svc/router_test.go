package svc

import (
	"net/http"
	"net/url"

	"github.com/pickaboo/radiobrowser-api-go/click"
	"github.com/pickaboo/radiobrowser-api-go/metrics"
	"github.com/pickaboo/radiobrowser-api-go/store"
	"github.com/pickaboo/radiobrowser-api-go/store/memstore"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func newTestRouter(st store.Store) *Router {
	prom := &PromFactory{Enabled: false}
	dedup := click.NewDedup(0, 100)
	return NewRouter(st, "./testdata/static", "http://localhost:8080", dedup, &metrics.ClickCounter{}, prom)
}

func paramsFor(path, rawQuery string) *RequestParams {
	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: path, RawQuery: rawQuery}}
	return &RequestParams{
		Method: http.MethodGet,
		RawURL: path,
		Items:  splitItems(path),
		Params: NewParameterExtractor(req),
	}
}

var _ = Describe("Router dispatch", func() {
	var (
		ms *memstore.MemStore
		rt *Router
	)

	BeforeEach(func() {
		ms = memstore.New()
		rt = newTestRouter(ms)
	})

	It("returns an empty JSON array for /json/countries with an empty store", func() {
		outcome := rt.Dispatch(paramsFor("/json/countries", ""))
		Expect(outcome.Cacheable).To(BeTrue())
		Expect(outcome.Response.Kind).To(Equal(KindText))
		Expect(string(outcome.Response.Body)).To(Equal("[]"))
	})

	It("returns NotFound for /json/url/NOPE with no matching station", func() {
		outcome := rt.Dispatch(paramsFor("/json/url/NOPE", ""))
		Expect(outcome.Cacheable).To(BeFalse())
		Expect(outcome.Response.Kind).To(Equal(KindNotFound))
	})

	It("marks /json/add as non-cacheable and returns a ResultMessage", func() {
		outcome := rt.Dispatch(paramsFor("/json/add", "name=X&url=http://x"))
		Expect(outcome.Cacheable).To(BeFalse())
		Expect(outcome.Response.Kind).To(Equal(KindText))
		Expect(string(outcome.Response.Body)).To(ContainSubstring(`"ok":true`))
	})

	It("looks up a station by uuid at len=5 stations/byuuid", func() {
		ms.Seed(store.Station{StationUUID: "abc-123", Name: "Example FM"})
		outcome := rt.Dispatch(paramsFor("/json/stations/byuuid/abc-123", ""))
		Expect(outcome.Response.Kind).To(Equal(KindText))
		Expect(string(outcome.Response.Body)).To(ContainSubstring("Example FM"))
	})

	It("returns Locked when the exporter is disabled", func() {
		outcome := rt.Dispatch(paramsFor("/metrics", ""))
		Expect(outcome.Cacheable).To(BeTrue())
		Expect(outcome.Response.Kind).To(Equal(KindLocked))
		Expect(outcome.Response.Message).To(Equal("Exporter not enabled!"))
	})

	It("returns UnknownContentType for an unrecognized format segment", func() {
		outcome := rt.Dispatch(paramsFor("/yaml/countries", ""))
		Expect(outcome.Response.Kind).To(Equal(KindUnknownContentType))
	})
})
