package svc

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pickaboo/radiobrowser-api-go/click"
	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pickaboo/radiobrowser-api-go/metrics"
	"github.com/pickaboo/radiobrowser-api-go/store"
)

// Router is the URL-to-operation dispatcher: it never touches the
// transport or the cache, only RequestParams in and an EndpointOutcome
// out. Dispatch is driven entirely by path-segment count and fixed
// keyword segments, never by regex or a route tree.
type Router struct {
	store       store.Store
	render      *Renderer
	prom        *PromFactory
	staticDir   string
	serverURL   string
	dedup       *click.Dedup
	clicks      *metrics.ClickCounter
}

// PromFactory builds (or reports disabled for) the Prometheus render,
// kept as a function so Router doesn't import the live *metrics.AccessCounter
// directly — the Server owns that instance and supplies a closure.
type PromFactory struct {
	Enabled bool
	Render  func() ([]byte, error)
}

// NewRouter wires a Router to its collaborators.
func NewRouter(st store.Store, staticDir, serverURL string, dedup *click.Dedup, clicks *metrics.ClickCounter, prom *PromFactory) *Router {
	return &Router{
		store:     st,
		render:    NewRenderer(),
		prom:      prom,
		staticDir: staticDir,
		serverURL: serverURL,
		dedup:     dedup,
		clicks:    clicks,
	}
}

// Dispatch is the sole entry point: examine params.Items by length and
// fixed keyword segments, return the outcome.
func (r *Router) Dispatch(params *RequestParams) EndpointOutcome {
	items := params.Items
	switch len(items) {
	case 2:
		return r.dispatchLen2(items[1])
	case 3:
		return r.dispatchLen3(params, items[1], items[2])
	case 4:
		return r.dispatchLen4(params, items[1], items[2], items[3])
	case 5:
		return r.dispatchLen5(params, items[1], items[2], items[3], items[4])
	default:
		return EndpointOutcome{Cacheable: true, Response: notFoundResponse()}
	}
}

func (r *Router) dispatchLen2(asset string) EndpointOutcome {
	switch asset {
	case "metrics":
		if !r.prom.Enabled {
			return EndpointOutcome{Cacheable: true, Response: lockedResponse("Exporter not enabled!")}
		}
		body, err := r.prom.Render()
		if err != nil {
			return EndpointOutcome{Cacheable: false, Response: serverErrorResponse(err.Error())}
		}
		return EndpointOutcome{Cacheable: false, Response: textResponse("text/plain; version=0.0.4", body)}
	case cmn.AssetFavicon, cmn.AssetRobots, cmn.AssetMainCSS:
		return EndpointOutcome{Cacheable: true, Response: r.serveStatic(asset)}
	case "":
		body, err := renderDocs(r.serverURL)
		if err != nil {
			return EndpointOutcome{Cacheable: false, Response: serverErrorResponse(cmn.Wrap(err, "render docs").Error())}
		}
		return EndpointOutcome{Cacheable: false, Response: textResponse("text/html", body)}
	default:
		return EndpointOutcome{Cacheable: false, Response: notFoundResponse()}
	}
}

func (r *Router) serveStatic(asset string) ApiResponse {
	contentType := map[string]string{
		cmn.AssetFavicon: "image/x-icon",
		cmn.AssetRobots:  "text/plain",
		cmn.AssetMainCSS: "text/css",
	}[asset]
	f, err := os.Open(filepath.Join(r.staticDir, asset))
	if err != nil {
		return notFoundResponse()
	}
	return fileResponse(contentType, f)
}

func (r *Router) dispatchLen3(params *RequestParams, format, command string) EndpointOutcome {
	if !cmn.KnownFormat(format) {
		return EndpointOutcome{Cacheable: true, Response: unknownContentTypeResponse()}
	}
	cacheable := command != cmn.CmdAdd

	var resp ApiResponse
	switch command {
	case cmn.CmdLanguages:
		resp = r.listExtra(format, "languages", nil, params.Params)
	case cmn.CmdCountries:
		resp = r.listExtra(format, "countries", nil, params.Params)
	case cmn.CmdCountryCodes:
		resp = r.listExtra(format, "countrycodes", nil, params.Params)
	case cmn.CmdStates:
		resp = r.listStates(format, nil, nil, params.Params)
	case cmn.CmdCodecs:
		resp = r.listExtra(format, "codecs", nil, params.Params)
	case cmn.CmdTags:
		resp = r.listExtra(format, "tags", nil, params.Params)
	case cmn.CmdStations:
		resp = r.listStations(format, params.Params)
	case cmn.CmdServers:
		resp = r.listServers(format)
	case cmn.CmdStats:
		resp = r.renderStats(format)
	case cmn.CmdChecks:
		resp = r.listChecks(format, nil, params.Params)
	case cmn.CmdClicks:
		resp = r.listClicks(format, nil, params.Params)
	case cmn.CmdAdd:
		resp = r.addStation(format, params.Params)
	case cmn.CmdConfig:
		resp = r.renderApiConfig(format)
	default:
		resp = notFoundResponse()
		cacheable = false
	}
	return EndpointOutcome{Cacheable: cacheable, Response: resp}
}

func (r *Router) dispatchLen4(params *RequestParams, format, command, parameter string) EndpointOutcome {
	if !cmn.KnownFormat(format) {
		return EndpointOutcome{Cacheable: true, Response: unknownContentTypeResponse()}
	}

	switch command {
	case cmn.CmdVote:
		return EndpointOutcome{Cacheable: false, Response: r.vote(format, parameter, params.RemoteIP)}
	case cmn.CmdURL:
		return EndpointOutcome{Cacheable: false, Response: r.url(format, parameter, params.RemoteIP)}
	case cmn.CmdStations:
		return EndpointOutcome{Cacheable: true, Response: r.stationsSubcommand(format, parameter, "", params.Params)}
	case cmn.CmdChecks:
		return EndpointOutcome{Cacheable: true, Response: r.listChecks(format, &parameter, params.Params)}
	case cmn.CmdClicks:
		return EndpointOutcome{Cacheable: true, Response: r.listClicks(format, &parameter, params.Params)}
	case cmn.CmdLanguages:
		return EndpointOutcome{Cacheable: true, Response: r.listExtra(format, "languages", &parameter, params.Params)}
	case cmn.CmdCountries:
		return EndpointOutcome{Cacheable: true, Response: r.listExtra(format, "countries", &parameter, params.Params)}
	case cmn.CmdCountryCodes:
		return EndpointOutcome{Cacheable: true, Response: r.listExtra(format, "countrycodes", &parameter, params.Params)}
	case cmn.CmdCodecs:
		return EndpointOutcome{Cacheable: true, Response: r.listExtra(format, "codecs", &parameter, params.Params)}
	case cmn.CmdTags:
		return EndpointOutcome{Cacheable: true, Response: r.listExtra(format, "tags", &parameter, params.Params)}
	case cmn.CmdStates:
		return EndpointOutcome{Cacheable: true, Response: r.listStates(format, nil, &parameter, params.Params)}
	default:
		return EndpointOutcome{Cacheable: true, Response: notFoundResponse()}
	}
}

func (r *Router) dispatchLen5(params *RequestParams, seg1, seg2, seg3, seg4 string) EndpointOutcome {
	if seg1 == cmn.V2Deprecated {
		format, command, search := seg2, seg3, seg4
		if command != cmn.CmdURL || !cmn.KnownFormat(format) {
			return EndpointOutcome{Cacheable: false, Response: notFoundResponse()}
		}
		return EndpointOutcome{Cacheable: false, Response: r.url(format, search, params.RemoteIP)}
	}

	format, command, parameter, search := seg1, seg2, seg3, seg4
	if !cmn.KnownFormat(format) {
		return EndpointOutcome{Cacheable: true, Response: unknownContentTypeResponse()}
	}

	switch command {
	case cmn.CmdStates:
		return EndpointOutcome{Cacheable: true, Response: r.listStates(format, &parameter, &search, params.Params)}
	case cmn.CmdStations:
		return EndpointOutcome{Cacheable: true, Response: r.stationsSubcommand(format, parameter, search, params.Params)}
	default:
		return EndpointOutcome{Cacheable: true, Response: notFoundResponse()}
	}
}

func (r *Router) listExtra(format, table string, filter *string, pe *ParameterExtractor) ApiResponse {
	order, reverse, hideBroken := listModifiers(pe)
	items, err := r.store.Get1N(table, filter, order, reverse, hideBroken)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	body, err := r.render.RenderExtraInfo(format, items)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) listStates(format string, country, filter *string, pe *ParameterExtractor) ApiResponse {
	order, reverse, hideBroken := listModifiers(pe)
	states, err := r.store.GetStates(country, filter, order, reverse, hideBroken)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	body, err := r.render.RenderStates(format, states)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) listStations(format string, pe *ParameterExtractor) ApiResponse {
	order, reverse, hideBroken := listModifiers(pe)
	offset := pe.GetNumber(cmn.ParamOffset, 0)
	limit := pe.GetNumber(cmn.ParamLimit, cmn.DefaultLimit)
	stations, err := r.store.GetStationsByAll(order, reverse, hideBroken, offset, limit)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	body, err := r.render.RenderStations(format, stations)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) listChecks(format string, stationUUID *string, pe *ParameterExtractor) ApiResponse {
	seconds := pe.GetNumber(cmn.ParamSeconds, 0)
	lastCheckUUID, _ := pe.GetString(cmn.ParamLastCheckUUID)
	checks, err := r.store.GetChecks(stationUUID, lastCheckUUID, seconds, false)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	body, err := r.render.RenderChecks(format, checks)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) listClicks(format string, stationUUID *string, pe *ParameterExtractor) ApiResponse {
	seconds := pe.GetNumber(cmn.ParamSeconds, 0)
	lastClickUUID, _ := pe.GetString(cmn.ParamLastClickUUID)
	clicks, err := r.store.GetClicks(stationUUID, lastClickUUID, seconds)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	body, err := r.render.RenderClicks(format, clicks)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) listServers(format string) ApiResponse {
	names, err := LookupServerNames()
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	body, err := renderServerNames(format, names)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) renderStats(format string) ApiResponse {
	working, _ := r.store.StationCountWorking()
	broken, _ := r.store.StationCountBroken()
	tags, _ := r.store.TagCount()
	clicksHour, _ := r.store.ClickCountLastHour()
	clicksDay, _ := r.store.ClickCountLastDay()
	languages, _ := r.store.LanguageCount()
	countries, _ := r.store.CountryCount()

	status := store.Status{
		SupportedVersion: 1,
		SoftwareVersion:  "1.0.0",
		Status:           "OK",
		StationsWorking:  working,
		StationsBroken:   broken,
		Tags:             tags,
		ClicksLastHour:   clicksHour,
		ClicksLastDay:    clicksDay,
		Languages:        languages,
		Countries:        countries,
	}
	if format == cmn.FormatHTML {
		body, err := renderStatsHTML(status)
		if err != nil {
			return serverErrorResponse(cmn.NewTemplateErr(err).Error())
		}
		return textResponse("text/html", body)
	}
	body, err := r.render.RenderStatus(format, status)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) addStation(format string, pe *ParameterExtractor) ApiResponse {
	name, _ := pe.GetString(cmn.ParamName)
	url, _ := pe.GetString(cmn.ParamURL)
	homepage, _ := pe.GetString(cmn.ParamHomepage)
	favicon, _ := pe.GetString(cmn.ParamFavicon)
	country, _ := pe.GetString(cmn.ParamCountry)
	countryCode, _ := pe.GetString(cmn.ParamCountryCode)
	state, _ := pe.GetString(cmn.ParamState)
	language, _ := pe.GetString(cmn.ParamLanguage)
	tags, _ := pe.GetString(cmn.ParamTags)

	msg, err := r.store.AddStationOpt(store.AddStationParams{
		Name: name, URL: url, Homepage: homepage, Favicon: favicon,
		Country: country, CountryCode: countryCode, State: state,
		Language: language, Tags: tags,
	})
	result := ResultMessage{OK: err == nil, Message: msg}
	if err != nil {
		result.Message = err.Error()
	}
	body, rerr := r.render.RenderResult(format, result)
	if rerr != nil {
		return serverErrorResponse(rerr.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) vote(format, stationUUID, remoteIP string) ApiResponse {
	stations, err := r.store.GetStationByUUID(stationUUID)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	// get_only_first_item: 0 or 2+ rows both mean "not found".
	station, ok := store.OnlyFirstItem(stations)
	if !ok {
		return notFoundResponse()
	}
	msg, err := r.store.VoteForStation(remoteIP, station)
	result := ResultMessage{OK: err == nil, Message: msg}
	if err != nil {
		result.Message = err.Error()
	}
	body, rerr := r.render.RenderResult(format, result)
	if rerr != nil {
		return serverErrorResponse(rerr.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func (r *Router) url(format, stationUUID, remoteIP string) ApiResponse {
	stations, err := r.store.GetStationByUUID(stationUUID)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	station, ok := store.OnlyFirstItem(stations)
	if !ok {
		return notFoundResponse()
	}
	r.clicks.Inc()
	if !r.dedup.Seen(remoteIP, station.StationUUID) {
		r.store.IncreaseClicks(remoteIP, station, 0)
	}
	body, err := r.render.RenderStations(format, []store.Station{*station})
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func listModifiers(pe *ParameterExtractor) (order string, reverse, hideBroken bool) {
	order, _ = pe.GetString(cmn.ParamOrder)
	if order == "" {
		order = cmn.DefaultOrder
	}
	reverse = pe.GetBool(cmn.ParamReverse, false)
	hideBroken = pe.GetBool(cmn.ParamHideBroken, false)
	return
}

func derefOr(s *string, def string) string {
	if s == nil {
		return def
	}
	return *s
}

func parseLimitOrZero(s string) uint32 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
