// Package store defines the DataStore contract as an external
// collaborator: every accessor the router calls to read or mutate
// station data, abstracted behind an interface so tests can swap in an
// in-memory fake (see store/memstore).
package store

import (
	"errors"
	"time"
)

// Sentinel errors a Store implementation returns so callers can
// distinguish "not found" from a genuine backend failure.
var (
	ErrNotFound        = errors.New("station not found")
	ErrInvalidStation  = errors.New("invalid station parameters")
)

// Station is the public projection of one station row.
type Station struct {
	StationUUID    string    `json:"stationuuid" xml:"StationUuid"`
	ChangeUUID     string    `json:"changeuuid" xml:"ChangeUuid"`
	Name           string    `json:"name" xml:"Name"`
	URL            string    `json:"url" xml:"Url"`
	URLResolved    string    `json:"url_resolved" xml:"UrlResolved"`
	Homepage       string    `json:"homepage" xml:"Homepage"`
	Favicon        string    `json:"favicon" xml:"Favicon"`
	Tags           string    `json:"tags" xml:"Tags"`
	Country        string    `json:"country" xml:"Country"`
	CountryCode    string    `json:"countrycode" xml:"CountryCode"`
	State          string    `json:"state" xml:"State"`
	Language       string    `json:"language" xml:"Language"`
	LanguageCodes  string    `json:"languagecodes" xml:"LanguageCodes"`
	Votes          int32     `json:"votes" xml:"Votes"`
	Codec          string    `json:"codec" xml:"Codec"`
	Bitrate        uint32    `json:"bitrate" xml:"Bitrate"`
	HLS            bool      `json:"hls" xml:"Hls"`
	LastCheckOK    bool      `json:"lastcheckok" xml:"LastCheckOK"`
	LastCheckTime  time.Time `json:"lastchecktime_iso8601" xml:"LastCheckTimeISO8601"`
	ClickTimestamp time.Time `json:"clicktimestamp_iso8601" xml:"ClickTimestampISO8601"`
	ClickCount     uint32    `json:"clickcount" xml:"ClickCount"`
	ClickTrend     int32     `json:"clicktrend" xml:"ClickTrend"`
	SSLError       bool      `json:"ssl_error" xml:"SslError"`
	GeoLat         *float64  `json:"geo_lat" xml:"GeoLat"`
	GeoLong        *float64  `json:"geo_long" xml:"GeoLong"`
}

// ExtraInfo is the shape behind the extra-info tables ("1:n" lookups
// named Get1N/GetExtra — tags, languages, countries, countrycodes,
// codecs).
type ExtraInfo struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	StationCount int  `json:"stationcount"`
}

// State is a (country, state) pair with a station count.
type State struct {
	Name         string `json:"name"`
	Country      string `json:"country"`
	StationCount int    `json:"stationcount"`
}

// StationCheck is one health-check record.
type StationCheck struct {
	StationUUID string    `json:"stationuuid"`
	CheckUUID   string    `json:"checkuuid"`
	Source      string    `json:"source"`
	CheckTime   time.Time `json:"checktime_iso8601"`
	OK          bool      `json:"ok"`
	Bitrate     uint32    `json:"bitrate"`
	Codec       string    `json:"codec"`
}

// StationClick is one click/listen record.
type StationClick struct {
	StationUUID string    `json:"stationuuid"`
	ClickUUID   string    `json:"clickuuid"`
	ClickTime   time.Time `json:"clicktimestamp_iso8601"`
	IP          string    `json:"-"`
}

// StationHistoryCurrent is one row of the /stations/changed history feed.
type StationHistoryCurrent struct {
	StationUUID string    `json:"stationuuid"`
	ChangeUUID  string    `json:"changeuuid"`
	Name        string    `json:"name"`
	LastChange  time.Time `json:"lastchangetime_iso8601"`
}

// AdvancedSearch bundles every parameter the "search" subcommand accepts.
type AdvancedSearch struct {
	Name            string
	NameExact       bool
	Country         string
	CountryExact    bool
	CountryCode     string
	State           string
	StateExact      bool
	Language        string
	LanguageExact   bool
	Tag             string
	TagExact        bool
	TagList         []string
	Codec           string
	BitrateMin      uint32
	BitrateMax      uint32
	Order           string
	Reverse         bool
	HideBroken      bool
	Offset          uint32
	Limit           uint32
}

// AddStationParams is what the "add" endpoint submits.
type AddStationParams struct {
	Name        string
	URL         string
	Homepage    string
	Favicon     string
	Country     string
	CountryCode string
	State       string
	Language    string
	Tags        string
}

// Status is the aggregate health snapshot the "stats" endpoint reports.
type Status struct {
	SupportedVersion   int    `json:"supported_version"`
	SoftwareVersion    string `json:"software_version"`
	Status             string `json:"status"`
	StationsWorking    int    `json:"stations"`
	StationsBroken     int    `json:"stations_broken"`
	Tags               int    `json:"tags"`
	ClicksLastHour     int    `json:"clicks_last_hour"`
	ClicksLastDay      int    `json:"clicks_last_day"`
	Languages          int    `json:"languages"`
	Countries          int    `json:"countries"`
}

// Store is the DataStore contract the router depends on but never
// implements. Every accessor either returns a concrete result or
// propagates an error, which the router wraps into cmn.NewStoreErr.
type Store interface {
	// counts
	StationCountWorking() (int, error)
	StationCountBroken() (int, error)
	TagCount() (int, error)
	ClickCountLastHour() (int, error)
	ClickCountLastDay() (int, error)
	LanguageCount() (int, error)
	CountryCount() (int, error)

	// 1:n / extra-info lookups
	Get1N(table string, filter *string, order string, reverse, hideBroken bool) ([]ExtraInfo, error)
	GetExtra(table, nameColumn string, filter *string, order string, reverse, hideBroken bool) ([]ExtraInfo, error)
	GetStates(country, filter *string, order string, reverse, hideBroken bool) ([]State, error)
	GetChanges(stationUUID *string, lastChangeUUID string) ([]StationHistoryCurrent, error)
	GetChecks(stationUUID *string, lastCheckUUID string, seconds uint32, strict bool) ([]StationCheck, error)
	GetClicks(stationUUID *string, lastClickUUID string, seconds uint32) ([]StationClick, error)

	// station queries
	GetStationsByAll(order string, reverse, hideBroken bool, offset, limit uint32) ([]Station, error)
	GetStationsByColumn(column, value string, exact bool, order string, reverse, hideBroken bool, offset, limit uint32) ([]Station, error)
	GetStationsByColumnMultiple(column string, value *string, exact bool, order string, reverse, hideBroken bool, offset, limit uint32) ([]Station, error)
	GetStationsAdvanced(p AdvancedSearch) ([]Station, error)
	GetStationsTopVote(limit uint32) ([]Station, error)
	GetStationsTopClick(limit uint32) ([]Station, error)
	GetStationsLastClick(limit uint32) ([]Station, error)
	GetStationsLastChange(limit uint32) ([]Station, error)
	GetStationsBroken(limit uint32) ([]Station, error)
	GetStationsImprovable(limit uint32) ([]Station, error)
	GetStationByUUID(uuid string) ([]Station, error)

	// mutations
	VoteForStation(ip string, station *Station) (string, error)
	IncreaseClicks(ip string, station *Station, validTimeout time.Duration) error
	AddStationOpt(p AddStationParams) (string, error)
}

// OnlyFirstItem returns the single element of stations, or (nil, false)
// when the lookup returned zero or two-or-more rows — the documented
// "buggy" get_only_first_item behavior, preserved verbatim.
func OnlyFirstItem(stations []Station) (*Station, bool) {
	if len(stations) != 1 {
		return nil, false
	}
	return &stations[0], true
}
