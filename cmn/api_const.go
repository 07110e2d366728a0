// Package cmn provides the constants, config, and error kinds shared across
// the radio-browser API front-end: the router, the response cache, and the
// server.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

// top-level (len=2) asset names
const (
	AssetRoot    = ""
	AssetMetrics = "metrics"
	AssetFavicon = "favicon.ico"
	AssetRobots  = "robots.txt"
	AssetMainCSS = "main.css"
)

// commands recognized at len=3/4/5
const (
	CmdLanguages    = "languages"
	CmdCountries    = "countries"
	CmdCountryCodes = "countrycodes"
	CmdStates       = "states"
	CmdCodecs       = "codecs"
	CmdTags         = "tags"
	CmdStations     = "stations"
	CmdServers      = "servers"
	CmdStats        = "stats"
	CmdChecks       = "checks"
	CmdClicks       = "clicks"
	CmdAdd          = "add"
	CmdConfig       = "config"
	CmdVote         = "vote"
	CmdURL          = "url"
)

// stations/<subcommand> tokens (len=4 and len=5)
const (
	SubTopVote            = "topvote"
	SubTopClick           = "topclick"
	SubLastClick          = "lastclick"
	SubLastChange         = "lastchange"
	SubBroken             = "broken"
	SubImprovable         = "improvable"
	SubChanged            = "changed"
	SubByURL              = "byurl"
	SubSearch             = "search"
	SubByName             = "byname"
	SubByNameExact        = "bynameexact"
	SubByCodec            = "bycodec"
	SubByCodecExact       = "bycodecexact"
	SubByCountry          = "bycountry"
	SubByCountryExact     = "bycountryexact"
	SubByCountryCodeExact = "bycountrycodeexact"
	SubByState            = "bystate"
	SubByStateExact       = "bystateexact"
	SubByTag              = "bytag"
	SubByTagExact         = "bytagexact"
	SubByLanguage         = "bylanguage"
	SubByLanguageExact    = "bylanguageexact"
	SubByUUID             = "byuuid"
)

// V2Deprecated is the magic first segment of the deprecated 5-item shape
// /v2/{format}/{command}/{search}.
const V2Deprecated = "v2"

// recognized output formats
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatM3U  = "m3u"
	FormatPLS  = "pls"
	FormatXSPF = "xspf"
	FormatTTL  = "ttl"
	FormatHTML = "html"
)

// query/form parameter names
const (
	ParamTags           = "tags"
	ParamHomepage       = "homepage"
	ParamFavicon        = "favicon"
	ParamName           = "name"
	ParamNameExact      = "nameExact"
	ParamCountry        = "country"
	ParamCountryExact   = "countryExact"
	ParamCountryCode    = "countrycode"
	ParamState          = "state"
	ParamStateExact     = "stateExact"
	ParamLanguage       = "language"
	ParamLanguageExact  = "languageExact"
	ParamTag            = "tag"
	ParamTagExact       = "tagExact"
	ParamTagList        = "tagList"
	ParamCodec          = "codec"
	ParamURL            = "url"
	ParamOrder          = "order"
	ParamReverse        = "reverse"
	ParamHideBroken     = "hidebroken"
	ParamBitrateMin     = "bitrateMin"
	ParamBitrateMax     = "bitrateMax"
	ParamOffset         = "offset"
	ParamLimit          = "limit"
	ParamSeconds        = "seconds"
	ParamLastChangeUUID = "lastchangeuuid"
	ParamLastCheckUUID  = "lastcheckuuid"
	ParamLastClickUUID  = "lastclickuuid"
)

// parameter defaults
const (
	DefaultOrder      = "name"
	DefaultBitrateMax = uint32(1000000)
	DefaultLimit      = uint32(999999)
)

// HTTP methods accepted by the server
const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodOptions = "OPTIONS"
)
