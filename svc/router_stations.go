package svc

import (
	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pickaboo/radiobrowser-api-go/store"
)

// stationsSubcommand handles every "stations/<subcommand>[/search]" route
// from both len=4 (no search token) and len=5 (search present), including
// "byurl" and "search".
func (r *Router) stationsSubcommand(format, subcommand, search string, pe *ParameterExtractor) ApiResponse {
	order, reverse, hideBroken := listModifiers(pe)
	offset := pe.GetNumber(cmn.ParamOffset, 0)
	limit := pe.GetNumber(cmn.ParamLimit, cmn.DefaultLimit)

	switch subcommand {
	case cmn.SubTopVote:
		return r.topNResponse(format, search, pe, r.store.GetStationsTopVote)
	case cmn.SubTopClick:
		return r.topNResponse(format, search, pe, r.store.GetStationsTopClick)
	case cmn.SubLastClick:
		return r.topNResponse(format, search, pe, r.store.GetStationsLastClick)
	case cmn.SubLastChange:
		return r.topNResponse(format, search, pe, r.store.GetStationsLastChange)
	case cmn.SubBroken:
		return r.topNResponse(format, search, pe, r.store.GetStationsBroken)
	case cmn.SubImprovable:
		return r.topNResponse(format, search, pe, r.store.GetStationsImprovable)

	case cmn.SubByName:
		return r.byColumn(format, "name", search, false, order, reverse, hideBroken, offset, limit)
	case cmn.SubByNameExact:
		return r.byColumn(format, "name", search, true, order, reverse, hideBroken, offset, limit)
	case cmn.SubByCodec:
		return r.byColumn(format, "codec", search, false, order, reverse, hideBroken, offset, limit)
	case cmn.SubByCodecExact:
		return r.byColumn(format, "codec", search, true, order, reverse, hideBroken, offset, limit)
	case cmn.SubByCountry:
		return r.byColumn(format, "country", search, false, order, reverse, hideBroken, offset, limit)
	case cmn.SubByCountryExact:
		return r.byColumn(format, "country", search, true, order, reverse, hideBroken, offset, limit)
	case cmn.SubByCountryCodeExact:
		return r.byColumn(format, "countrycode", search, true, order, reverse, hideBroken, offset, limit)
	case cmn.SubByState:
		return r.byColumn(format, "state", search, false, order, reverse, hideBroken, offset, limit)
	case cmn.SubByStateExact:
		return r.byColumn(format, "state", search, true, order, reverse, hideBroken, offset, limit)
	case cmn.SubByTag:
		return r.byColumn(format, "tag", search, false, order, reverse, hideBroken, offset, limit)
	case cmn.SubByTagExact:
		return r.byColumn(format, "tag", search, true, order, reverse, hideBroken, offset, limit)
	case cmn.SubByLanguage:
		return r.byColumn(format, "language", search, false, order, reverse, hideBroken, offset, limit)
	case cmn.SubByLanguageExact:
		return r.byColumn(format, "language", search, true, order, reverse, hideBroken, offset, limit)

	case cmn.SubByUUID:
		if search == "" {
			return notFoundResponse()
		}
		stations, err := r.store.GetStationByUUID(search)
		if err != nil {
			return serverErrorResponse(cmn.NewStoreErr(err).Error())
		}
		return r.renderStationsOrErr(format, stations)

	case cmn.SubByURL:
		var v *string
		if search != "" {
			v = &search
		}
		stations, err := r.store.GetStationsByColumnMultiple("url", v, false, order, reverse, hideBroken, offset, limit)
		if err != nil {
			return serverErrorResponse(cmn.NewStoreErr(err).Error())
		}
		return r.renderStationsOrErr(format, stations)

	case cmn.SubSearch:
		adv := advancedSearchFromParams(pe, order, reverse, hideBroken, offset, limit)
		stations, err := r.store.GetStationsAdvanced(adv)
		if err != nil {
			return serverErrorResponse(cmn.NewStoreErr(err).Error())
		}
		return r.renderStationsOrErr(format, stations)

	case cmn.SubChanged:
		var uuid *string
		if search != "" {
			uuid = &search
		}
		lastChangeUUID, _ := pe.GetString(cmn.ParamLastChangeUUID)
		changes, err := r.store.GetChanges(uuid, lastChangeUUID)
		if err != nil {
			return serverErrorResponse(cmn.NewStoreErr(err).Error())
		}
		body, err := r.render.RenderChanges(format, changes)
		if err != nil {
			return serverErrorResponse(err.Error())
		}
		return textResponse(cmn.FormatContentType[format], body)

	default:
		return notFoundResponse()
	}
}

func (r *Router) topNResponse(format, search string, pe *ParameterExtractor, fetch func(uint32) ([]store.Station, error)) ApiResponse {
	limit := pe.GetNumber(cmn.ParamLimit, cmn.DefaultLimit)
	if search != "" {
		limit = parseLimitOrZero(search)
	}
	stations, err := fetch(limit)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	return r.renderStationsOrErr(format, stations)
}

func (r *Router) byColumn(format, column, value string, exact bool, order string, reverse, hideBroken bool, offset, limit uint32) ApiResponse {
	var v *string
	if value != "" {
		v = &value
	}
	stations, err := r.store.GetStationsByColumnMultiple(column, v, exact, order, reverse, hideBroken, offset, limit)
	if err != nil {
		return serverErrorResponse(cmn.NewStoreErr(err).Error())
	}
	return r.renderStationsOrErr(format, stations)
}

func (r *Router) renderStationsOrErr(format string, stations []store.Station) ApiResponse {
	body, err := r.render.RenderStations(format, stations)
	if err != nil {
		return serverErrorResponse(err.Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}

func advancedSearchFromParams(pe *ParameterExtractor, order string, reverse, hideBroken bool, offset, limit uint32) store.AdvancedSearch {
	name, _ := pe.GetString(cmn.ParamName)
	country, _ := pe.GetString(cmn.ParamCountry)
	countryCode, _ := pe.GetString(cmn.ParamCountryCode)
	state, _ := pe.GetString(cmn.ParamState)
	language, _ := pe.GetString(cmn.ParamLanguage)
	tag, _ := pe.GetString(cmn.ParamTag)
	codec, _ := pe.GetString(cmn.ParamCodec)

	return store.AdvancedSearch{
		Name:          name,
		NameExact:     pe.GetBool(cmn.ParamNameExact, false),
		Country:       country,
		CountryExact:  pe.GetBool(cmn.ParamCountryExact, false),
		CountryCode:   countryCode,
		State:         state,
		StateExact:    pe.GetBool(cmn.ParamStateExact, false),
		Language:      language,
		LanguageExact: pe.GetBool(cmn.ParamLanguageExact, false),
		Tag:           tag,
		TagExact:      pe.GetBool(cmn.ParamTagExact, false),
		TagList:       pe.GetTagList(),
		Codec:         codec,
		BitrateMin:    pe.GetNumber(cmn.ParamBitrateMin, 0),
		BitrateMax:    pe.GetNumber(cmn.ParamBitrateMax, cmn.DefaultBitrateMax),
		Order:         order,
		Reverse:       reverse,
		HideBroken:    hideBroken,
		Offset:        offset,
		Limit:         limit,
	}
}
