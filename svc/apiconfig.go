package svc

import (
	"github.com/pickaboo/radiobrowser-api-go/cmn"
	jsoniter "github.com/json-iterator/go"
)

// apiConfig is the public projection of the running Config the "config"
// command exposes — only the fields a client needs to self-configure
// polling behavior, never the full internal Config (e.g. cache backend
// URLs stay server-side).
type apiConfig struct {
	CheckValidTimeoutSeconds int `json:"check_valid_timeout_seconds"`
	ClickValidTimeoutSeconds int `json:"click_valid_timeout_seconds"`
}

func (r *Router) renderApiConfig(format string) ApiResponse {
	cfg := cmn.GCO.Get()
	ac := apiConfig{
		CheckValidTimeoutSeconds: int(cfg.Broken.Timeout.Seconds()),
		ClickValidTimeoutSeconds: int(cfg.Cache.ClickValid.Seconds()),
	}
	if format != cmn.FormatJSON {
		return unknownContentTypeResponse()
	}
	body, err := jsoniter.Marshal(ac)
	if err != nil {
		return serverErrorResponse(cmn.NewSerializationErr(err).Error())
	}
	return textResponse(cmn.FormatContentType[format], body)
}
