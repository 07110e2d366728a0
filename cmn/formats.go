/*
 * Copyright (c) 2021, NVIDIA CORPORATION. All rights reserved.
 */
package cmn

// FormatContentType maps a recognized URL format segment to the
// Content-Type the Server sets on the outgoing response, overriding any
// content-type the router already attached.
var FormatContentType = map[string]string{
	FormatJSON: "application/json",
	FormatXML:  "text/xml",
	FormatM3U:  "audio/mpegurl",
	FormatPLS:  "audio/x-scpls",
	FormatXSPF: "application/xspf+xml",
	FormatTTL:  "text/turtle",
}

// FormatDisposition maps a format to the Content-Disposition header the
// Server adds for playlist formats, so player software downloads the body
// under a sensible filename.
var FormatDisposition = map[string]string{
	FormatM3U:  `inline; filename="playlist.m3u"`,
	FormatPLS:  `inline; filename="playlist.pls"`,
	FormatXSPF: `inline; filename="playlist.xspf"`,
}

// KnownFormat reports whether format is one the router/server pipeline can
// encode at all; "html" is valid only for the stats endpoint, which the
// router enforces itself.
func KnownFormat(format string) bool {
	switch format {
	case FormatJSON, FormatXML, FormatM3U, FormatPLS, FormatXSPF, FormatTTL, FormatHTML:
		return true
	default:
		return false
	}
}
