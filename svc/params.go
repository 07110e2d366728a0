package svc

import (
	"net/http"

	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pickaboo/radiobrowser-api-go/cmn/cos"
)

// ParameterExtractor is the uniform view over a request's query string
// and form body: three typed accessors with defaults, each reading from
// the already-parsed http.Request form values.
type ParameterExtractor struct {
	req *http.Request
}

// NewParameterExtractor parses req's query string and (for POST) form
// body once, tolerating a malformed body on endpoints that don't need one.
func NewParameterExtractor(req *http.Request) *ParameterExtractor {
	_ = req.ParseForm()
	return &ParameterExtractor{req: req}
}

// GetString returns the first present, trimmed value for name, or
// (..., false) if absent or empty after trimming.
func (p *ParameterExtractor) GetString(name string) (string, bool) {
	v := p.req.Form.Get(name)
	trimmed := trimSpace(v)
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// GetBool returns def when name is absent, and true iff the present
// value is the literal string "true" — case-sensitive, so "1" and
// "TRUE" are both false.
func (p *ParameterExtractor) GetBool(name string, def bool) bool {
	v := p.req.Form.Get(name)
	if v == "" {
		return def
	}
	return v == "true"
}

// GetNumber returns def when name is absent or unparsable, else the
// parsed decimal value.
func (p *ParameterExtractor) GetNumber(name string, def uint32) uint32 {
	v := p.req.Form.Get(name)
	if v == "" {
		return def
	}
	return cos.ParseU32(v, def)
}

// GetTagList splits the "tagList" parameter on commas, trims each part,
// and discards empties.
func (p *ParameterExtractor) GetTagList() []string {
	v := p.req.Form.Get(cmn.ParamTagList)
	if v == "" {
		return nil
	}
	return cos.SplitTrimNonEmpty(v, ',')
}

func trimSpace(s string) string {
	i, j := 0, len(s)
	for i < j && isSpace(s[i]) {
		i++
	}
	for j > i && isSpace(s[j-1]) {
		j--
	}
	return s[i:j]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
