package svc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"reflect"

	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pickaboo/radiobrowser-api-go/store"
	jsoniter "github.com/json-iterator/go"
)

// ResultMessage is the success/fail envelope submission endpoints
// (add/vote/url) wrap their outcome into: status stays 200, the outcome
// travels in the body.
type ResultMessage struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Renderer encodes domain objects into one of the recognized formats.
// Each Render* returns the encoded body; the caller attaches the
// format-derived content-type from cmn.FormatContentType.
type Renderer struct{}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) RenderStations(format string, stations []store.Station) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(stations)
	case cmn.FormatXML:
		return marshalXML("stations", "station", stations)
	case cmn.FormatM3U:
		return renderM3U(stations), nil
	case cmn.FormatPLS:
		return renderPLS(stations), nil
	case cmn.FormatXSPF:
		return renderXSPF(stations), nil
	case cmn.FormatTTL:
		return renderStationsTTL(stations), nil
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported station format %q", format))
	}
}

func (r *Renderer) RenderExtraInfo(format string, items []store.ExtraInfo) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(items)
	case cmn.FormatXML:
		return marshalXML("list", "item", items)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported list format %q", format))
	}
}

func (r *Renderer) RenderStates(format string, states []store.State) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(states)
	case cmn.FormatXML:
		return marshalXML("list", "state", states)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported list format %q", format))
	}
}

func (r *Renderer) RenderChecks(format string, checks []store.StationCheck) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(checks)
	case cmn.FormatXML:
		return marshalXML("checks", "check", checks)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported list format %q", format))
	}
}

func (r *Renderer) RenderClicks(format string, clicks []store.StationClick) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(clicks)
	case cmn.FormatXML:
		return marshalXML("clicks", "click", clicks)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported list format %q", format))
	}
}

func (r *Renderer) RenderChanges(format string, changes []store.StationHistoryCurrent) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(changes)
	case cmn.FormatXML:
		return marshalXML("changes", "change", changes)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported list format %q", format))
	}
}

func (r *Renderer) RenderResult(format string, msg ResultMessage) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(msg)
	case cmn.FormatXML:
		return marshalXML("result", "", msg)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported result format %q", format))
	}
}

func (r *Renderer) RenderStatus(format string, status store.Status) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(status)
	case cmn.FormatXML:
		return marshalXML("status", "", status)
	default:
		return nil, cmn.NewSerializationErr(fmt.Errorf("unsupported status format %q", format))
	}
}

// marshalXML encodes v under a rootTag element. When itemTag is non-empty
// and v is a slice, each element is encoded as one <itemTag> child of a
// single <rootTag> envelope; otherwise v itself becomes the rootTag element.
func marshalXML(rootTag, itemTag string, v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{Name: xml.Name{Local: rootTag}}
	if rv := reflect.ValueOf(v); itemTag != "" && rv.Kind() == reflect.Slice {
		fmt.Fprintf(&buf, "<%s>", rootTag)
		item := xml.StartElement{Name: xml.Name{Local: itemTag}}
		for i := 0; i < rv.Len(); i++ {
			if err := enc.EncodeElement(rv.Index(i).Interface(), item); err != nil {
				return nil, cmn.NewSerializationErr(err)
			}
		}
		fmt.Fprintf(&buf, "</%s>", rootTag)
		return buf.Bytes(), nil
	}
	if err := enc.EncodeElement(v, start); err != nil {
		return nil, cmn.NewSerializationErr(err)
	}
	return buf.Bytes(), nil
}

func renderM3U(stations []store.Station) []byte {
	var buf bytes.Buffer
	buf.WriteString("#EXTM3U\n")
	for _, s := range stations {
		fmt.Fprintf(&buf, "#EXTINF:-1,%s\n%s\n", s.Name, resolvedURL(s))
	}
	return buf.Bytes()
}

func renderPLS(stations []store.Station) []byte {
	var buf bytes.Buffer
	buf.WriteString("[playlist]\n")
	for i, s := range stations {
		n := i + 1
		fmt.Fprintf(&buf, "File%d=%s\nTitle%d=%s\nLength%d=-1\n", n, resolvedURL(s), n, s.Name, n)
	}
	fmt.Fprintf(&buf, "NumberOfEntries=%d\nVersion=2\n", len(stations))
	return buf.Bytes()
}

func renderXSPF(stations []store.Station) []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<playlist version="1" xmlns="http://xspf.org/ns/0/"><trackList>`)
	for _, s := range stations {
		fmt.Fprintf(&buf, "<track><location>%s</location><title>%s</title></track>",
			xmlEscape(resolvedURL(s)), xmlEscape(s.Name))
	}
	buf.WriteString("</trackList></playlist>")
	return buf.Bytes()
}

func renderStationsTTL(stations []store.Station) []byte {
	var buf bytes.Buffer
	buf.WriteString("@prefix rb: <urn:radiobrowser:> .\n")
	for _, s := range stations {
		fmt.Fprintf(&buf, "rb:%s rb:name %q ; rb:url %q .\n", s.StationUUID, s.Name, resolvedURL(s))
	}
	return buf.Bytes()
}

func resolvedURL(s store.Station) string {
	if s.URLResolved != "" {
		return s.URLResolved
	}
	return s.URL
}

func xmlEscape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
