package svc

import (
	"net"

	"github.com/pickaboo/radiobrowser-api-go/cmn"
	jsoniter "github.com/json-iterator/go"
)

// serverEntry is one peer the "/servers" endpoint lists, discovered via
// the mirror network's DNS round-robin entry using net's resolver instead
// of a hand-rolled DNS client.
type serverEntry struct {
	Name string `json:"name"`
	IP   string `json:"ip"`
}

// dnsMirrorHost is the hostname whose A/AAAA records enumerate every
// peer in the mirror network; overridable for tests.
var dnsMirrorHost = "all.api.radio-browser.info"

// LookupServerNames resolves dnsMirrorHost to its address set and
// reverse-resolves each to a hostname for DNS-based peer discovery.
func LookupServerNames() ([]serverEntry, error) {
	ips, err := net.LookupHost(dnsMirrorHost)
	if err != nil {
		return nil, err
	}
	out := make([]serverEntry, 0, len(ips))
	for _, ip := range ips {
		name := ip
		if names, err := net.LookupAddr(ip); err == nil && len(names) > 0 {
			name = names[0]
		}
		out = append(out, serverEntry{Name: name, IP: ip})
	}
	return out, nil
}

func renderServerNames(format string, entries []serverEntry) ([]byte, error) {
	switch format {
	case cmn.FormatJSON:
		return jsoniter.Marshal(entries)
	default:
		return nil, cmn.NewSerializationErr(errUnsupportedServersFormat(format))
	}
}

type unsupportedServersFormatErr struct{ format string }

func (e unsupportedServersFormatErr) Error() string {
	return "unsupported servers format: " + e.format
}

func errUnsupportedServersFormat(format string) error {
	return unsupportedServersFormatErr{format: format}
}
