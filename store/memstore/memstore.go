// Package memstore is an in-memory store.Store fake used by package tests
// that need a DataStore without a real database behind it.
package memstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pickaboo/radiobrowser-api-go/store"
)

// MemStore is a small, mutex-guarded, slice-backed store.Store.
type MemStore struct {
	mu       sync.Mutex
	stations []store.Station
	checks   []store.StationCheck
	clicks   []store.StationClick
	changes  []store.StationHistoryCurrent
}

// New returns an empty MemStore.
func New() *MemStore {
	return &MemStore{}
}

// Seed appends stations, for test setup.
func (m *MemStore) Seed(stations ...store.Station) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stations = append(m.stations, stations...)
}

func (m *MemStore) StationCountWorking() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.stations {
		if s.LastCheckOK {
			n++
		}
	}
	return n, nil
}

func (m *MemStore) StationCountBroken() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.stations {
		if !s.LastCheckOK {
			n++
		}
	}
	return n, nil
}

func (m *MemStore) TagCount() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	for _, s := range m.stations {
		for _, t := range strings.Split(s.Tags, ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				seen[t] = true
			}
		}
	}
	return len(seen), nil
}

func (m *MemStore) ClickCountLastHour() (int, error) { return m.clickCountSince(time.Hour) }
func (m *MemStore) ClickCountLastDay() (int, error)  { return m.clickCountSince(24 * time.Hour) }

func (m *MemStore) clickCountSince(d time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-d)
	n := 0
	for _, c := range m.clicks {
		if c.ClickTime.After(cutoff) {
			n++
		}
	}
	return n, nil
}

func (m *MemStore) LanguageCount() (int, error) { return m.distinctCount(func(s store.Station) string { return s.Language }) }
func (m *MemStore) CountryCount() (int, error)  { return m.distinctCount(func(s store.Station) string { return s.Country }) }

func (m *MemStore) distinctCount(key func(store.Station) string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	for _, s := range m.stations {
		if v := key(s); v != "" {
			seen[v] = true
		}
	}
	return len(seen), nil
}

func (m *MemStore) Get1N(table string, filter *string, order string, reverse, hideBroken bool) ([]store.ExtraInfo, error) {
	return m.GetExtra(table, "name", filter, order, reverse, hideBroken)
}

func (m *MemStore) GetExtra(table, nameColumn string, filter *string, order string, reverse, hideBroken bool) ([]store.ExtraInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[string]int{}
	for _, s := range m.stations {
		if hideBroken && !s.LastCheckOK {
			continue
		}
		var vals []string
		switch table {
		case "tags":
			vals = strings.Split(s.Tags, ",")
		case "languages":
			vals = strings.Split(s.Language, ",")
		case "countries":
			vals = []string{s.Country}
		case "countrycodes":
			vals = []string{s.CountryCode}
		case "codecs":
			vals = []string{s.Codec}
		}
		for _, v := range vals {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if filter != nil && !strings.EqualFold(v, *filter) {
				continue
			}
			counts[v]++
		}
	}
	out := make([]store.ExtraInfo, 0, len(counts))
	for name, n := range counts {
		out = append(out, store.ExtraInfo{Name: name, Value: name, StationCount: n})
	}
	sortExtraInfo(out, order, reverse)
	return out, nil
}

func sortExtraInfo(out []store.ExtraInfo, order string, reverse bool) {
	less := func(i, j int) bool {
		if order == "stationcount" {
			return out[i].StationCount < out[j].StationCount
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	}
	if reverse {
		sort.SliceStable(out, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(out, less)
	}
}

func (m *MemStore) GetStates(country, filter *string, order string, reverse, hideBroken bool) ([]store.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := map[string]*store.State{}
	for _, s := range m.stations {
		if hideBroken && !s.LastCheckOK {
			continue
		}
		if s.State == "" {
			continue
		}
		if country != nil && !strings.EqualFold(s.Country, *country) {
			continue
		}
		if filter != nil && !strings.EqualFold(s.State, *filter) {
			continue
		}
		key := s.Country + "\x00" + s.State
		st, ok := counts[key]
		if !ok {
			st = &store.State{Name: s.State, Country: s.Country}
			counts[key] = st
		}
		st.StationCount++
	}
	out := make([]store.State, 0, len(counts))
	for _, st := range counts {
		out = append(out, *st)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if reverse {
			return strings.ToLower(out[i].Name) > strings.ToLower(out[j].Name)
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	_ = order
	return out, nil
}

func (m *MemStore) GetChanges(stationUUID *string, lastChangeUUID string) ([]store.StationHistoryCurrent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.StationHistoryCurrent, 0)
	for _, c := range m.changes {
		if stationUUID != nil && c.StationUUID != *stationUUID {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MemStore) GetChecks(stationUUID *string, lastCheckUUID string, seconds uint32, strict bool) ([]store.StationCheck, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.StationCheck, 0)
	cutoff := time.Time{}
	if seconds > 0 {
		cutoff = time.Now().Add(-time.Duration(seconds) * time.Second)
	}
	for _, c := range m.checks {
		if stationUUID != nil && c.StationUUID != *stationUUID {
			continue
		}
		if seconds > 0 && c.CheckTime.Before(cutoff) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MemStore) GetClicks(stationUUID *string, lastClickUUID string, seconds uint32) ([]store.StationClick, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.StationClick, 0)
	cutoff := time.Time{}
	if seconds > 0 {
		cutoff = time.Now().Add(-time.Duration(seconds) * time.Second)
	}
	for _, c := range m.clicks {
		if stationUUID != nil && c.StationUUID != *stationUUID {
			continue
		}
		if seconds > 0 && c.ClickTime.Before(cutoff) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *MemStore) GetStationsByAll(order string, reverse, hideBroken bool, offset, limit uint32) ([]store.Station, error) {
	m.mu.Lock()
	all := make([]store.Station, len(m.stations))
	copy(all, m.stations)
	m.mu.Unlock()
	return paginate(filterBroken(all, hideBroken), order, reverse, offset, limit), nil
}

func (m *MemStore) GetStationsByColumn(column, value string, exact bool, order string, reverse, hideBroken bool, offset, limit uint32) ([]store.Station, error) {
	return m.GetStationsByColumnMultiple(column, &value, exact, order, reverse, hideBroken, offset, limit)
}

func (m *MemStore) GetStationsByColumnMultiple(column string, value *string, exact bool, order string, reverse, hideBroken bool, offset, limit uint32) ([]store.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Station, 0)
	for _, s := range m.stations {
		if hideBroken && !s.LastCheckOK {
			continue
		}
		if value != nil && !columnMatches(s, column, *value, exact) {
			continue
		}
		out = append(out, s)
	}
	return paginate(out, order, reverse, offset, limit), nil
}

func columnMatches(s store.Station, column, value string, exact bool) bool {
	var field string
	switch column {
	case "name":
		field = s.Name
	case "country":
		field = s.Country
	case "countrycode":
		field = s.CountryCode
	case "state":
		field = s.State
	case "language":
		field = s.Language
	case "codec":
		field = s.Codec
	case "tag":
		field = s.Tags
	case "url":
		field = s.URL
	default:
		return false
	}
	if exact {
		return strings.EqualFold(field, value)
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(value))
}

func (m *MemStore) GetStationsAdvanced(p store.AdvancedSearch) ([]store.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Station, 0)
	for _, s := range m.stations {
		if p.HideBroken && !s.LastCheckOK {
			continue
		}
		if p.Name != "" && !matches(s.Name, p.Name, p.NameExact) {
			continue
		}
		if p.Country != "" && !matches(s.Country, p.Country, p.CountryExact) {
			continue
		}
		if p.CountryCode != "" && !strings.EqualFold(s.CountryCode, p.CountryCode) {
			continue
		}
		if p.State != "" && !matches(s.State, p.State, p.StateExact) {
			continue
		}
		if p.Language != "" && !matches(s.Language, p.Language, p.LanguageExact) {
			continue
		}
		if p.Tag != "" && !matches(s.Tags, p.Tag, p.TagExact) {
			continue
		}
		if len(p.TagList) > 0 && !hasAllTags(s.Tags, p.TagList) {
			continue
		}
		if p.Codec != "" && !strings.EqualFold(s.Codec, p.Codec) {
			continue
		}
		if p.BitrateMin > 0 && s.Bitrate < p.BitrateMin {
			continue
		}
		if p.BitrateMax > 0 && s.Bitrate > p.BitrateMax {
			continue
		}
		out = append(out, s)
	}
	return paginate(out, p.Order, p.Reverse, p.Offset, p.Limit), nil
}

func matches(field, value string, exact bool) bool {
	if exact {
		return strings.EqualFold(field, value)
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(value))
}

func hasAllTags(tags string, want []string) bool {
	have := map[string]bool{}
	for _, t := range strings.Split(tags, ",") {
		have[strings.ToLower(strings.TrimSpace(t))] = true
	}
	for _, w := range want {
		if !have[strings.ToLower(strings.TrimSpace(w))] {
			return false
		}
	}
	return true
}

func (m *MemStore) GetStationsTopVote(limit uint32) ([]store.Station, error) {
	return m.topBy(limit, func(s store.Station) int64 { return int64(s.Votes) })
}

func (m *MemStore) GetStationsTopClick(limit uint32) ([]store.Station, error) {
	return m.topBy(limit, func(s store.Station) int64 { return int64(s.ClickCount) })
}

func (m *MemStore) GetStationsLastClick(limit uint32) ([]store.Station, error) {
	return m.topBy(limit, func(s store.Station) int64 { return s.ClickTimestamp.Unix() })
}

func (m *MemStore) GetStationsLastChange(limit uint32) ([]store.Station, error) {
	m.mu.Lock()
	all := make([]store.Station, len(m.stations))
	copy(all, m.stations)
	m.mu.Unlock()
	sort.SliceStable(all, func(i, j int) bool { return all[i].LastCheckTime.After(all[j].LastCheckTime) })
	return capSlice(all, limit), nil
}

func (m *MemStore) GetStationsBroken(limit uint32) ([]store.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Station, 0)
	for _, s := range m.stations {
		if !s.LastCheckOK {
			out = append(out, s)
		}
	}
	return capSlice(out, limit), nil
}

func (m *MemStore) GetStationsImprovable(limit uint32) ([]store.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Station, 0)
	for _, s := range m.stations {
		if s.Homepage == "" || s.Favicon == "" || s.Tags == "" || s.Country == "" {
			out = append(out, s)
		}
	}
	return capSlice(out, limit), nil
}

func (m *MemStore) topBy(limit uint32, key func(store.Station) int64) ([]store.Station, error) {
	m.mu.Lock()
	all := make([]store.Station, len(m.stations))
	copy(all, m.stations)
	m.mu.Unlock()
	sort.SliceStable(all, func(i, j int) bool { return key(all[i]) > key(all[j]) })
	return capSlice(all, limit), nil
}

func (m *MemStore) GetStationByUUID(uuid string) ([]store.Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]store.Station, 0, 1)
	for _, s := range m.stations {
		if s.StationUUID == uuid {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemStore) VoteForStation(ip string, station *store.Station) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.stations {
		if m.stations[i].StationUUID == station.StationUUID {
			m.stations[i].Votes++
			return "voted for station successfully", nil
		}
	}
	return "", store.ErrNotFound
}

func (m *MemStore) IncreaseClicks(ip string, station *store.Station, validTimeout time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.stations {
		if m.stations[i].StationUUID == station.StationUUID {
			m.stations[i].ClickCount++
			m.stations[i].ClickTimestamp = time.Now()
			m.clicks = append(m.clicks, store.StationClick{
				StationUUID: station.StationUUID,
				IP:          ip,
				ClickTime:   m.stations[i].ClickTimestamp,
			})
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *MemStore) AddStationOpt(p store.AddStationParams) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.Name == "" || p.URL == "" {
		return "", store.ErrInvalidStation
	}
	m.stations = append(m.stations, store.Station{
		Name:        p.Name,
		URL:         p.URL,
		Homepage:    p.Homepage,
		Favicon:     p.Favicon,
		Country:     p.Country,
		CountryCode: p.CountryCode,
		State:       p.State,
		Language:    p.Language,
		Tags:        p.Tags,
	})
	return "added station successfully", nil
}

func filterBroken(stations []store.Station, hideBroken bool) []store.Station {
	if !hideBroken {
		return stations
	}
	out := make([]store.Station, 0, len(stations))
	for _, s := range stations {
		if s.LastCheckOK {
			out = append(out, s)
		}
	}
	return out
}

func paginate(stations []store.Station, order string, reverse bool, offset, limit uint32) []store.Station {
	sortStations(stations, order, reverse)
	start := int(offset)
	if start > len(stations) {
		start = len(stations)
	}
	stations = stations[start:]
	return capSlice(stations, limit)
}

func capSlice(stations []store.Station, limit uint32) []store.Station {
	if limit > 0 && uint32(len(stations)) > limit {
		return stations[:limit]
	}
	return stations
}

func sortStations(stations []store.Station, order string, reverse bool) {
	less := func(i, j int) bool {
		switch order {
		case "votes":
			return stations[i].Votes < stations[j].Votes
		case "clickcount":
			return stations[i].ClickCount < stations[j].ClickCount
		case "bitrate":
			return stations[i].Bitrate < stations[j].Bitrate
		default:
			return strings.ToLower(stations[i].Name) < strings.ToLower(stations[j].Name)
		}
	}
	if reverse {
		sort.SliceStable(stations, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(stations, less)
	}
}
