package svc

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/karrick/godirwalk"
	"github.com/pickaboo/radiobrowser-api-go/store"
)

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html><head><title>radiobrowser API</title></head>
<body>
<h1>radiobrowser API</h1>
<p>Server: {{.APIServer}}</p>
<p>Version: {{.ServerVersion}}</p>
</body></html>
`))

var statsTemplate = template.Must(template.New("stats").Parse(`<!DOCTYPE html>
<html><head><title>radiobrowser stats</title></head>
<body>
<h1>Stats</h1>
<ul>
<li>Stations working: {{.StationsWorking}}</li>
<li>Stations broken: {{.StationsBroken}}</li>
<li>Tags: {{.Tags}}</li>
<li>Clicks last hour: {{.ClicksLastHour}}</li>
<li>Clicks last day: {{.ClicksLastDay}}</li>
<li>Languages: {{.Languages}}</li>
<li>Countries: {{.Countries}}</li>
</ul>
</body></html>
`))

// renderDocs fills the docs template with {API_SERVER, SERVER_VERSION}
// for the len=2 root route.
func renderDocs(serverURL string) ([]byte, error) {
	var buf bytes.Buffer
	err := docsTemplate.Execute(&buf, struct {
		APIServer     string
		ServerVersion string
	}{APIServer: serverURL, ServerVersion: "1.0.0"})
	return buf.Bytes(), err
}

func renderStatsHTML(status store.Status) ([]byte, error) {
	var buf bytes.Buffer
	err := statsTemplate.Execute(&buf, status)
	return buf.Bytes(), err
}

// ValidateStaticAssets walks staticDir and confirms every required asset
// (favicon.ico, robots.txt, main.css) is present, returning an error that
// names a missing one. The daemon does not call it; a missing asset is
// answered with 404 when requested. Uses karrick/godirwalk for the walk
// itself instead of filepath.Walk.
func ValidateStaticAssets(staticDir string) error {
	required := map[string]bool{
		"favicon.ico": false,
		"robots.txt":  false,
		"main.css":    false,
	}
	err := godirwalk.Walk(staticDir, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if !de.IsDir() {
				if _, ok := required[de.Name()]; ok {
					required[de.Name()] = true
				}
			}
			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return err
	}
	for name, found := range required {
		if !found {
			return fmt.Errorf("required static asset %q missing from %s", name, staticDir)
		}
	}
	return nil
}
