package report

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"store-locator/internal/models"
	"store-locator/internal/render"
)

const staticMapBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

// HTMLRenderer turns a rendered table into the per-batch HTML payload:
// stylesheet link, embedded static map, optimized-route button and the
// distance/duration table.
type HTMLRenderer struct {
	mapsKey string
	tpl     *template.Template
}

const batchTemplate = `<link rel="stylesheet" href="css/styles.css">
<img src="{{.MapURL}}">
<p>
{{- if .Table.RouteLink}}
<button>
<a href="{{.Table.RouteLink}}" target="_new">Click Here For Optimized Route Between Stores Map</a>
</button>
<p></p>
{{- end}}
<table>
<tr><th class="knockout"></th>
{{- range .Table.Header}}
<td class="columnHeader"><div class="storeID">Store# {{.SiteID}}</div><div class="storeAddr">{{.Address}}</div></td>
{{- end}}
</tr>
{{- range .Table.Rows}}
<tr><td class="rowHeader"><div class="storeID">Store# {{.SiteID}}</div><div class="storeAddr">{{.Address}}</div></td>
{{- range .Cells}}
<td class="data">Miles: {{.Distance}}<br>Hours: {{.Duration}}</td>
{{- end}}
</tr>
{{- end}}
</table>
`

// NewHTMLRenderer creates a renderer. The maps key is only embedded in the
// static map image URL.
func NewHTMLRenderer(mapsKey string) *HTMLRenderer {
	return &HTMLRenderer{
		mapsKey: mapsKey,
		tpl:     template.Must(template.New("batch").Parse(batchTemplate)),
	}
}

// RenderBatch produces the HTML body for one batch.
func (r *HTMLRenderer) RenderBatch(batch models.Batch, table render.Table) ([]byte, error) {
	data := struct {
		Table  render.Table
		MapURL template.URL
	}{
		Table:  table,
		MapURL: template.URL(r.staticMapURL(batch.Locations)),
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("report: render batch %q: %w", batch.Region, err)
	}
	return buf.Bytes(), nil
}

// staticMapURL builds the embedded map image URL with one labeled marker per
// location.
func (r *HTMLRenderer) staticMapURL(locations []models.Location) string {
	var b strings.Builder
	b.WriteString(staticMapBaseURL)
	b.WriteString("?size=800x800&zoom=6")

	for _, loc := range locations {
		marker := fmt.Sprintf("color:red|label:%s|%v,%v", loc.SiteID, loc.Latitude, loc.Longitude)
		b.WriteString("&markers=")
		b.WriteString(url.QueryEscape(marker))
	}

	b.WriteString("&key=")
	b.WriteString(url.QueryEscape(r.mapsKey))
	return b.String()
}
