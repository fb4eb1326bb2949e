// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrpstat

import (
	"io"

	"github.com/google/safehtml/template"
)

const htmlReport = `
<table class='vrpstat ratios'>
<tr><th>{{.Names.A}} / {{.Names.B}}<th>mean<th>geomean<th>95% CI<th>n<th>skipped
{{range .Ratios -}}
<tr><td>{{label .Field}}<td>{{num .Mean}}<td>{{num .GeoMean}}<td>{{num .Lo}} … {{num .Hi}}<td>{{.Used}}<td>{{.Skipped}}
{{end -}}
</table>
<table class='vrpstat counts'>
<tr><th><th>{{.Names.A}}<th>{{.Names.B}}<th>{{.Names.A}} fewer<th>{{.Names.A}} more<th>equal
{{range .Counts -}}
<tr><td>{{label .Field}}<td>{{num .A}}<td>{{num .B}}<td>{{.Tally.Less}}<td>{{.Tally.Greater}}<td>{{.Tally.Equal}}
{{end -}}
</table>
<p class='selected'>Selected {{.Selected}} of {{.Instances}} instances.</p>
`

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"label": Label,
	"num":   formatNum,
}).Parse(htmlReport))

type htmlNames struct {
	A, B string
}

type htmlData struct {
	*Report
	Names htmlNames
}

// FormatHTML writes an HTML rendering of the summary of r to w.
func FormatHTML(w io.Writer, r *Report) error {
	return htmlTemplate.Execute(w, htmlData{
		Report: r,
		Names:  htmlNames{A: r.Names[0], B: r.Names[1]},
	})
}
