// Package render turns a digest into a standalone HTML document. All
// article-derived text is escaped here, and only here, by the template
// engine.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"newsdigest/internal/digest"
)

const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>뉴스 대시보드</title>
</head>
<body style="font-family: Arial, sans-serif; background-color:#f7f7f7; margin:0; padding:20px;">
<h2 style="color:#2c3e50; border-bottom:2px solid #2980b9; padding-bottom:10px;">뉴스 대시보드</h2>
{{range .Sections}}<div style="background-color:#ffffff; padding:15px; margin-bottom:30px; border-radius:8px; box-shadow: 0 2px 6px rgba(0,0,0,0.1);">
<h3 style="color:#2980b9;">{{.Pair.Korean}} (영어: {{.Pair.English}})</h3>
<table style="width:100%; border-collapse: collapse;">
<tr>
<th style="{{headerStyle}}">번호</th>
<th style="{{headerStyle}}">제목</th>
<th style="{{headerStyle}}">요약</th>
<th style="{{headerStyle}}">배포일</th>
<th style="{{headerStyle}}">링크</th>
</tr>
{{range $i, $a := .Articles}}<tr>
<td style="{{cellStyle}}">{{inc $i}}</td>
<td style="{{cellStyle}}">{{$a.Title}}</td>
<td style="{{cellStyle}}">{{$a.Description}}</td>
<td style="{{cellStyle}}">{{$a.PublishedAt}}</td>
<td style="{{cellStyle}}"><a href="{{$a.URL}}" target="_blank" style="color:#2980b9; text-decoration:none;">링크</a></td>
</tr>
{{end}}</table>
</div>
{{end}}</body>
</html>
`

var tmpl = template.Must(template.New("digest").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"headerStyle": func() template.CSS {
		return "background-color:#2980b9; color:#fff; padding:10px; text-align:left; font-size:16px; border-bottom: 2px solid #1c5980;"
	},
	"cellStyle": func() template.CSS {
		return "border-bottom:1px solid #ddd; padding:10px; vertical-align:top;"
	},
}).Parse(documentTemplate))

// Render produces the full HTML document for a digest. Pure: same digest in,
// same bytes out. Empty sections still render their header and table head.
func Render(d digest.Digest) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
