package render

import "html/template"

var shellTemplate = template.Must(template.New("policy").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      line-height: 1.6;
      color: #333;
      max-width: 800px;
      margin: 0 auto;
      padding: 20px;
    }
    h1 {
      font-size: 28px;
      border-bottom: 1px solid #eee;
      padding-bottom: 10px;
      margin-top: 30px;
    }
    h2 {
      font-size: 22px;
      margin-top: 30px;
      border-bottom: 1px solid #eee;
      padding-bottom: 5px;
    }
    h3 {
      font-size: 18px;
      margin-top: 20px;
    }
    p {
      margin: 15px 0;
    }
    ul {
      margin: 15px 0;
      padding-left: 30px;
    }
    li {
      margin: 5px 0;
    }
    strong {
      font-weight: 600;
    }
    .footer {
      margin-top: 40px;
      padding-top: 20px;
      border-top: 1px solid #eee;
      font-size: 14px;
      color: #666;
      text-align: center;
    }
  </style>
</head>
<body>
<main class="policy" data-fingerprint="{{.Fingerprint}}">
{{.Body}}</main>
{{- if .Footer}}
<div class="footer">
  <p>{{.Footer}}</p>
</div>
{{- end}}
</body>
</html>
`))

type shellData struct {
	Title       string
	Fingerprint string
	Body        template.HTML
	Footer      string
}
