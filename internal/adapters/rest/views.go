package rest

import (
	"html/template"
)

// layoutTemplate - оболочка с заголовком, внутри которой живет экран списка
const layoutTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
{{if .View.State.Loading}}<meta http-equiv="refresh" content="1">{{end}}
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:sans-serif;background:#f9fafb}
header{padding:12px 16px;background:#fff;border-bottom:1px solid #e5e7eb;font-weight:600}
main{padding:8px 16px}
.card{margin-bottom:24px;border-radius:12px;overflow:hidden;background:#fff;box-shadow:0 4px 12px rgba(0,0,0,.1)}
.card img{width:100%;height:160px;object-fit:cover}
.body{padding:8px 16px}
.row{display:flex;justify-content:space-between;margin-top:8px;font-size:14px}
.tag{display:inline-block;background:#f3f4f6;padding:4px 8px;border-radius:999px;font-size:12px;margin:8px 4px 0 0}
.actions{display:grid;grid-template-columns:1fr 1fr;gap:8px;margin-top:16px}
.actions span{border:1px solid #9333ea;border-radius:12px;padding:8px;text-align:center;color:#9333ea}
.actions span.primary{background:#9333ea;color:#fff}
.pages{display:flex;justify-content:center;margin-top:16px}
.pages button{border:0;padding:4px 12px;border-radius:999px;margin:0 4px;background:#e5e7eb}
.pages button.current{background:#9333ea;color:#fff}
.pages button.nav{background:#d1d5db}
.spinner{margin-top:32px;text-align:center}
</style>
</head>
<body>
<header>{{.Title}}</header>
<main>{{template "screen" .}}</main>
</body>
</html>
{{define "screen"}}
{{if .View.State.Loading}}
<div class="spinner">Loading…</div>
{{else}}
{{range .View.Cards}}
<div class="card">
  <img src="{{.ImageURL}}" alt="">
  <div class="body">
    <div><strong>{{.RoomName}}</strong></div>
    <div style="color:#6b7280;font-size:14px">{{.Location}}</div>
    <div class="row"><span>{{.Rent}}</span><span>{{.Floor}}</span><span>{{.Availability}}</span></div>
    <div>{{range .NearbyTags}}<span class="tag">➕ {{.}}</span>{{end}}{{if gt .NearbyOverflow 0}}<span class="tag">+{{.NearbyOverflow}}</span>{{end}}</div>
    <div class="actions">{{range $i, $a := .Actions}}<span{{if eq $i 1}} class="primary"{{end}}>{{$a}}</span>{{end}}</div>
  </div>
</div>
{{end}}
{{with .View.Pagination}}
<div class="pages">
{{if .ShowPrevious}}<form method="post" action="/properties/page/{{.Previous}}"><button class="nav">«</button></form>{{end}}
{{range .Pages}}<form method="post" action="/properties/page/{{.}}"><button{{if eq . $.View.Pagination.Current}} class="current"{{end}}>{{.}}</button></form>{{end}}
{{if .ShowNext}}<form method="post" action="/properties/page/{{.Next}}"><button class="nav">»</button></form>{{end}}
</div>
{{end}}
{{end}}
{{end}}`

var screenPageTemplate = template.Must(template.New("layout").Parse(layoutTemplate))
