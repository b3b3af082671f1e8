package handler

import "html/template"

const panelTemplate = `{{define "panel"}}<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Task panel</title>
<style>
.block{border-left:4px solid #888;margin:.5em 0;padding:.3em .6em}
.block.success{border-color:#2a2}.block.warning{border-color:#d90}.block.error{border-color:#c22}.block.info{border-color:#29c}
.block dt{font-weight:bold;float:left;clear:left;width:8em}.block pre{white-space:pre-wrap}
</style>
</head>
<body>
<div class="panel">
{{if .Warning}}{{template "blocks" .Warning}}{{end}}
<button id="start" {{if not .Enabled}}disabled{{end}} onclick="run('start','log')">{{.StartLabel}}</button>
<button id="check" {{if not .Enabled}}disabled{{end}} onclick="run('check','status')">{{.CheckLabel}}</button>
<div id="log"></div>
<div id="status"></div>
</div>
<script>
async function run(action, region) {
  const el = document.getElementById(region);
  try {
    const res = await fetch('actions/' + action, {method: 'POST', credentials: 'include', cache: 'no-store'});
    el.innerHTML = await res.text();
  } catch (e) {
    el.innerHTML = '<div class="block error"><strong>Network error</strong><pre></pre></div>';
    el.querySelector('pre').textContent = String(e);
  }
}
</script>
</body>
</html>{{end}}`

const blocksTemplate = `{{define "blocks"}}{{range .}}<div class="block {{.Level}}">
<strong>{{.Title}}</strong>
{{if .Fields}}<dl>{{range .Fields}}<dt>{{.Label}}</dt><dd>{{.Value}}</dd>{{end}}</dl>{{end}}
{{if .Text}}<pre>{{.Text}}</pre>{{end}}
</div>
{{end}}{{end}}`

func templates() *template.Template {
	t := template.Must(template.New("root").Parse(blocksTemplate))
	return template.Must(t.Parse(panelTemplate))
}
