package web

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Claude 年度总结 {{.View.Year}}</title>
<style>
{{.FontImport}}
:root{--bg:{{css .Theme.Background}};--surface:{{css .Theme.Surface}};--hover:{{css .Theme.SurfaceHover}};--border:{{css .Theme.Border}};--dim:{{css .Theme.TextDim}};--muted:{{css .Theme.TextMuted}};--text:{{css .Theme.TextPrimary}};--accent:{{css .Theme.Accent}};--accent2:{{css .Theme.AccentBright}}}
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:var(--bg);color:var(--text);font-size:13px;line-height:1.5}
a{color:var(--accent);text-decoration:none}
a:hover{text-decoration:underline}
nav{background:var(--surface);border-bottom:1px solid var(--border);padding:8px 16px;display:flex;gap:16px;align-items:center;flex-wrap:wrap}
nav .brand{font-weight:700;font-size:15px;margin-right:8px}
.sel{display:flex;gap:4px;margin-left:auto}
.sel a{font-size:11px;padding:2px 8px;border:1px solid var(--border);border-radius:4px;color:var(--muted)}
.sel a.active{background:var(--accent);border-color:var(--accent);color:var(--bg)}
main{padding:24px;max-width:1080px;margin:0 auto}
h1{font-size:20px;font-weight:700;margin-bottom:4px}
h2{font-size:12px;font-weight:600;color:var(--muted);letter-spacing:.06em;margin:0 0 10px}
.sub{color:var(--muted);font-size:11px;margin-bottom:16px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:var(--surface);border:1px solid var(--border);border-radius:6px;padding:12px 16px;min-width:160px;flex:1}
.card .val{font-size:22px;font-weight:700;color:var(--accent2)}
.card .lbl{font-size:11px;color:var(--muted);margin-top:2px}
.card .note{font-size:11px;color:var(--dim);overflow:hidden;text-overflow:ellipsis;white-space:nowrap;max-width:260px}
.section{background:var(--surface);border:1px solid var(--border);border-radius:6px;margin-bottom:16px;padding:12px 16px}
.heat{display:flex;gap:3px;overflow-x:auto}
.heat .wk{display:flex;flex-direction:column;gap:3px}
.heat .mo{font-size:9px;color:var(--dim);height:12px;white-space:nowrap}
.heat .d{width:11px;height:11px;border-radius:2px}
.heat .pad{visibility:hidden}
.legend{display:flex;gap:3px;align-items:center;font-size:10px;color:var(--dim);margin-top:8px;justify-content:flex-end}
.legend .d{width:11px;height:11px;border-radius:2px}
.hours{display:flex;align-items:flex-end;gap:3px;height:140px}
.hours .col{flex:1;display:flex;flex-direction:column;justify-content:flex-end;height:100%}
.hours .bar{background:var(--accent);border-radius:2px 2px 0 0;min-height:1px}
.hours .bar.peak{background:var(--accent2)}
.hours .lbl{font-size:9px;color:var(--dim);text-align:center;margin-top:2px}
.row{display:flex;align-items:center;gap:10px;margin:6px 0}
.row .name{min-width:160px;max-width:240px;overflow:hidden;text-overflow:ellipsis;white-space:nowrap}
.row .track{flex:1;background:var(--hover);border-radius:3px;height:10px}
.row .fill{height:10px;border-radius:3px;display:block}
.row .n{min-width:48px;text-align:right;color:var(--muted)}
.dim{color:var(--dim)}
.grid2{display:grid;grid-template-columns:1fr 1fr;gap:16px}
@media (max-width:720px){.grid2{grid-template-columns:1fr}}
</style>
</head>
<body>
{{if not .Export}}
<nav>
  <span class="brand">chatwrap</span>
  <div class="sel">
    {{range .Themes}}<a href="?theme={{.}}"{{if eq . $.Theme.Name}} class="active"{{end}}>{{.}}</a>{{end}}
  </div>
  <div class="sel">
    <a href="/api/export?format=png&theme={{.Theme.Name}}">导出 PNG</a>
    <a href="/api/export?format=html&theme={{.Theme.Name}}">导出 HTML</a>
  </div>
</nav>
{{end}}
<main>
{{template "content" .}}
</main>
</body>
</html>
{{end}}
`

// ── Dashboard ─────────────────────────────────────────────────────────────────

const tmplDashboard = `
{{define "content"}}
<h1>Claude 年度总结 · {{.View.Year}}</h1>
<div class="sub">生成于 {{stamp .View.GeneratedAt}} · {{count .View.Conversations}} 次对话</div>

<div class="cards">
  <div class="card"><div class="val">{{hours .View.Summary.TotalHours}} 小时</div><div class="lbl">总对话时长</div></div>
  <div class="card"><div class="val">{{hours .View.Summary.AverageHours}} 小时</div><div class="lbl">平均每次对话</div>
    {{with .View.Summary.AverageTurns}}<div class="note">平均 {{hours .}} 轮</div>{{end}}</div>
  <div class="card"><div class="val">{{hours .View.Summary.LongestChatHours}} 小时</div><div class="lbl">最长的一次对话</div>
    <div class="note" title="{{.View.Summary.LongestChatName}}">{{.View.Summary.LongestChatName}}</div></div>
  <div class="card"><div class="val">{{num .View.Tokens.TotalTokens}}</div><div class="lbl">Tokens</div>
    <div class="note">输入 {{num .View.Tokens.InputTokens}} · 输出 {{num .View.Tokens.OutputTokens}}</div></div>
</div>

<div class="section">
  <h2>对话日历</h2>
  <div class="heat">
  {{range .Weeks}}
    <div class="wk">
      <div class="mo">{{monthLabel .}}</div>
      {{range .}}<div class="d{{if not .InYear}} pad{{end}}" style="background:{{heat $.Theme .Level}}" title="{{date .Date}}"></div>{{end}}
    </div>
  {{end}}
  </div>
  <div class="legend">少{{range $i, $c := .Theme.Heatmap}}<span class="d" style="background:{{heat $.Theme $i}}"></span>{{end}}多</div>
</div>

<div class="section">
  <h2>一天中的节奏</h2>
  <div class="hours">
  {{range .View.Hourly}}
    <div class="col" title="{{.Hour}} · {{.Count}}">
      <div class="bar{{if eq .Hour $.View.MostActive.Label}} peak{{end}}" style="height:{{ratio .Count $.PeakHour}}"></div>
      <div class="lbl">{{slice .Hour 0 2}}</div>
    </div>
  {{end}}
  </div>
  <p class="dim" style="margin-top:8px">最活跃的时刻是 {{.View.MostActive.Label}}，{{.View.MostActive.Phrase}}</p>
</div>

<div class="grid2">
  <div class="section">
    <h2>四季</h2>
    {{range $i, $s := .View.Seasonal}}
    <div class="row">
      <span class="name">{{$s.Name}}</span>
      <span class="track"><span class="fill" style="width:{{ratio $s.Value $.PeakSeason}};background:{{seasonColor $.Theme $i}}"></span></span>
      <span class="n">{{$s.Value}}</span>
    </div>
    {{end}}
    {{if .View.RichestSeason.Name}}<p class="dim">最充实的季节：{{.View.RichestSeason.Name}}</p>{{end}}
  </div>

  <div class="section">
    <h2>话题</h2>
    {{range .View.TopTopics}}
    <div class="row">
      <span class="name" title="{{.Name}}">{{.Name}}</span>
      <span class="track"><span class="fill" style="width:{{width .WidthPercent}};background:var(--accent)"></span></span>
      <span class="n">{{.Value}}</span>
    </div>
    {{else}}
    <p class="dim">暂无话题</p>
    {{end}}
  </div>
</div>
{{end}}
`
