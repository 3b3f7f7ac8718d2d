package web

import "html/template"

func parseTemplates() (*template.Template, error) {
	t := template.New("dashboard").Funcs(template.FuncMap{
		"fmtTokens": fmtTokens,
		"fmtCost":   fmtCost,
		"fmtNumber": fmtNumber,
		"sliceTime": sliceTime,
	})
	for _, src := range []string{
		tmplLayout, tmplOverview, tmplSessions, tmplSessionDetail, tmplLive,
		tmplTokens, tmplTools, tmplProjects, tmplProjectDetail, tmplTasks,
		tmplAgents, tmplAgentDetail, tmplTeams, tmplReplay, tmplPixelOffice,
	} {
		var err error
		t, err = t.Parse(src)
		if err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ── Base layout ──────────────────────────────────────────────────────────────

const tmplLayout = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}} · Claude Dashboard</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:'JetBrains Mono',monospace,sans-serif;background:#0d1117;color:#c9d1d9;font-size:13px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:12px;align-items:center;flex-wrap:wrap}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px;margin-right:8px}
nav a{color:#8b949e;padding:4px 8px;border-radius:4px}
nav a:hover{color:#c9d1d9;background:#21262d;text-decoration:none}
nav .updated{margin-left:auto;font-size:11px;color:#8b949e}
main{padding:16px}
h1{font-size:16px;font-weight:700;color:#f0f6fc;margin-bottom:12px}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:16px 0 8px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:120px}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
table{width:100%;border-collapse:collapse;font-size:12px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase;letter-spacing:.05em}
td{padding:5px 10px;border-bottom:1px solid #21262d;vertical-align:top}
tr:hover td{background:#161b22}
.tag{display:inline-block;padding:1px 6px;border-radius:4px;font-size:11px;background:#21262d;color:#8b949e;border:1px solid #30363d}
.mono{font-family:monospace;font-size:11px;color:#79c0ff}
.dim{color:#8b949e}
.ok{color:#56d364}
.warn{color:#f59e0b}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:hidden}
.section-hdr{padding:8px 12px;border-bottom:1px solid #30363d;font-size:11px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.05em;background:#0d1117}
pre{white-space:pre-wrap;word-break:break-all;font-family:monospace;font-size:11px;color:#c9d1d9}
.feed{max-height:70vh;overflow-y:auto}
.feed-line{padding:2px 12px;border-bottom:1px solid #0d1117;display:flex;gap:12px;font-size:11px}
.feed-time{color:#8b949e;min-width:70px;flex-shrink:0}
.feed-proj{color:#58a6ff;min-width:110px;flex-shrink:0}
.feed-content{flex:1;white-space:pre-wrap;word-break:break-all}
.msg{border-bottom:1px solid #21262d;padding:8px 12px}
.msg .role{font-size:11px;font-weight:600;text-transform:uppercase}
.msg .role.user{color:#56d364}
.msg .role.assistant{color:#58a6ff}
.msg .role.system{color:#8b949e}
.state-idle{color:#8b949e}
.state-reading{color:#58a6ff}
.state-typing{color:#56d364}
.state-waiting{color:#f59e0b}
.desk{display:inline-block;background:#161b22;border:1px solid #30363d;border-radius:6px;padding:10px;margin:4px;min-width:160px;vertical-align:top}
.pager{margin-top:12px;display:flex;gap:8px;font-size:12px}
.search{margin-bottom:12px}
.search input{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:4px 8px;font-size:12px;font-family:inherit;width:240px}
.stat-line{font-size:12px;margin:2px 0}
</style>
</head>
<body>
<nav>
<span class="brand">claude-dashboard</span>
<a href="/">Overview</a>
<a href="/sessions">Sessions</a>
<a href="/live">Live</a>
<a href="/tokens">Tokens</a>
<a href="/tools">Tools</a>
<a href="/projects">Projects</a>
<a href="/tasks">Tasks</a>
<a href="/agents">Agents</a>
<a href="/teams">Teams</a>
<a href="/pixel-office">Office</a>
<span class="updated">updated {{.UpdatedAt}}</span>
</nav>
<main>
<h1>{{.Title}}</h1>
{{end}}

{{define "foot"}}</main>
</body>
</html>{{end}}
`

// ── Pages ────────────────────────────────────────────────────────────────────

const tmplOverview = `
{{define "overview"}}{{template "head" .}}
{{with .Data}}
<div class="cards">
<div class="card"><div class="val">{{fmtNumber .Stats.TotalSessions}}</div><div class="lbl">sessions</div></div>
<div class="card"><div class="val">{{fmtNumber .Stats.TotalMessages}}</div><div class="lbl">messages</div></div>
<div class="card"><div class="val">{{fmtNumber .Stats.TotalToolCalls}}</div><div class="lbl">tool calls</div></div>
<div class="card"><div class="val">{{fmtCost .Stats.TotalCostUSD}}</div><div class="lbl">est. cost</div></div>
<div class="card"><div class="val">{{.Stats.ActiveDays}}</div><div class="lbl">active days</div></div>
<div class="card"><div class="val">{{.Stats.AvgMessagesPerSession}}</div><div class="lbl">msgs / session</div></div>
</div>

<h2>Model usage</h2>
<div class="section"><table>
<tr><th>Model</th><th>Input</th><th>Output</th><th>Cache read</th><th>Cache write</th><th>Cost</th></tr>
{{range .Stats.ModelUsage}}
<tr><td>{{.DisplayName}} <span class="dim mono">{{.ModelID}}</span></td>
<td>{{fmtTokens .InputTokens}}</td><td>{{fmtTokens .OutputTokens}}</td>
<td>{{fmtTokens .CacheReadInputTokens}}</td><td>{{fmtTokens .CacheCreationInputTokens}}</td>
<td>{{fmtCost .CostUSD}}</td></tr>
{{end}}
</table></div>

<h2>Daily activity</h2>
<div class="section"><table>
<tr><th>Date</th><th>Messages</th><th>Sessions</th><th>Tool calls</th></tr>
{{range .Stats.DailyActivity}}
<tr><td>{{.Date}}</td><td>{{fmtNumber .MessageCount}}</td><td>{{.SessionCount}}</td><td>{{fmtNumber .ToolCallCount}}</td></tr>
{{end}}
</table></div>

{{if .Stats.LongestSession.SessionID}}
<h2>Longest session</h2>
<div class="stat-line"><a href="/sessions/{{.Stats.LongestSession.SessionID}}" class="mono">{{.Stats.LongestSession.SessionID}}</a>
· {{.Stats.LongestSession.DurationHours}}h, {{fmtNumber .Stats.LongestSession.MessageCount}} messages</div>
{{end}}

<script>
const dailyChart = {{.DailyJSON}};
const modelChart = {{.ModelsJSON}};
</script>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplSessions = `
{{define "sessions"}}{{template "head" .}}
{{with .Data}}
<form class="search" method="get" action="/sessions">
<input type="text" name="q" value="{{.Query}}" placeholder="search project, session id...">
</form>
<div class="section"><table>
<tr><th>Session</th><th>Project</th><th>Started</th><th>Last activity</th><th>Msgs</th><th>Tools</th><th>Tokens</th><th>Models</th></tr>
{{range .Sessions}}
<tr>
<td><a href="/sessions/{{.SessionID}}" class="mono">{{.SessionID}}</a></td>
<td>{{.ProjectName}}</td>
<td class="dim">{{.FirstTimestamp}}</td>
<td class="dim">{{.LastTimestamp}}</td>
<td>{{.MessageCount}}</td>
<td>{{.ToolCallsCount}}</td>
<td>{{fmtTokens .TotalUsage.Total}}</td>
<td>{{range .ModelsUsed}}<span class="tag">{{.}}</span> {{end}}</td>
</tr>
{{end}}
</table></div>
<div class="pager">
<span class="dim">{{.Total}} sessions</span>
{{if gt .Page 1}}<a href="/sessions?q={{.Query}}&page={{.PrevPage}}">prev</a>{{end}}
<span>page {{.Page}} / {{.TotalPages}}</span>
{{if lt .Page .TotalPages}}<a href="/sessions?q={{.Query}}&page={{.NextPage}}">next</a>{{end}}
</div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplSessionDetail = `
{{define "session_detail"}}{{template "head" .}}
{{with .Data}}
<div class="cards">
<div class="card"><div class="val">{{.Info.MessageCount}}</div><div class="lbl">messages</div></div>
<div class="card"><div class="val">{{.Info.ToolCallsCount}}</div><div class="lbl">tool calls</div></div>
<div class="card"><div class="val">{{fmtTokens .Info.TotalUsage.Total}}</div><div class="lbl">tokens</div></div>
<div class="card"><div class="val">{{.Info.ProjectName}}</div><div class="lbl">project</div></div>
</div>
<div class="stat-line dim">branch: {{.Info.GitBranch}} · version: {{.Info.Version}} · {{.Info.FirstTimestamp}} → {{.Info.LastTimestamp}}</div>

<div class="section" id="messages">
{{range .Messages}}
<div class="msg">
<span class="role {{.Role}}">{{.Role}}</span>
<span class="dim">{{.Timestamp}}</span>
{{if .Model}}<span class="tag">{{.Model}}</span>{{end}}
{{range .ToolCalls}}<span class="tag warn">{{.Name}}</span>{{end}}
<pre>{{.ContentText}}</pre>
</div>
{{end}}
</div>

<script>
const es = new EventSource("/sessions/" + {{.Info.SessionID}} + "/stream");
es.onmessage = (e) => {
  const msg = JSON.parse(e.data);
  if (msg.error) { es.close(); return; }
  const box = document.getElementById("messages");
  const div = document.createElement("div");
  div.className = "msg";
  div.innerHTML = '<span class="role ' + msg.role + '">' + msg.role + '</span> <span class="dim">' +
    msg.timestamp + '</span>';
  const pre = document.createElement("pre");
  pre.textContent = msg.content_text || "";
  div.appendChild(pre);
  box.appendChild(div);
};
</script>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplLive = `
{{define "live"}}{{template "head" .}}
<div class="section">
<div class="section-hdr">live events</div>
<div class="feed" id="feed"></div>
</div>
<script>
const feed = document.getElementById("feed");
const es = new EventSource("/live/stream");
es.onmessage = (e) => {
  const ev = JSON.parse(e.data);
  const line = document.createElement("div");
  line.className = "feed-line";
  const tools = (ev.tool_calls || []).join(", ");
  line.innerHTML = '<span class="feed-time">' + (ev.timestamp || "").slice(11, 19) + '</span>' +
    '<span class="feed-proj">' + ev.project_name + '</span>';
  const content = document.createElement("span");
  content.className = "feed-content";
  content.textContent = "[" + ev.msg_type + "] " + (tools ? "(" + tools + ") " : "") + (ev.content_preview || "");
  line.appendChild(content);
  feed.prepend(line);
  while (feed.childNodes.length > 500) feed.removeChild(feed.lastChild);
};
</script>
{{template "foot" .}}{{end}}
`

const tmplTokens = `
{{define "tokens"}}{{template "head" .}}
{{with .Data}}
<div class="cards">
<div class="card"><div class="val">{{.Cache.EfficiencyPct}}%</div><div class="lbl">cache hit rate</div></div>
<div class="card"><div class="val">{{fmtTokens .Cache.CacheReadTokens}}</div><div class="lbl">cache read</div></div>
<div class="card"><div class="val">{{fmtTokens .Cache.CacheCreationTokens}}</div><div class="lbl">cache write</div></div>
<div class="card"><div class="val">{{fmtTokens .Cache.DirectInputTokens}}</div><div class="lbl">direct input</div></div>
</div>

<h2>Cost by model</h2>
<div class="section"><table>
<tr><th>Model</th><th>Input</th><th>Output</th><th>Cache read</th><th>Cache write</th><th>Cost</th></tr>
{{range .ModelCosts}}
<tr><td>{{.DisplayName}} <span class="dim mono">{{.ModelID}}</span></td>
<td>{{fmtTokens .InputTokens}}</td><td>{{fmtTokens .OutputTokens}}</td>
<td>{{fmtTokens .CacheReadTokens}}</td><td>{{fmtTokens .CacheCreationTokens}}</td>
<td>{{fmtCost .CostUSD}}</td></tr>
{{end}}
</table></div>

<h2>Daily tokens</h2>
<div class="section"><table>
<tr><th>Date</th><th>Input</th><th>Output</th><th>Cache read</th><th>Cache write</th></tr>
{{range .Daily}}
<tr><td>{{.Date}}</td><td>{{fmtTokens .Input}}</td><td>{{fmtTokens .Output}}</td>
<td>{{fmtTokens .CacheRead}}</td><td>{{fmtTokens .CacheCreation}}</td></tr>
{{end}}
</table></div>
<script>const dailyTokens = {{.DailyJSON}};</script>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplTools = `
{{define "tools"}}{{template "head" .}}
{{with .Data}}
<h2>Tool usage</h2>
<div class="section"><table>
<tr><th>Tool</th><th>Calls</th><th>Sessions</th><th>Avg / session</th></tr>
{{range .Usage}}
<tr><td>{{.Name}}</td><td>{{fmtNumber .CallCount}}</td><td>{{.SessionCount}}</td><td>{{.AvgPerSession}}</td></tr>
{{end}}
</table></div>

<h2>Recent tool-heavy sessions</h2>
<div class="section"><table>
<tr><th>Session</th><th>Project</th><th>Tool calls</th><th>Date</th></tr>
{{range .BySessions}}
<tr><td><a href="/sessions/{{.SessionID}}" class="mono">{{.SessionID}}</a></td>
<td>{{.ProjectName}}</td><td>{{.ToolCallsCount}}</td><td class="dim">{{.Date}}</td></tr>
{{end}}
</table></div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplProjects = `
{{define "projects"}}{{template "head" .}}
<div class="section"><table>
<tr><th>Project</th><th>Sessions</th><th>Messages</th><th>Tool calls</th><th>Tokens</th><th>Cost</th><th>Models</th><th>Last activity</th></tr>
{{range .Data}}
<tr>
<td><a href="/projects/{{.ProjectName}}">{{.ProjectName}}</a> <span class="dim">{{.ProjectPath}}</span></td>
<td>{{.SessionCount}}</td>
<td>{{fmtNumber .TotalMessages}}</td>
<td>{{fmtNumber .ToolCallsCount}}</td>
<td>{{fmtTokens .TotalUsage.Total}}</td>
<td>{{fmtCost .TotalCostUSD}}</td>
<td>{{range .ModelsUsed}}<span class="tag">{{.}}</span> {{end}}</td>
<td class="dim">{{.LastActivity}}</td>
</tr>
{{end}}
</table></div>
{{template "foot" .}}{{end}}
`

const tmplProjectDetail = `
{{define "project_detail"}}{{template "head" .}}
{{with .Data}}
<div class="section"><table>
<tr><th>Session</th><th>Started</th><th>Last activity</th><th>Msgs</th><th>Tools</th><th>Tokens</th></tr>
{{range .Sessions}}
<tr><td><a href="/sessions/{{.SessionID}}" class="mono">{{.SessionID}}</a></td>
<td class="dim">{{.FirstTimestamp}}</td><td class="dim">{{.LastTimestamp}}</td>
<td>{{.MessageCount}}</td><td>{{.ToolCallsCount}}</td><td>{{fmtTokens .TotalUsage.Total}}</td></tr>
{{end}}
</table></div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplTasks = `
{{define "tasks"}}{{template "head" .}}
{{range .Data}}
<div class="section">
<div class="section-hdr">{{.ListID}} <span class="dim">{{.LastModified}}</span></div>
<table>
<tr><th>ID</th><th>Subject</th><th>Status</th><th>Blocked by</th></tr>
{{range .Tasks}}
<tr><td class="mono">{{.ID}}</td><td>{{.Subject}}</td>
<td><span class="tag {{if eq .Status "completed"}}ok{{end}}">{{.Status}}</span></td>
<td>{{range .BlockedBy}}<span class="tag">{{.}}</span> {{end}}</td></tr>
{{end}}
</table>
</div>
{{else}}
<p class="dim">No task lists found.</p>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplAgents = `
{{define "agents"}}{{template "head" .}}
{{with .Data}}
<h2>Agent activity</h2>
<div class="section"><table>
<tr><th>Agent</th><th>Invocations</th><th>Input tokens</th><th>Output tokens</th><th>Top tools</th></tr>
{{range .Analytics}}
<tr><td><a href="/agents/{{.AgentName}}">{{.AgentName}}</a> <span class="dim">{{.Description}}</span></td>
<td>{{.InvocationCount}}</td>
<td>{{fmtTokens .TotalInputTokens}}</td>
<td>{{fmtTokens .TotalOutputTokens}}</td>
<td>{{range .ToolCounts}}<span class="tag">{{.Name}} ×{{.Count}}</span> {{end}}</td></tr>
{{end}}
</table></div>

<h2>Definitions</h2>
<div class="section"><table>
<tr><th>Name</th><th>Description</th><th>Model</th><th>Tools</th></tr>
{{range .Definitions}}
<tr><td>{{.Name}}</td><td class="dim">{{.Description}}</td><td>{{.Model}}</td>
<td>{{range .Tools}}<span class="tag">{{.}}</span> {{end}}</td></tr>
{{end}}
</table></div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplAgentDetail = `
{{define "agent_detail"}}{{template "head" .}}
{{with .Data}}
{{if .Stats}}
<div class="cards">
<div class="card"><div class="val">{{.Stats.InvocationCount}}</div><div class="lbl">invocations</div></div>
<div class="card"><div class="val">{{fmtTokens .Stats.TotalInputTokens}}</div><div class="lbl">input tokens</div></div>
<div class="card"><div class="val">{{fmtTokens .Stats.TotalOutputTokens}}</div><div class="lbl">output tokens</div></div>
</div>
{{end}}
{{if .Definition}}
<div class="stat-line dim">{{.Definition.Description}}{{if .Definition.Model}} · model: {{.Definition.Model}}{{end}}</div>
{{end}}

<h2>Projects</h2>
{{range $project, $count := .ProjectDist}}<span class="tag">{{$project}} ×{{$count}}</span> {{end}}

<h2>Invocations</h2>
<div class="section"><table>
<tr><th>Agent ID</th><th>Lead session</th><th>Project</th><th>Msgs</th><th>Tools</th><th>Last activity</th></tr>
{{range .Activities}}
<tr><td class="mono">{{.AgentID}}</td>
<td><a href="/sessions/{{.SessionID}}" class="mono">{{.SessionID}}</a></td>
<td>{{.ProjectName}}</td><td>{{.MessageCount}}</td>
<td>{{range .ToolsUsed}}<span class="tag">{{.}}</span> {{end}}</td>
<td class="dim">{{.LastTimestamp}}</td></tr>
{{end}}
</table></div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplTeams = `
{{define "teams"}}{{template "head" .}}
{{with .Data}}
<h2>Active teams</h2>
{{range .Teams}}
<div class="section">
<div class="section-hdr">{{.TeamName}}</div>
<table>
<tr><th>Member</th><th>Agent ID</th><th>Type</th></tr>
{{range .Members}}
<tr><td>{{.Name}}</td><td class="mono">{{.AgentID}}</td><td>{{.AgentType}}</td></tr>
{{end}}
</table>
</div>
{{else}}
<p class="dim">No active teams.</p>
{{end}}

<h2>Team sessions</h2>
<div class="section"><table>
<tr><th>Lead session</th><th>Project</th><th>Agents</th><th>Msgs</th><th>Last activity</th><th></th></tr>
{{range .Sessions}}
<tr><td class="mono">{{.SessionID}}</td><td>{{.ProjectName}}</td>
<td>{{.AgentCount}}</td><td>{{.MessageCount}}</td>
<td class="dim">{{.LastTimestamp}}</td>
<td><a href="/teams/replay/{{.SessionID}}">replay</a></td></tr>
{{end}}
</table></div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplReplay = `
{{define "replay"}}{{template "head" .}}
{{with .Data}}
<div class="section">
<div class="section-hdr">{{len .Events}} events</div>
{{range .Events}}
<div class="feed-line">
<span class="feed-time">{{sliceTime .Timestamp}}</span>
<span class="feed-proj mono">{{.AgentLabel}}</span>
<span class="feed-content">{{if eq .EventType "tool_use"}}<span class="tag warn">{{.ToolName}}</span> {{end}}[{{.EventType}}] {{.Content}}</span>
</div>
{{end}}
</div>
{{end}}
{{template "foot" .}}{{end}}
`

const tmplPixelOffice = `
{{define "pixel_office"}}{{template "head" .}}
{{with .Data}}
<div id="office">
{{range .Agents}}
<div class="desk">
<div class="mono">{{.SessionID}}</div>
<div class="state-{{.State}}">{{.State}}{{if .ToolName}} · {{.ToolName}}{{end}}</div>
<div class="dim">{{.ToolStatus}}</div>
<div class="dim">{{.ProjectName}}{{if .TeamName}} · team {{.TeamName}}{{end}}</div>
</div>
{{end}}
</div>
<script>
let agents = {{.AgentsJSON}};
const es = new EventSource("/pixel-office/stream");
es.onmessage = (e) => {
  agents = JSON.parse(e.data);
  const office = document.getElementById("office");
  office.innerHTML = "";
  for (const a of agents) {
    const desk = document.createElement("div");
    desk.className = "desk";
    desk.innerHTML = '<div class="mono"></div><div class="state-' + a.state + '">' + a.state +
      (a.tool_name ? " · " + a.tool_name : "") + '</div><div class="dim"></div>';
    desk.children[0].textContent = a.session_id;
    desk.children[2].textContent = a.tool_status + " " + a.project_name +
      (a.team_name ? " · team " + a.team_name : "");
    office.appendChild(desk);
  }
};
</script>
{{end}}
{{template "foot" .}}{{end}}
`
