package page

const pageTemplate = `{{define "style"}}<style>
    :root {
      --bg: #f6f8fa; --fg: #1f2328; --muted: #57606a; --card: #ffffff;
      --border: #d0d7de; --accent: #1f6feb; --peak: #bf8700; --track: #eaeef2;
    }
    .theme-dark {
      --bg: #0d1117; --fg: #e6edf3; --muted: #8b949e; --card: #161b22;
      --border: #30363d; --accent: #58a6ff; --peak: #e3b341; --track: #21262d;
    }
    * { box-sizing: border-box; }
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      margin: 0; padding: 2rem; background: var(--bg); color: var(--fg);
    }
    header h1 { margin: 0 0 .25rem; }
    header .meta, .hint, .count { color: var(--muted); font-size: .875rem; }
    header .links a { margin-right: 1rem; color: var(--accent); }
    .grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(200px, 1fr)); gap: 1rem; margin: 2rem 0; }
    .card {
      background: var(--card); border: 1px solid var(--border); border-radius: 8px;
      padding: 1rem; text-align: left; color: inherit; font: inherit; cursor: pointer;
    }
    .card[aria-pressed="true"] { border-color: var(--accent); }
    .card .value { font-size: 1.75rem; font-weight: 600; display: block; margin: .25rem 0; }
    .panel { background: var(--card); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; margin-bottom: 2rem; }
    .bar-row { display: grid; grid-template-columns: 4rem 1fr 5rem; gap: .5rem; align-items: center; margin: .25rem 0; }
    .track { background: var(--track); border-radius: 4px; height: 1rem; }
    .bar { background: var(--accent); border-radius: 4px; height: 1rem; }
    .bar.peak { background: var(--peak); }
    .error-card { max-width: 40rem; margin: 4rem auto; background: var(--card); border: 1px solid #cf222e; border-radius: 8px; padding: 1.5rem; }
    section.list { margin-top: 2rem; }
    .filters { display: flex; flex-wrap: wrap; gap: .5rem; margin: .5rem 0 1rem; }
    ol.records li { margin: .5rem 0; }
    @media print { .filters, .panel { display: none; } body { padding: 0; } }
  </style>{{end}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{with .Profile.Name}}{{.}}{{else}}Portfolio{{end}}</title>
  {{template "style" .}}
</head>
<body class="theme-{{.Theme}}">
  <header>
    <h1>{{.Profile.Name}}</h1>
    <div class="meta">
      {{- with .Profile.Role}}{{.}}{{end}}
      {{- with .Profile.Affiliation}} · {{.}}{{end}}
      {{- with .Profile.Location}} · {{.}}{{end}}
      {{- with .Profile.Email}} · <a href="mailto:{{.}}">{{.}}</a>{{end}}
    </div>
    {{- if .Profile.Links}}
    <nav class="links">
      {{- range .Profile.Links}}
      <a href="{{.URL}}" rel="noopener">{{.Label}}</a>
      {{- end}}
    </nav>
    {{- end}}
  </header>

  <main>
    <section class="grid" aria-label="Metrics">
      {{- range .Cards}}
      <button class="card" type="button" data-key="{{.Key}}" data-source="{{.Source}}"
        aria-pressed="{{if and $.Chart (eq $.Chart.Key .Key)}}true{{else}}false{{end}}">
        <span class="label">{{.Label}}</span>
        <span class="value">{{.Value}}</span>
        <span class="hint">{{.Hint}}</span>
      </button>
      {{- end}}
    </section>

    {{- with .Chart}}
    <section class="panel" id="chart" data-key="{{.Key}}" aria-live="polite">
      <h2>{{.Title}}</h2>
      <p class="hint">{{.Subtitle}}</p>
      {{- $decimals := .Metric.Decimals}}
      {{- $peak := .PeakYear}}
      {{- range .Points}}
      <div class="bar-row">
        <span>{{.Year}}</span>
        <div class="track"><div class="bar{{if eq .Year $peak}} peak{{end}}" style="width: {{printf "%.2f" .Percent}}%"></div></div>
        <span>{{number .Value $decimals}}</span>
      </div>
      {{- else}}
      <p class="hint">No yearly data</p>
      {{- end}}
      <p>Total: {{number .Total $decimals}} · Peak: {{.PeakYear}} ({{number .PeakValue $decimals}})</p>
      <p class="hint">{{.Metric.Explanation}}</p>
    </section>
    {{- end}}

    {{template "list" .Publications}}
    {{template "list" .Conferences}}
  </main>

  <footer class="hint">{{with .GeneratedOn}}Data generated on {{.}}{{end}}</footer>
</body>
</html>
{{define "list"}}
    <section class="list" id="{{.ID}}">
      <h2>{{.Title}}</h2>
      <form class="filters" role="search">
        <input type="search" name="search" value="{{.State.Search}}" placeholder="Search">
        <select name="year">
          <option value="">All years</option>
          {{- $year := .State.Year}}
          {{- range .Options.Years}}
          <option value="{{.}}"{{if selected $year .}} selected{{end}}>{{.}}</option>
          {{- end}}
        </select>
        <select name="category">
          <option value="">{{if eq .Kind "conferences"}}All types{{else}}All categories{{end}}</option>
          {{- $category := .State.Category}}
          {{- range .Options.Categories}}
          <option value="{{.}}"{{if selected $category .}} selected{{end}}>{{.}}</option>
          {{- end}}
        </select>
        {{- if .Options.Types}}
        <select name="type">
          <option value="">All record types</option>
          {{- $type := .State.Type}}
          {{- range .Options.Types}}
          <option value="{{.}}"{{if selected $type .}} selected{{end}}>{{.}}</option>
          {{- end}}
        </select>
        {{- end}}
      </form>
      <p class="count">Showing {{len .Items}} of {{.Total}}</p>
      <ol class="records">
        {{- range .Items}}
        <li data-year="{{.Year}}" data-category="{{.Category}}">
          {{.Citation}}
          {{- with .DOI}} <a href="https://doi.org/{{.}}" rel="noopener">doi:{{.}}</a>{{end}}
          {{- with .Subtype}} <span class="hint">{{.}}</span>{{end}}
          {{- if .City}} <span class="hint">{{.City}}{{with .Country}}, {{.}}{{end}}</span>{{end}}
          {{- with .Award}} <strong>{{.}}</strong>{{end}}
          {{- if .ScholarCitations}} <span class="hint">cited by {{number .Citations 0}}</span>{{end}}
        </li>
        {{- else}}
        <li class="hint">No matching records</li>
        {{- end}}
      </ol>
    </section>
{{end}}`

const errorTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Portfolio unavailable</title>
  {{template "style" .}}
</head>
<body class="theme-{{.Theme}}">
  <main>
    <section class="error-card" role="alert">
      <h2>Data unavailable</h2>
      <p>{{.Message}}</p>
    </section>
  </main>
</body>
</html>
`
