package htmlgen

import (
	"path"

	gomponents "maragu.dev/gomponents"
	html "maragu.dev/gomponents/html"

	"apidocs/internal/snapshot"
)

// indexCSS keeps the root index self-contained; no external assets needed.
const indexCSS = `
:root { --primary: #2563eb; --surface: #f8fafc; --border: #e2e8f0; --muted: #64748b; }
* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; color: #1e293b; line-height: 1.6; }
.container { max-width: 960px; margin: 0 auto; padding: 2rem; }
.header { text-align: center; margin-bottom: 2rem; }
.header h1 { font-size: 2rem; color: var(--primary); }
.header p { color: var(--muted); }
table { width: 100%; border-collapse: collapse; background: var(--surface); border: 1px solid var(--border); border-radius: 0.5rem; }
th { background: var(--primary); color: white; padding: 0.75rem 1rem; text-align: left; font-size: 0.875rem; text-transform: uppercase; }
td { padding: 0.75rem 1rem; border-bottom: 1px solid var(--border); }
.version-badge { display: inline-block; background: var(--primary); color: white; padding: 0.25rem 0.75rem; border-radius: 0.375rem; font-weight: 600; text-decoration: none; }
.muted { color: var(--muted); font-size: 0.875rem; }
.action-link { color: var(--muted); font-size: 0.75rem; border: 1px solid var(--border); border-radius: 0.25rem; padding: 0.125rem 0.5rem; text-decoration: none; margin-right: 0.25rem; }
.empty-state { text-align: center; padding: 3rem; color: var(--muted); }
.footer { margin-top: 1rem; text-align: center; color: var(--muted); font-size: 0.75rem; }
`

// indexPage builds the root index document. docsBase is the path segment of
// the output directory relative to the index file (typically "api").
func indexPage(title, description, docsBase string, versions []VersionInfo) gomponents.Node {
	var rows []gomponents.Node
	if len(versions) == 0 {
		rows = append(rows, html.Tr(
			html.Td(
				gomponents.Attr("colspan", "4"),
				html.Class("empty-state"),
				html.H3(gomponents.Text("No API versions found")),
				html.P(gomponents.Text("Generate your first API documentation to see it here.")),
			),
		))
	}
	for _, v := range versions {
		rows = append(rows, html.Tr(
			html.Td(html.A(
				html.Href(path.Join(docsBase, v.Version, "index.html")),
				html.Class("version-badge"),
				gomponents.Text(v.Version),
			)),
			html.Td(html.Class("muted"), gomponents.Text(formatGenerated(v.Meta))),
			html.Td(gomponents.Text(formatRoutes(v.Meta))),
			html.Td(
				html.A(html.Href(path.Join(docsBase, v.Version, snapshot.SpecFileYAML)), html.Class("action-link"), gomponents.Text("YAML")),
				html.A(html.Href(path.Join(docsBase, v.Version, snapshot.SpecFileJSON)), html.Class("action-link"), gomponents.Text("JSON")),
			),
		))
	}

	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text(title)),
			html.StyleEl(gomponents.Raw(indexCSS)),
		),
		html.Body(
			html.Div(
				html.Class("container"),
				html.Header(
					html.Class("header"),
					html.H1(gomponents.Text(title)),
					html.P(gomponents.Text(description)),
				),
				html.Table(
					html.THead(html.Tr(
						html.Th(gomponents.Text("Version")),
						html.Th(gomponents.Text("Generated")),
						html.Th(gomponents.Text("Routes")),
						html.Th(gomponents.Text("Actions")),
					)),
					html.TBody(gomponents.Group(rows)),
				),
				html.P(html.Class("footer"), gomponents.Text("Rendered "+formatNow())),
			),
		),
	))
}

const swaggerCDN = "https://unpkg.com/swagger-ui-dist@5"

// versionPage builds the Swagger UI detail view for one version. The schema
// document is referenced by relative path so the page works from file:// and
// any static server alike.
func versionPage(ver, optionsJSON string) gomponents.Node {
	script := `window.onload = function() {
  window.ui = SwaggerUIBundle(Object.assign({
    url: "` + snapshot.SpecFileYAML + `",
    dom_id: "#swagger-ui",
    presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
    layout: "StandaloneLayout"
  }, ` + optionsJSON + `));
};`

	return html.Doctype(html.HTML(
		html.Lang("en"),
		html.Head(
			html.Meta(html.Charset("utf-8")),
			html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
			html.TitleEl(gomponents.Text("API "+ver)),
			html.Link(html.Rel("stylesheet"), html.Href(swaggerCDN+"/swagger-ui.css")),
			html.StyleEl(gomponents.Raw("body { margin: 0; background: #fafafa; } .back { display: inline-block; margin: 0.5rem 1rem; }")),
		),
		html.Body(
			html.A(html.Href("../../index.html"), html.Class("back"), gomponents.Text("Back to versions")),
			html.Div(html.ID("swagger-ui")),
			html.Script(html.Src(swaggerCDN+"/swagger-ui-bundle.js")),
			html.Script(html.Src(swaggerCDN+"/swagger-ui-standalone-preset.js")),
			html.Script(gomponents.Raw(script)),
		),
	))
}
