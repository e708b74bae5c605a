package mcpserver

// LocationContract describes the location grammar and the view-model
// returned by every tool, for LLM consumers.
const LocationContract = `# Credenda Reading Contract

Every tool returns the rendered view for the session's current state as JSON.

## Locations

| Location              | Renders                                   |
|-----------------------|-------------------------------------------|
| ` + "`/`" + `                 | Index of the Thirty-Nine Articles         |
| ` + "`/article/{n}`" + `      | Article n (1-39)                          |
| ` + "`/daily/{service}`" + `  | A Daily Office service, e.g. morning-prayer |

Anything else renders a ` + "`not_found`" + ` view. A leading ` + "`#`" + ` is ignored.

## Sections

Articles always show their text. Scripture proofs, historical notes and
commentary are shown or hidden by the session toggles (see ` + "`set_toggles`" + `
and the ` + "`credenda://toggles`" + ` resource). Daily Office services ignore the toggles.

## View-model

` + "```" + `json
{
  "location": "/article/11",
  "route":    {"kind": "article", "number": 11, "id": "11"},
  "toggles":  {"show_scripture": true, "show_notes": true, "show_commentary": true},
  "view": {
    "kind":   "article",
    "title":  "Article 11 — Of the Justification of Man",
    "blocks": [{"kind": "header", "heading": "11. Of the Justification of Man"}]
  }
}
` + "```" + `

Text values are HTML-escaped and line breaks are ` + "`<br>`" + `. Commentary is a list of
segments: plain ` + "`text`" + ` or a ` + "`footnote_ref`" + ` pointing at an entry of the
footnotes block.

## Search

` + "`search`" + ` matches case-insensitively against title, text, commentary, notes and
footnotes of every article. Results are in article order with a commentary
excerpt. An empty query returns to the current location.
`
