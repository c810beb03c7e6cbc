// Package schemas embeds the JSON Schema documents for the builder's data artifacts.
package schemas

import _ "embed"

// BuilderState is the schema for an imported or stored builder state document.
//
//go:embed builder_state.schema.json
var BuilderState string

// ATSReport is the schema for a report returned by the analysis service.
//
//go:embed ats_report.schema.json
var ATSReport string
