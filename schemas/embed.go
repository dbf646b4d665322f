// Package schemas holds the JSON Schema contracts for documents the CLI emits.
package schemas

import (
	_ "embed"
)

// CareerAnalysisFile is the schema file name relative to this directory
const CareerAnalysisFile = "career_analysis.schema.json"

// CareerAnalysis is the JSON Schema of a CareerAnalysis document
//
//go:embed career_analysis.schema.json
var CareerAnalysis string
