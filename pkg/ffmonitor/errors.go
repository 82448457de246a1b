package ffmonitor

import "github.com/OpenFusionProject/ffmonitor/internal/parser"

// ParseError reports a monitor record that did not match the wire grammar.
// The live worker only logs these; offline parsing surfaces them when
// WithParseStopOnError is set.
type ParseError = parser.ParseError
