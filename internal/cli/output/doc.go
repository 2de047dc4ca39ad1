// Package output provides output formatting for pak-cli.
//
//   - formatter.go: Formatter interface and factory
//   - table.go: aligned tables, with wide mode for extra columns
//   - json.go: indented JSON
//   - yaml.go: YAML through gopkg.in/yaml.v3
//
// JSON and YAML output is meant for scripts; the table format is for
// people and may change between releases.
package output
