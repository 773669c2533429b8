// Package manifest handles parsing and validation of backfill catalog
// files: YAML documents listing capability declarations so install plans
// can be inspected and linted without compiling the payload packages that
// carry the actual bodies. It provides JSON Schema validation against the
// embedded catalog schema plus the engine-release constraint check.
package manifest
