// Package parser recognizes linter and audit reports and turns them into
// normalized issues.
//
// A Chain holds an ordered list of recognizers. Each report is offered to
// them in turn and the first one whose claim check passes extracts every
// issue; the rest never see it. Supported inputs: SARIF, golangci-lint JSON,
// npm audit, pip-audit, poetry audit, pylint JSON, radon cc JSON, mypy JUnit
// XML and lizard CSV.
//
// JSON formats are claimed by validating against the documents in schemas/,
// which may be overridden per file name with WithSchemaDir.
package parser
