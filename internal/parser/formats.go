package parser

import "go.uber.org/zap"

// builtin returns the recognizers in claim order. Schema-checked JSON formats
// come first; the heuristic CSV check runs last because it is the loosest.
func builtin(schemas schemaSet, log *zap.SugaredLogger) ([]Recognizer, error) {
	sarifSchema, err := schemas.compile("sarif_schema.json")
	if err != nil {
		return nil, err
	}
	rs := []Recognizer{sarifFormat{schema: sarifSchema, log: log}}

	for _, def := range queryDefs {
		q, err := newQueryFormat(def, schemas, log)
		if err != nil {
			return nil, err
		}
		rs = append(rs, q)
	}

	pylintSchema, err := schemas.compile("pylint_schema.json")
	if err != nil {
		return nil, err
	}
	radonSchema, err := schemas.compile("radon_schema.json")
	if err != nil {
		return nil, err
	}
	rs = append(rs,
		pylintFormat{schema: pylintSchema, log: log},
		radonFormat{schema: radonSchema, log: log},
		junitFormat{linter: "mypy", log: log},
		lizardFormat{log: log},
	)
	return rs, nil
}
