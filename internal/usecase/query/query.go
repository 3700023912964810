// Package query evaluates JSONPath expressions against stored run artifacts.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/maw3193/bft/internal/domain"
)

// Eval runs a JSONPath expression over a JSON document and renders the
// result: scalars as plain text, everything else as indented JSON.
func Eval(doc []byte, expr string) (string, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return "", &domain.OpError{
			Op:   "query.eval",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("empty jsonpath expression"),
		}
	}

	var parsed any
	if err := json.Unmarshal(doc, &parsed); err != nil {
		return "", &domain.OpError{
			Op:   "query.eval",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("document is not valid JSON: %w", err),
		}
	}

	val, err := jsonpath.Get(expr, parsed)
	if err != nil {
		return "", &domain.OpError{
			Op:   "query.eval",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
		}
	}

	return render(val)
}

func render(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "null", nil
	case string:
		return t, nil
	case float64, bool:
		return fmt.Sprint(t), nil
	default:
		b, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return "", &domain.OpError{
				Op:   "query.render",
				Kind: domain.KindExecution,
				Err:  err,
			}
		}
		return string(b), nil
	}
}
