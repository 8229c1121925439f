package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/cavok/wxbrief/internal/domain"
)

var (
	identPattern       = regexp.MustCompile(`^[A-Za-z0-9]{3,8}$`)
	compactDatePattern = regexp.MustCompile(`^\d{8}_\d{4}$`)
)

const compactDateLayout = "20060102_1504"

// Validate checks the raw arguments of a tool call against the catalog's
// ParamSpec table and returns the validated mapping in canonical string form.
// Unknown parameter names fail closed: a typo must surface as an error, never
// degrade into a misleading empty result. No network is touched here.
func Validate(tool string, args map[string]any) (map[string]string, error) {
	spec, ok := Tools[tool]
	if !ok {
		return nil, &domain.InvocationError{
			Kind: domain.ErrKindInvalidParameter,
			Tool: tool,
			Msg:  "unknown tool",
		}
	}

	// Reject unknown names first, in deterministic order.
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, known := spec.Params[name]; !known {
			return nil, domain.NewInvalidParameter(tool, name,
				fmt.Sprintf("is not accepted by %s", tool))
		}
	}

	validated := make(map[string]string, len(spec.Params))
	for name, ps := range spec.Params {
		raw, present := args[name]
		if !present {
			if ps.Required {
				return nil, domain.NewInvalidParameter(tool, name, "is required")
			}
			if ps.Default != "" {
				validated[name] = ps.Default
			}
			continue
		}

		value, err := canonicalize(tool, name, ps, raw)
		if err != nil {
			return nil, err
		}
		validated[name] = value
	}
	return validated, nil
}

// canonicalize converts one raw argument into its canonical string form,
// enforcing the ParamSpec's type and constraints.
func canonicalize(tool, name string, ps ParamSpec, raw any) (string, error) {
	switch ps.Type {
	case TypeIdent:
		s, ok := raw.(string)
		if !ok {
			return "", domain.NewInvalidParameter(tool, name, "must be a string identifier")
		}
		s = strings.TrimSpace(s)
		if !identPattern.MatchString(s) {
			return "", domain.NewInvalidParameter(tool, name,
				"must be a 3-8 character alphanumeric identifier (e.g. KJFK)")
		}
		return strings.ToUpper(s), nil

	case TypeString:
		s, ok := raw.(string)
		if !ok {
			return "", domain.NewInvalidParameter(tool, name, "must be a string")
		}
		s = strings.ToLower(strings.TrimSpace(s))
		for _, allowed := range ps.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return "", domain.NewInvalidParameter(tool, name,
			fmt.Sprintf("must be one of: %s", strings.Join(ps.Enum, ", ")))

	case TypeInt:
		n, ok := asInt(raw)
		if !ok {
			return "", domain.NewInvalidParameter(tool, name, "must be an integer")
		}
		if n < 0 {
			return "", domain.NewInvalidParameter(tool, name, "must not be negative")
		}
		if n > ps.Max {
			return "", domain.NewInvalidParameter(tool, name,
				fmt.Sprintf("must not exceed %d", ps.Max))
		}
		return fmt.Sprintf("%d", n), nil

	case TypeDate:
		s, ok := raw.(string)
		if !ok {
			return "", domain.NewInvalidParameter(tool, name, "must be a string timestamp")
		}
		s = strings.TrimSpace(s)
		if compactDatePattern.MatchString(s) {
			if _, err := time.Parse(compactDateLayout, s); err == nil {
				return s, nil
			}
		} else if _, err := time.Parse(time.RFC3339, s); err == nil {
			return s, nil
		}
		return "", domain.NewInvalidParameter(tool, name,
			"must be yyyymmdd_hhmm or yyyy-mm-ddThh:mm:ssZ")
	}
	return "", domain.NewInvalidParameter(tool, name, "has an unsupported type")
}

// asInt accepts the numeric encodings JSON transports produce. Fractional
// values are rejected rather than truncated.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
