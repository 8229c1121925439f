package catalog

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
)

// Definitions renders the catalog as MCP tool definitions, in registration
// order. The schemas are derived from the same ParamSpec tables that drive
// validation, so the advertised contract and the enforced one cannot drift.
func Definitions() []mcp.Tool {
	defs := make([]mcp.Tool, 0, len(ToolOrder))
	for _, name := range ToolOrder {
		defs = append(defs, definition(Tools[name]))
	}
	return defs
}

func definition(spec ToolSpec) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(spec.Desc)}

	names := make([]string, 0, len(spec.Params))
	for name := range spec.Params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ps := spec.Params[name]
		propOpts := []mcp.PropertyOption{mcp.Description(ps.Desc)}
		if ps.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		if len(ps.Enum) > 0 {
			propOpts = append(propOpts, mcp.Enum(ps.Enum...))
		}

		switch ps.Type {
		case TypeInt:
			opts = append(opts, mcp.WithNumber(name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(name, propOpts...))
		}
	}

	return mcp.NewTool(spec.Name, opts...)
}
