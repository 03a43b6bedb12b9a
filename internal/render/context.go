package render

import (
	"encoding/json"
	"strings"

	"github.com/flosch/pongo2/v6"

	"marcframeview/internal/frame"
)

// Context is the data a report template renders against.
//
// Templates see the frame as marcframe together with three projection
// helpers: marc_categories(frame), tags(definition) and codes(definition).
// Each helper returns a list of entries with Key and Value fields.
type Context struct {
	Frame frame.Frame
}

func (c Context) namespace() pongo2.Context {
	return pongo2.Context{
		"marcframe":       c.Frame,
		"marc_categories": marcCategories,
		"tags":            tags,
		"codes":           codes,
	}
}

// Template functions take any since pongo2 only converts call arguments to
// interface parameter types.

func marcCategories(v any) ([]frame.Entry, error) {
	def, err := frame.AsDefinition(v)
	if err != nil {
		return nil, err
	}
	return frame.Collect(frame.Categories(frame.Frame(def))), nil
}

func tags(v any) ([]frame.Entry, error) {
	def, err := frame.AsDefinition(v)
	if err != nil {
		return nil, err
	}
	return frame.Collect(frame.Tags(def)), nil
}

func codes(v any) ([]frame.Entry, error) {
	def, err := frame.AsDefinition(v)
	if err != nil {
		return nil, err
	}
	return frame.Collect(frame.Codes(def)), nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("tojson") {
		_ = pongo2.RegisterFilter("tojson", filterToJSON)
	}
}

// filterToJSON encodes a value as JSON. An integer parameter selects the
// indent width, e.g. value|tojson:2.
func filterToJSON(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var (
		data []byte
		err  error
	)
	if param.IsInteger() && param.Integer() > 0 {
		data, err = json.MarshalIndent(in.Interface(), "", strings.Repeat(" ", param.Integer()))
	} else {
		data, err = json.Marshal(in.Interface())
	}
	if err != nil {
		return nil, &pongo2.Error{
			Sender:    "filter:tojson",
			OrigError: err,
		}
	}
	return pongo2.AsValue(string(data)), nil
}
