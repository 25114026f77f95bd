// Package plugin implements the post-parse hook system (spec §4.8): a
// plugin declares a name and implements any subset of six hooks, and
// plugins run in registration order, depth-first, over the Value tree
// the parser already produced.
package plugin

import (
	"fmt"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/value"
)

// Plugin is the minimal contract every plugin satisfies. A plugin
// implements any subset of the hook interfaces below; Run type-asserts
// for each one it needs.
type Plugin interface {
	Name() string
}

// OnParseStart receives the raw input before any parsing happens.
type OnParseStart interface {
	OnParseStart(input []byte) error
}

// OnParseEnd receives the finished Value tree after every hook below has
// already run over it.
type OnParseEnd interface {
	OnParseEnd(v *value.Value) error
}

// OnNumber is invoked for each Number node in source order with the
// parsed number rendered as decimal text (%d for an Integer, %g for a
// Float); the source lexeme's base, digit grouping and spelling are not
// kept. Returning a non-nil Value replaces the node.
type OnNumber interface {
	OnNumber(lexeme string, path string) (*value.Value, error)
}

// OnString is invoked for each String node with its already-decoded
// content; returning a non-nil Value replaces the node.
type OnString interface {
	OnString(decoded string, path string) (*value.Value, error)
}

// TransformValue mutates a node in place via value.Value.Replace. Path is
// the JSONPath-like location of the node ($.a[0].b).
type TransformValue interface {
	TransformValue(v *value.Value, path string) error
}

// Validate inspects a node (most usefully the root, path "$") and returns
// a non-nil error to abort the parse with PluginError.
type Validate interface {
	Validate(v *value.Value, path string) error
}

// Run applies plugins, in registration order, to v — a depth-first walk
// (children visited before their parent's own hooks run, spec §4.8
// "applied in registration order depth-first") starting from path "$".
// input is forwarded to OnParseStart hooks only; Run does not re-parse it.
func Run(plugins []Plugin, input []byte, v *value.Value) (*value.Value, *fjerr.Error) {
	for _, p := range plugins {
		if h, ok := p.(OnParseStart); ok {
			if err := h.OnParseStart(input); err != nil {
				return nil, fjerr.Wrap(fjerr.PluginError, v.Span(), err, "plugin %q failed in on_parse_start", p.Name())
			}
		}
	}

	if err := walk(plugins, v, "$"); err != nil {
		return nil, err
	}

	for _, p := range plugins {
		if h, ok := p.(OnParseEnd); ok {
			if err := h.OnParseEnd(v); err != nil {
				return nil, fjerr.Wrap(fjerr.PluginError, v.Span(), err, "plugin %q failed in on_parse_end", p.Name())
			}
		}
	}
	return v, nil
}

func walk(plugins []Plugin, v *value.Value, path string) *fjerr.Error {
	switch v.Kind() {
	case value.KindArray:
		arr, _ := v.Array()
		for i, el := range arr {
			if err := walk(plugins, el, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case value.KindObject:
		obj, _ := v.Object()
		for _, e := range obj.Entries() {
			if err := walk(plugins, e.Value, path+"."+e.Key); err != nil {
				return err
			}
		}
	}

	for _, p := range plugins {
		switch v.Kind() {
		case value.KindInteger, value.KindFloat:
			if h, ok := p.(OnNumber); ok {
				replacement, err := h.OnNumber(numberLexeme(v), path)
				if err != nil {
					return fjerr.Wrap(fjerr.PluginError, v.Span(), err, "plugin %q failed in on_number at %s", p.Name(), path)
				}
				if replacement != nil {
					replacement.SetSpan(v.Span())
					v.Replace(replacement)
				}
			}
		case value.KindString:
			if h, ok := p.(OnString); ok {
				s, _ := v.Str()
				replacement, err := h.OnString(s, path)
				if err != nil {
					return fjerr.Wrap(fjerr.PluginError, v.Span(), err, "plugin %q failed in on_string at %s", p.Name(), path)
				}
				if replacement != nil {
					replacement.SetSpan(v.Span())
					v.Replace(replacement)
				}
			}
		}
		if h, ok := p.(TransformValue); ok {
			if err := h.TransformValue(v, path); err != nil {
				return fjerr.Wrap(fjerr.PluginError, v.Span(), err, "plugin %q failed in transform_value at %s", p.Name(), path)
			}
		}
	}

	for _, p := range plugins {
		if h, ok := p.(Validate); ok {
			if err := h.Validate(v, path); err != nil {
				return fjerr.Wrap(fjerr.PluginError, v.Span(), err, "plugin %q rejected %s", p.Name(), path)
			}
		}
	}
	return nil
}

func numberLexeme(v *value.Value) string {
	if v.IsInteger() {
		n, _ := v.Int()
		return fmt.Sprintf("%d", n)
	}
	f, _ := v.Float()
	return fmt.Sprintf("%g", f)
}
