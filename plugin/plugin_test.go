package plugin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aledsdavies/fjson/fjerr"
	"github.com/aledsdavies/fjson/options"
	"github.com/aledsdavies/fjson/parser"
	"github.com/aledsdavies/fjson/value"
)

// recorder is a test Plugin implementing every hook, logging call order
// and path so tests can assert on depth-first, registration-order
// semantics.
type recorder struct {
	name  string
	calls *[]string
}

func (r *recorder) Name() string { return r.name }
func (r *recorder) TransformValue(v *value.Value, path string) error {
	*r.calls = append(*r.calls, r.name+":"+path)
	return nil
}

func TestRunVisitsDepthFirstInRegistrationOrder(t *testing.T) {
	v, err := parser.Parse([]byte(`{"a": [1, 2], "b": {"c": 3}}`), parser.NewConfig(options.Default()))
	require.Nil(t, err)

	var calls []string
	plugins := []Plugin{&recorder{name: "p1", calls: &calls}, &recorder{name: "p2", calls: &calls}}
	_, perr := Run(plugins, nil, v)
	require.Nil(t, perr)

	// Children are visited before their parent (depth-first), and at each
	// node both plugins run in registration order.
	idxAElem0P1 := indexOf(calls, "p1:$.a[0]")
	idxAP1 := indexOf(calls, "p1:$.a")
	require.True(t, idxAElem0P1 < idxAP1, "child must be visited before parent")

	idxRootP1 := indexOf(calls, "p1:$")
	idxRootP2 := indexOf(calls, "p2:$")
	require.True(t, idxRootP1 < idxRootP2, "plugins must run in registration order at the same node")
}

func indexOf(s []string, target string) int {
	for i, v := range s {
		if v == target {
			return i
		}
	}
	return -1
}

type rejectingValidator struct{ msg string }

func (r *rejectingValidator) Name() string { return "reject" }
func (r *rejectingValidator) Validate(v *value.Value, path string) error {
	return errors.New(r.msg)
}

func TestRunAbortsOnPluginError(t *testing.T) {
	v, err := parser.Parse([]byte(`{"a": 1}`), parser.NewConfig(options.Default()))
	require.Nil(t, err)

	_, perr := Run([]Plugin{&rejectingValidator{msg: "nope"}}, nil, v)
	require.NotNil(t, perr)
	require.Equal(t, fjerr.PluginError, perr.Kind)
	require.NotNil(t, perr.Cause)
}

type numberDoubler struct{}

func (numberDoubler) Name() string { return "doubler" }
func (numberDoubler) OnNumber(lexeme, path string) (*value.Value, error) {
	return value.Integer(99), nil
}

func TestRunOnNumberHookReplacesValue(t *testing.T) {
	v, err := parser.Parse([]byte(`{"a": 1}`), parser.NewConfig(options.Default()))
	require.Nil(t, err)

	v, perr := Run([]Plugin{numberDoubler{}}, nil, v)
	require.Nil(t, perr)
	obj, _ := v.Object()
	av, _ := obj.Get("a")
	n, _ := av.Int()
	require.Equal(t, int64(99), n)
}

func TestSuggestKeysRanksClosestFirst(t *testing.T) {
	got := SuggestKeys("nam", []string{"name", "email", "nams"}, 2)
	require.Len(t, got, 2)
	require.Contains(t, got, "name")
	require.Contains(t, got, "nams")
}

func TestKeySuggestorRejectsUnknownKeyWithHint(t *testing.T) {
	v, err := parser.Parse([]byte(`{"naem": "x"}`), parser.NewConfig(options.Default()))
	require.Nil(t, err)

	_, perr := Run([]Plugin{NewKeySuggestor("schema", []string{"name", "email"})}, nil, v)
	require.NotNil(t, perr)
	require.Contains(t, perr.Cause.Error(), "name")
}

func TestSchemaValidatorAcceptsConformingDocument(t *testing.T) {
	sv, err := NewSchemaValidator("doc", `{
		"type": "object",
		"required": ["name"],
		"properties": {"name": {"type": "string"}}
	}`)
	require.NoError(t, err)

	v, perr := parser.Parse([]byte(`{"name": "ok"}`), parser.NewConfig(options.Default()))
	require.Nil(t, perr)

	_, runErr := Run([]Plugin{sv}, nil, v)
	require.Nil(t, runErr)
}

func TestSchemaValidatorRejectsNonConformingDocument(t *testing.T) {
	sv, err := NewSchemaValidator("doc", `{
		"type": "object",
		"required": ["name"]
	}`)
	require.NoError(t, err)

	v, perr := parser.Parse([]byte(`{"other": 1}`), parser.NewConfig(options.Default()))
	require.Nil(t, perr)

	_, runErr := Run([]Plugin{sv}, nil, v)
	require.NotNil(t, runErr)
	require.Equal(t, fjerr.PluginError, runErr.Kind)
}
