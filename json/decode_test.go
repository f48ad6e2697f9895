package json

import (
	stdjson "encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/combinator/parser"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{
			name:  "flat object",
			input: `{"foo":"bar","number":123,"array":[1,2,3],"nothing":null}`,
			want: Object{
				{"foo", String("bar")},
				{"number", Number(123)},
				{"array", Array{Number(1), Number(2), Number(3)}},
				{"nothing", Null{}},
			},
		},
		{
			name: "nested with white space",
			input: `
            {
                "foo": "bar",
                "number": 123,
                "array": [ 1,2,3 ],
                "objs": [{"a": true}, {"b": false}],
                "nothing": null
            }`,
			want: Object{
				{"foo", String("bar")},
				{"number", Number(123)},
				{"array", Array{Number(1), Number(2), Number(3)}},
				{"objs", Array{
					Object{{"a", Bool(true)}},
					Object{{"b", Bool(false)}},
				}},
				{"nothing", Null{}},
			},
		},
		{name: "empty array", input: "[]", want: Array{}},
		{name: "empty object", input: " { } ", want: Object{}},
		{name: "escaped string", input: `"a\"b"`, want: String(`a"b`)},
		{name: "deep", input: "[[[[1]]]]", want: Array{Array{Array{Array{Number(1)}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	// Failures inside a container are reported where they happened.
	const scalars = "'null' or 'true' or 'false' or an integer or a quoted string"
	const anyValue = scalars + " or '[' or '{'"

	tests := []struct {
		input    string
		expected string
		offset   int
	}{
		{"", anyValue, 0},
		{"x", anyValue, 0},
		{"null null", "end of input", 5},
		{`"open`, "'null' or 'true' or 'false' or an integer or a terminated quoted string or '[' or '{'", 0},
		{"[1,2,]", anyValue, 5},
		{"[1 2]", "']'", 3},
		{"[x]", anyValue, 1},
		{"[[1 2]]", "']'", 4},
		{`{"a" 1}`, "':'", 5},
		{`{"a": [1 2]}`, "']'", 9},
		{`{"a": 1,}`, "a quoted string", 8},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Decode(tt.input)
			var perr *parser.Error
			if !errors.As(err, &perr) {
				t.Fatalf("Decode(%q) error = %v, want *parser.Error", tt.input, err)
			}
			if perr.Expected != tt.expected || perr.Offset != tt.offset {
				t.Errorf("Decode(%q) = %q at %d, want %q at %d", tt.input, perr.Expected, perr.Offset, tt.expected, tt.offset)
			}
		})
	}
}

func TestObjectGet(t *testing.T) {
	v, err := Decode(`{"a": 1, "b": [true], "a": 2}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	obj, ok := v.(Object)
	if !ok {
		t.Fatalf("got %T, want Object", v)
	}
	if got, _ := obj.Get("a"); got != Number(2) {
		t.Errorf("Get(a) = %v, want 2", got)
	}
	if _, ok := obj.Get("missing"); ok {
		t.Errorf("Get(missing) found a value")
	}
	if diff := cmp.Diff([]string{"a", "b", "a"}, obj.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalJSONKeepsOrder(t *testing.T) {
	v, err := Decode(`{"z": null, "a": [1, "x", {"k": false}]}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	data, err := stdjson.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if got, want := string(data), `{"z":null,"a":[1,"x",{"k":false}]}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestToAny(t *testing.T) {
	v, err := Decode(`{"n": 1, "s": "x", "l": [true, null]}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := map[string]any{"n": 1, "s": "x", "l": []any{true, nil}}
	if diff := cmp.Diff(want, ToAny(v)); diff != "" {
		t.Errorf("ToAny mismatch (-want +got):\n%s", diff)
	}
}
