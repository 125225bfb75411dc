package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/skillboost/skillboost/internal/llm"
)

// ParseObject strips fences, validates against schema when one is given,
// and decodes the text into T.
func ParseObject[T any](text string, schema *llm.Schema) Result[T] {
	clean := StripCodeFences(text)
	if clean == "" {
		return Invalid[T](text, "empty response")
	}
	if err := llm.ValidateJSON(schema, json.RawMessage(clean)); err != nil {
		return Invalid[T](text, err.Error())
	}
	var v T
	if err := json.Unmarshal([]byte(clean), &v); err != nil {
		return Invalid[T](text, fmt.Sprintf("decode: %v", err))
	}
	return Valid(text, v)
}

// ParseArray reads a JSON array of T. An object wrapping exactly one array
// field is accepted too. Each element must satisfy elemSchema and check;
// elements that do not are dropped and counted. The result is invalid when
// nothing survives.
func ParseArray[T any](text string, elemSchema *llm.Schema, check func(T) error) ArrayResult[T] {
	clean := StripCodeFences(text)
	if clean == "" {
		return ArrayResult[T]{Result: Invalid[[]T](text, "empty response")}
	}

	elems, err := rawElements(clean)
	if err != nil {
		return ArrayResult[T]{Result: Invalid[[]T](text, err.Error())}
	}

	out := make([]T, 0, len(elems))
	dropped := 0
	for _, raw := range elems {
		v, ok := decodeElement(raw, elemSchema, check)
		if !ok {
			dropped++
			continue
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		return ArrayResult[T]{
			Result:  Invalid[[]T](text, fmt.Sprintf("no valid elements among %d", len(elems))),
			Dropped: dropped,
		}
	}
	return ArrayResult[T]{Result: Valid(text, out), Dropped: dropped}
}

func rawElements(clean string) ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &arr); err == nil {
		return arr, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(clean), &obj); err != nil {
		return nil, fmt.Errorf("not a JSON array: %v", err)
	}
	var found []json.RawMessage
	arrays := 0
	for _, v := range obj {
		var inner []json.RawMessage
		if json.Unmarshal(v, &inner) == nil {
			found = inner
			arrays++
		}
	}
	if arrays != 1 {
		return nil, fmt.Errorf("expected an array or an object with one array field, found %d arrays", arrays)
	}
	return found, nil
}

func decodeElement[T any](raw json.RawMessage, schema *llm.Schema, check func(T) error) (T, bool) {
	var zero T
	if schema != nil {
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return zero, false
		}
		if err := llm.ValidateValue(schema, generic); err != nil {
			return zero, false
		}
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false
	}
	if check != nil && check(v) != nil {
		return zero, false
	}
	return v, true
}
