package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stringify renders a node tree as compact JSON, preserving mapping key order.
// Scalars follow the YAML 1.2 core schema; non-finite floats become null.
func Stringify(node *yaml.Node) (string, error) {
	var buf strings.Builder
	if err := writeJSONNode(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeJSONNode writes a yaml.Node as JSON
func writeJSONNode(buf *strings.Builder, node *yaml.Node) error {
	if node == nil {
		buf.WriteString("null")
		return nil
	}

	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) > 0 {
			return writeJSONNode(buf, node.Content[0])
		}
		buf.WriteString("null")

	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(node.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := mappingKey(node.Content[i])
			if err != nil {
				return err
			}
			writeJSONString(buf, key)
			buf.WriteByte(':')
			if err := writeJSONNode(buf, node.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, item := range node.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONNode(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')

	case yaml.AliasNode:
		return writeJSONNode(buf, node.Alias)

	case yaml.ScalarNode:
		return writeJSONScalar(buf, node)

	default:
		writeJSONString(buf, node.Value)
	}
	return nil
}

// mappingKey turns a key node into an object key the way String(key) would
// in JavaScript. Complex keys are stringified the same way as values.
func mappingKey(node *yaml.Node) (string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return "", nil
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return "", fmt.Errorf("line %d: %w", node.Line, err)
			}
			return strconv.FormatBool(b), nil
		case "!!int", "!!float":
			if f, ok := coreNumber(node); ok {
				return jsNumberString(f), nil
			}
		}
		return node.Value, nil
	case yaml.AliasNode:
		return mappingKey(node.Alias)
	default:
		return Stringify(node)
	}
}

// writeJSONScalar writes a scalar node as JSON
func writeJSONScalar(buf *strings.Builder, node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		buf.WriteString("null")
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		buf.WriteString(strconv.FormatBool(b))
	case "!!int", "!!float":
		f, ok := coreNumber(node)
		if !ok {
			writeJSONString(buf, node.Value)
			return nil
		}
		return writeJSONFloat(buf, f)
	default:
		writeJSONString(buf, node.Value)
	}
	return nil
}

// Числа по YAML 1.2 core schema. yaml.v3 резолвит по правилам 1.1
// (017, 0b101, 1_000), поэтому теги !!int/!!float перепроверяются.
var (
	coreDecimal = regexp.MustCompile(`^[-+]?[0-9]+$`)
	coreOctal   = regexp.MustCompile(`^0o[0-7]+$`)
	coreHex     = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)
	coreFloat   = regexp.MustCompile(`^[-+]?(\.[0-9]+|[0-9]+(\.[0-9]*)?)([eE][-+]?[0-9]+)?$`)
	coreInf     = regexp.MustCompile(`^[-+]?\.(inf|Inf|INF)$`)
	coreNaN     = regexp.MustCompile(`^\.(nan|NaN|NAN)$`)
)

// coreNumber returns the numeric value of a plain scalar under the core
// schema. ok is false when the text is not a core-schema number, in which
// case the scalar is a string.
func coreNumber(node *yaml.Node) (float64, bool) {
	if node.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return 0, false
	}
	value := node.Value
	switch {
	case coreDecimal.MatchString(value):
		return parseInteger(value, 10)
	case coreOctal.MatchString(value):
		return parseInteger(value[2:], 8)
	case coreHex.MatchString(value):
		return parseInteger(value[2:], 16)
	case coreFloat.MatchString(value):
		// overflow yields ±Inf, as Number() does
		f, err := strconv.ParseFloat(value, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return 0, false
		}
		return f, true
	case coreInf.MatchString(value):
		if value[0] == '-' {
			return math.Inf(-1), true
		}
		return math.Inf(1), true
	case coreNaN.MatchString(value):
		return math.NaN(), true
	}
	return 0, false
}

// parseInteger parses digits of any length and rounds to the nearest
// float64, so integers past 2^53 lose precision exactly as in JavaScript.
func parseInteger(digits string, base int) (float64, bool) {
	i, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return 0, false
	}
	f, _ := new(big.Float).SetInt(i).Float64()
	return f, true
}

// jsNumberString formats f the way String(f) does in JavaScript.
func jsNumberString(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	var buf strings.Builder
	// конечное число, ошибки быть не может
	_ = writeJSONFloat(&buf, f)
	return buf.String()
}

func writeJSONFloat(buf *strings.Builder, f float64) error {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		buf.WriteString("null")
		return nil
	}
	if f == 0 {
		// JSON.stringify(-0) is "0"
		buf.WriteString("0")
		return nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	buf.Write(data)
	return nil
}

// writeJSONString writes s as a JSON string literal. Only quotes, backslashes
// and control characters are escaped.
func writeJSONString(buf *strings.Builder, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 32 {
				buf.WriteString(fmt.Sprintf(`\u%04x`, r))
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}
