package eventqueue

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Kind enumerates the value kinds an event argument may hold.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindHandle
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindHandle:
		return "handle"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Handle is an opaque reference to a resource owned by the host application
// (a texture, a sound source, a joystick). The queue never inspects it.
type Handle interface {
	HandleType() string
}

// Value is a single event argument. The zero Value is nil.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	h    Handle
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// HandleValue wraps a host handle. A nil handle, including a typed nil
// pointer, yields the nil value.
func HandleValue(h Handle) Value {
	if isNilHandle(h) {
		return Value{}
	}
	return Value{kind: KindHandle, h: h}
}

func isNilHandle(h Handle) bool {
	if h == nil {
		return true
	}
	rv := reflect.ValueOf(h)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// ValueOf converts a Go value to a Value.
// Integer and float types become numbers; any container, struct or func
// is rejected with ErrInvalidArgument.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Nil(), nil
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case string:
		return String(x), nil
	case float64:
		return Number(x), nil
	case float32:
		return Number(float64(x)), nil
	case int:
		return Number(float64(x)), nil
	case int8:
		return Number(float64(x)), nil
	case int16:
		return Number(float64(x)), nil
	case int32:
		return Number(float64(x)), nil
	case int64:
		return Number(float64(x)), nil
	case uint:
		return Number(float64(x)), nil
	case uint8:
		return Number(float64(x)), nil
	case uint16:
		return Number(float64(x)), nil
	case uint32:
		return Number(float64(x)), nil
	case uint64:
		return Number(float64(x)), nil
	case Handle:
		if isNilHandle(x) {
			return Value{}, invalidArgument("nil handle of type %T", v)
		}
		return HandleValue(x), nil
	default:
		return Value{}, invalidArgument("unsupported value type %T", v)
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

// Bool reports the boolean payload; non-boolean values report false.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Str returns the string payload; empty for non-string values.
func (v Value) Str() string { return v.s }

func (v Value) Handle() Handle { return v.h }

// Number returns the numeric payload and whether the value is a number.
func (v Value) Number() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// Int returns the number truncated toward zero and clamped to the int
// range, or def when the value is not a finite number.
func (v Value) Int(def int) int {
	switch {
	case v.kind != KindNumber || math.IsNaN(v.n) || math.IsInf(v.n, 0):
		return def
	case v.n >= math.MaxInt:
		return math.MaxInt
	case v.n <= math.MinInt:
		return math.MinInt
	default:
		return int(v.n)
	}
}

// Interface returns the underlying Go value: nil, bool, float64, string or Handle.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindHandle:
		return v.h
	default:
		return nil
	}
}

// String renders the value for logs.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindHandle:
		if isNilHandle(v.h) {
			return "nil"
		}
		return fmt.Sprintf("<%s>", v.h.HandleType())
	default:
		return "nil"
	}
}
