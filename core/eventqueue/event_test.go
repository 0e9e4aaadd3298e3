package eventqueue_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventloop/core/eventqueue"
)

type texture struct{ id int }

func (texture) HandleType() string { return "texture" }

type shader struct{ name string }

func (s *shader) HandleType() string { return "shader:" + s.name }

func TestNewEvent_Valid(t *testing.T) {
	t.Parallel()

	tex := texture{id: 7}
	evt, err := eventqueue.NewEvent("draw", tex, 1.5, "label", true)
	require.NoError(t, err)

	assert.Equal(t, "draw", evt.Name())
	assert.Equal(t, 4, evt.NumArgs())
	assert.WithinDuration(t, time.Now(), evt.CreatedAt(), time.Second)

	_, err = uuid.Parse(evt.ID())
	assert.NoError(t, err, "event ID should be a valid UUID")

	assert.Equal(t, eventqueue.KindHandle, evt.Arg(0).Kind())
	assert.Equal(t, tex, evt.Arg(0).Handle())
	n, ok := evt.Arg(1).Number()
	assert.True(t, ok)
	assert.Equal(t, 1.5, n)
	assert.Equal(t, "label", evt.Arg(2).Str())
	assert.True(t, evt.Arg(3).Bool())
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	t.Parallel()

	a, err := eventqueue.NewEvent("tick")
	require.NoError(t, err)
	b, err := eventqueue.NewEvent("tick")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewEvent_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event string
		args  []any
	}{
		{name: "empty name", event: ""},
		{name: "too many args", event: "move", args: []any{1, 2, 3, 4, 5}},
		{name: "slice arg", event: "move", args: []any{[]int{1}}},
		{name: "map arg", event: "move", args: []any{map[string]int{"x": 1}}},
		{name: "struct arg", event: "move", args: []any{struct{ X int }{1}}},
		{name: "func arg", event: "move", args: []any{func() {}}},
		{name: "pointer arg", event: "move", args: []any{new(int)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := eventqueue.NewEvent(tt.event, tt.args...)
			assert.ErrorIs(t, err, eventqueue.ErrInvalidArgument)
		})
	}
}

// TestEvent_ArgsIsCopy verifies the event cannot be mutated through Args.
func TestEvent_ArgsIsCopy(t *testing.T) {
	t.Parallel()

	evt, err := eventqueue.NewEvent("move", 1, 2)
	require.NoError(t, err)

	args := evt.Args()
	args[0] = eventqueue.String("changed")

	n, ok := evt.Arg(0).Number()
	require.True(t, ok)
	assert.Equal(t, 1.0, n)
}

func TestEvent_ArgOutOfRange(t *testing.T) {
	t.Parallel()

	evt, err := eventqueue.NewEvent("jump")
	require.NoError(t, err)
	assert.True(t, evt.Arg(0).IsNil())
	assert.True(t, evt.Arg(-1).IsNil())
	assert.Empty(t, evt.Args())
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	evt, err := eventqueue.NewEvent("key", "a", 32, false, nil)
	require.NoError(t, err)
	assert.Equal(t, `key("a", 32, false, nil)`, evt.String())
}

func TestValueOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		kind eventqueue.Kind
	}{
		{nil, eventqueue.KindNil},
		{true, eventqueue.KindBool},
		{"s", eventqueue.KindString},
		{int(1), eventqueue.KindNumber},
		{int8(1), eventqueue.KindNumber},
		{int64(1), eventqueue.KindNumber},
		{uint16(1), eventqueue.KindNumber},
		{uint64(1), eventqueue.KindNumber},
		{float32(1.5), eventqueue.KindNumber},
		{2.5, eventqueue.KindNumber},
		{texture{}, eventqueue.KindHandle},
		{eventqueue.String("v"), eventqueue.KindString},
	}

	for _, tt := range tests {
		v, err := eventqueue.ValueOf(tt.in)
		require.NoError(t, err, "input %#v", tt.in)
		assert.Equal(t, tt.kind, v.Kind(), "input %#v", tt.in)
	}
}

func TestValue_Int(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, eventqueue.Number(3.9).Int(0))
	assert.Equal(t, -2, eventqueue.Number(-2.5).Int(0))
	assert.Equal(t, 9, eventqueue.String("3").Int(9))
	assert.Equal(t, 9, eventqueue.Number(math.NaN()).Int(9))
	assert.Equal(t, 9, eventqueue.Number(math.Inf(1)).Int(9))
	assert.Equal(t, math.MaxInt, eventqueue.Number(1e300).Int(0))
	assert.Equal(t, math.MinInt, eventqueue.Number(-1e300).Int(0))
}

func TestValueOf_NilHandle(t *testing.T) {
	t.Parallel()

	var sh *shader
	_, err := eventqueue.ValueOf(sh)
	require.ErrorIs(t, err, eventqueue.ErrInvalidArgument)

	q := eventqueue.New()
	require.ErrorIs(t, q.Push("draw", sh), eventqueue.ErrInvalidArgument)
	assert.Equal(t, 0, q.Len())

	v := eventqueue.HandleValue(sh)
	assert.True(t, v.IsNil())
	assert.Equal(t, "nil", v.String())

	live, err := eventqueue.ValueOf(&shader{name: "blur"})
	require.NoError(t, err)
	assert.Equal(t, "<shader:blur>", live.String())
}

func TestValue_Interface(t *testing.T) {
	t.Parallel()

	assert.Nil(t, eventqueue.Nil().Interface())
	assert.Equal(t, true, eventqueue.Bool(true).Interface())
	assert.Equal(t, 4.0, eventqueue.Number(4).Interface())
	assert.Equal(t, "x", eventqueue.String("x").Interface())
	assert.Equal(t, texture{id: 1}, eventqueue.HandleValue(texture{id: 1}).Interface())
	assert.True(t, eventqueue.HandleValue(nil).IsNil())
}

func TestValue_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nil", eventqueue.Nil().String())
	assert.Equal(t, "true", eventqueue.Bool(true).String())
	assert.Equal(t, "0.25", eventqueue.Number(0.25).String())
	assert.Equal(t, `"hi"`, eventqueue.String("hi").String())
	assert.Equal(t, "<texture>", eventqueue.HandleValue(texture{}).String())
}
