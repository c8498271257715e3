package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindows(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		pageSize int
		want     []Window
	}{
		{"empty", 0, 10, nil},
		{"single page", 7, 10, []Window{{0, 6}}},
		{"unbounded", 25, 0, []Window{{0, 24}}},
		{"exact", 20, 10, []Window{{0, 9}, {10, 19}}},
		{"large remainder kept", 25, 10, []Window{{0, 9}, {10, 19}, {20, 24}}},
		{"small tail absorbed", 201, 100, []Window{{0, 99}, {100, 200}}},
		{"tail at ten percent kept", 210, 100, []Window{{0, 99}, {100, 199}, {200, 209}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Windows(tt.count, tt.pageSize))
		})
	}
}

func TestWindowsCoverEveryItemOnce(t *testing.T) {
	for _, count := range []int{1, 9, 99, 100, 101, 109, 110, 1234} {
		ws := Windows(count, 100)
		next := 0
		for _, w := range ws {
			assert.Equal(t, next, w.Start)
			assert.GreaterOrEqual(t, w.End, w.Start)
			next = w.End + 1
		}
		assert.Equal(t, count, next, "count %d", count)
	}
}

func TestExpandForward(t *testing.T) {
	ws := []Window{{0, 9}, {10, 19}, {20, 29}}
	got := Expand(ws, 0, Forward, 4)
	assert.Equal(t, []Window{{0, 13}, {14, 19}, {20, 29}}, got)
	assert.Equal(t, Window{0, 9}, ws[0], "input untouched")
}

func TestExpandFoldsConsumedNeighbour(t *testing.T) {
	ws := []Window{{0, 9}, {10, 19}, {20, 29}}
	assert.Equal(t, []Window{{0, 19}, {20, 29}}, Expand(ws, 0, Forward, 10))
	assert.Equal(t, []Window{{0, 19}, {20, 29}}, Expand(ws, 0, Forward, 15))
}

func TestExpandFoldsNearlyConsumedNeighbour(t *testing.T) {
	ws := []Window{{0, 99}, {100, 199}}
	assert.Equal(t, []Window{{0, 199}}, Expand(ws, 0, Forward, 95))
	assert.Equal(t, []Window{{0, 149}, {150, 199}}, Expand(ws, 0, Forward, 50))
}

func TestExpandBackward(t *testing.T) {
	ws := []Window{{0, 9}, {10, 19}, {20, 29}}
	assert.Equal(t, []Window{{0, 9}, {10, 14}, {15, 29}}, Expand(ws, 2, Backward, 5))
	assert.Equal(t, []Window{{0, 29}}, Expand([]Window{{0, 9}, {10, 29}}, 1, Backward, 10))
}

func TestExpandAtEdge(t *testing.T) {
	ws := []Window{{0, 9}, {10, 19}}
	assert.Equal(t, ws, Expand(ws, 1, Forward, 5))
	assert.Equal(t, ws, Expand(ws, 0, Backward, 5))
	assert.Equal(t, ws, Expand(ws, 5, Forward, 5))
}

func TestLocateAndSlice(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	ws := Windows(len(ids), 2)
	assert.Equal(t, []Window{{0, 1}, {2, 3}, {4, 4}}, ws)
	assert.Equal(t, 1, Locate(ws, 3))
	assert.Equal(t, -1, Locate(ws, 9))
	assert.Equal(t, []string{"c", "d"}, Slice(ids, ws[1]))
	assert.Equal(t, []string{"e"}, Slice(ids, Window{4, 10}))
	assert.Nil(t, Slice(ids, Window{7, 8}))
}
