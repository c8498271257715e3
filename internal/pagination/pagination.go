// Package pagination splits an ordered entry listing into page windows.
package pagination

// Window is a page of a listing: the inclusive index range [Start, End].
type Window struct {
	Start int
	End   int
}

// Len is the number of items in the window.
func (w Window) Len() int { return w.End - w.Start + 1 }

// Contains reports whether index i falls in the window.
func (w Window) Contains(i int) bool { return i >= w.Start && i <= w.End }

// tailPercent is the size, relative to a page, below which a trailing
// remainder joins the previous page.
const tailPercent = 10

// Windows splits count items into pages of pageSize. A trailing remainder
// smaller than a tenth of a page is absorbed into the last page. A page size
// of zero or less yields a single page.
func Windows(count, pageSize int) []Window {
	if count <= 0 {
		return nil
	}
	if pageSize <= 0 || pageSize >= count {
		return []Window{{Start: 0, End: count - 1}}
	}
	out := make([]Window, 0, count/pageSize+1)
	for start := 0; start < count; start += pageSize {
		end := min(start+pageSize, count) - 1
		out = append(out, Window{Start: start, End: end})
	}
	last := out[len(out)-1]
	if len(out) > 1 && last.Len()*100 < pageSize*tailPercent {
		out = out[:len(out)-1]
		out[len(out)-1].End = last.End
	}
	return out
}

// Direction is the side a window grows toward.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// Expand widens window i by step items toward dir, taking them from the
// adjacent window. When the neighbour would be left with nothing, or with
// less than a tenth of step, it is folded in whole so no near-empty page
// remains. The input is not modified.
func Expand(windows []Window, i int, dir Direction, step int) []Window {
	if i < 0 || i >= len(windows) || step <= 0 {
		return windows
	}
	j := i + 1
	if dir == Backward {
		j = i - 1
	}
	if j < 0 || j >= len(windows) {
		return windows
	}

	out := make([]Window, len(windows))
	copy(out, windows)
	remaining := out[j].Len() - step
	if remaining <= 0 || remaining*100 < step*tailPercent {
		if dir == Forward {
			out[i].End = out[j].End
		} else {
			out[i].Start = out[j].Start
		}
		return append(out[:j], out[j+1:]...)
	}
	if dir == Forward {
		out[i].End += step
		out[j].Start += step
	} else {
		out[i].Start -= step
		out[j].End -= step
	}
	return out
}

// Locate returns the index of the window containing item, or -1.
func Locate(windows []Window, item int) int {
	for i, w := range windows {
		if w.Contains(item) {
			return i
		}
	}
	return -1
}

// Slice returns the items of ids inside w.
func Slice[T any](ids []T, w Window) []T {
	if w.Start < 0 || w.Start >= len(ids) {
		return nil
	}
	end := min(w.End+1, len(ids))
	return ids[w.Start:end]
}
