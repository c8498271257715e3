package sensenum

import (
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
)

// Frame is one level of the numbering stack: the style used at that level
// and the full label given to the sense being expanded ("" if unnumbered).
type Frame struct {
	Style string
	Label string
}

// Stack carries parent labels down nested sense lists.
type Stack struct {
	frames []Frame
}

func (s *Stack) Push(f Frame) { s.frames = append(s.frames, f) }

func (s *Stack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Top returns the innermost frame.
func (s *Stack) Top() (Frame, bool) {
	if s == nil || len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

func (s *Stack) Depth() int {
	if s == nil {
		return 0
	}
	return len(s.frames)
}

// Group numbers one sibling list. It is created when the list starts and
// discarded when it ends.
type Group struct {
	opts     dictconfig.SenseOptions
	siblings int
	ordinal  int
	parent   Frame
}

// NewGroup starts numbering siblings visible senses under the innermost
// frame of stack. Nil options disable numbering.
func NewGroup(opts *dictconfig.SenseOptions, siblings int, stack *Stack) *Group {
	g := &Group{siblings: siblings}
	if opts != nil {
		g.opts = *opts
	}
	g.parent, _ = stack.Top()
	return g
}

// Style returns the group's counter style.
func (g *Group) Style() string { return g.opts.NumberingStyle }

// Next returns the label of the next sense. numberedSubsenses reports that
// the sense has subsenses which themselves request numbering; it keeps a
// lone sense numbered. Rules apply in order: no style means no number; a
// lone sense without numbered subsenses is unnumbered unless numbering even
// single senses; otherwise the next ordinal, prefixed with the parent label
// as the parent numbering style asks.
func (g *Group) Next(numberedSubsenses bool) (string, bool) {
	g.ordinal++
	if g.opts.NumberingStyle == "" {
		return "", false
	}
	if g.siblings == 1 && !g.opts.NumberEvenSingle && !numberedSubsenses {
		return "", false
	}
	label, ok := Format(g.opts.NumberingStyle, g.ordinal)
	if !ok {
		return "", false
	}
	return g.withParent(label), true
}

func (g *Group) withParent(label string) string {
	if g.parent.Label == "" {
		return label
	}
	if g.opts.NumberingStyle == StyleOutline {
		return g.parent.Label + "." + label
	}
	switch g.opts.ParentNumberingStyle {
	case ParentJoined:
		return g.parent.Label + label
	case ParentDotted:
		return g.parent.Label + "." + label
	default:
		return label
	}
}

// Frame returns the frame to push while rendering the children of a sense
// labelled label.
func (g *Group) Frame(label string) Frame {
	return Frame{Style: g.opts.NumberingStyle, Label: label}
}

// Retract gives back the ordinal of the last Next call when that sense turned
// out to render nothing.
func (g *Group) Retract() {
	if g.ordinal > 0 {
		g.ordinal--
	}
}
