package render

import (
	"git.home.luguber.info/inful/lexrender/internal/dictconfig"
	"git.home.luguber.info/inful/lexrender/internal/fields"
	"git.home.luguber.info/inful/lexrender/internal/lexicon"
	"git.home.luguber.info/inful/lexrender/internal/markup"
	"git.home.luguber.info/inful/lexrender/internal/sensenum"
)

// senses renders a numbered sense list. Each sense pushes its label for its
// subsenses; a sense that renders nothing gives its number back.
func (w *walker) senses(n *dictconfig.Node, items []lexicon.Object) (*markup.Node, error) {
	visible := make([]*lexicon.Sense, 0, len(items))
	for _, it := range items {
		if s, ok := it.(*lexicon.Sense); ok && w.filter().IsVisible(s) {
			visible = append(visible, s)
		}
	}
	if len(visible) == 0 {
		return nil, nil
	}

	var shared *markup.Node
	var hoisted *dictconfig.Node
	if n.Senses.ShowSharedGrammarFirst {
		if gn := grammarChild(n); gn != nil {
			el, err := w.sharedGrammar(gn, visible)
			if err != nil {
				return nil, err
			}
			if el != nil {
				shared, hoisted = el, gn
			}
		}
	}

	group := sensenum.NewGroup(n.Senses, len(visible), &w.stack)
	policy := w.settings().Numbering
	tag := itemTag(n)
	out := make([]*markup.Node, 0, len(visible)+1)
	for _, s := range visible {
		label, numbered := group.Next(policy.SubsensesNumbered(n, w.visibleSubsenses(s)))
		if !numbered {
			label = ""
		}
		w.stack.Push(group.Frame(label))
		kids, err := w.children(scope{obj: s}, n, hoisted)
		w.stack.Pop()
		if err != nil {
			return nil, err
		}
		if len(kids) == 0 {
			group.Retract()
			continue
		}
		el := markup.Element(tag, ItemClass(n))
		el.SetAttr("id", AnchorID(s.GUID()))
		if numbered {
			el.Append(markup.Span(ClassSenseNumber, markup.Text(label)))
		}
		out = append(out, el.Append(kids...))
	}
	if len(out) == 0 {
		return nil, nil
	}
	if shared != nil {
		out = append([]*markup.Node{shared}, out...)
	}
	return markup.Element(containerTag(n, false), ClassName(n), out...), nil
}

func (w *walker) visibleSubsenses(s *lexicon.Sense) int {
	count := 0
	for _, sub := range s.Senses {
		if w.filter().IsVisible(sub) {
			count++
		}
	}
	return count
}

// grammarChild is the enabled grammatical-info child of a sense list node.
func grammarChild(n *dictconfig.Node) *dictconfig.Node {
	for _, c := range n.Children {
		if c.IsEnabled() && !c.IsCustomField && c.FieldDescription == fields.TagGrammar {
			return c
		}
	}
	return nil
}

// sharedGrammar renders gn for every sense and returns the hoisted element
// when all of them produce the same markup. A sense without grammatical info
// prevents hoisting.
func (w *walker) sharedGrammar(gn *dictconfig.Node, senses []*lexicon.Sense) (*markup.Node, error) {
	var first *markup.Node
	var key string
	for _, s := range senses {
		el, err := w.node(scope{obj: s}, gn)
		if err != nil {
			return nil, err
		}
		if el == nil {
			return nil, nil
		}
		k := markup.String(el)
		if first == nil {
			first, key = el, k
			continue
		}
		if k != key {
			return nil, nil
		}
	}
	return markup.Span(ClassSharedGrammar, first), nil
}
