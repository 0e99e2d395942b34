package layout

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// DumpTree renders the laid-out box tree as an indented tree with each
// box's type, tag and content rect.
func DumpTree(root *Box) string {
	tree := treeprint.New()
	if root == nil {
		return tree.String()
	}
	tree.SetValue(boxLabel(root))
	addBranches(tree, root)
	return tree.String()
}

func addBranches(branch treeprint.Tree, b *Box) {
	for _, child := range b.Children {
		sub := branch.AddBranch(boxLabel(child))
		addBranches(sub, child)
	}
}

func boxLabel(b *Box) string {
	name := b.Type.String()
	if b.Node != nil && b.Node.Node != nil && b.Node.Node.TagName != "" {
		name += " <" + b.Node.Node.TagName + ">"
	}
	if b.Type == TextRunBox {
		text := []rune(b.Text)
		if len(text) > 20 {
			text = append(text[:20], '…')
		}
		name += fmt.Sprintf(" %q", string(text))
	}
	r := b.Dims.Content
	return fmt.Sprintf("%s (%.1f,%.1f %.1fx%.1f)", name, r.X, r.Y, r.Width, r.Height)
}

// DumpStacking renders the stacking tree with each context's z-index
// and bucket sizes.
func DumpStacking(sc *StackingContext) string {
	tree := treeprint.New()
	if sc == nil {
		return tree.String()
	}
	tree.SetValue(contextLabel(sc))
	addContexts(tree, sc)
	return tree.String()
}

func addContexts(branch treeprint.Tree, sc *StackingContext) {
	add := func(label string, list []*StackingContext) {
		for _, c := range list {
			sub := branch.AddBranch(label + " " + contextLabel(c))
			addContexts(sub, c)
		}
	}
	add("neg", sc.Negative)
	if len(sc.InFlow) > 0 {
		branch.AddNode(fmt.Sprintf("flow ×%d", len(sc.InFlow)))
	}
	add("pos", sc.Positioned)
	add("z+", sc.Positive)
}

func contextLabel(sc *StackingContext) string {
	label := fmt.Sprintf("z=%d", sc.ZIndex)
	if sc.Root != nil {
		label = boxLabel(sc.Root) + " " + label
	}
	return label
}
