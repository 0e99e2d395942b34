package layout

import (
	"strings"

	"kestrel/pkg/css"
)

// BuildBoxTree converts a styled tree into the box tree layout operates
// on. display:none subtrees generate no boxes at all, flex and grid
// containers blockify their children into items, and runs of inline-level
// children mixed with block-level siblings get anonymous block wrappers.
func BuildBoxTree(styled *css.StyledNode) *Box {
	if styled == nil || styled.Style.Display() == css.DisplayNone {
		return nil
	}
	root := &Box{
		Type:    BlockBox, // the layout root is always block-level
		Context: contextOf(styled.Style.Display()),
		Node:    styled,
	}
	buildChildren(root, styled)
	return root
}

func contextOf(display css.DisplayType) FormattingContext {
	switch display {
	case css.DisplayFlex:
		return FlexContext
	case css.DisplayGrid:
		return GridContext
	}
	return FlowContext
}

func buildChildren(parent *Box, sn *css.StyledNode) {
	switch parent.Context {
	case FlexContext:
		buildItems(parent, sn, FlexItemBox)
	case GridContext:
		buildItems(parent, sn, GridItemBox)
	default:
		buildFlowChildren(parent, sn)
	}
}

// buildItems turns every in-flow child into a flex or grid item,
// regardless of the child's own display ("blockification"). Bare text
// gets an anonymous item wrapper.
func buildItems(parent *Box, sn *css.StyledNode, itemType BoxType) {
	for _, child := range sn.Children {
		if child.IsText() {
			if strings.TrimSpace(child.Node.Text) == "" {
				continue
			}
			item := &Box{Type: itemType}
			item.addChild(&Box{Type: TextRunBox, Node: child, Text: child.Node.Text})
			parent.addChild(item)
			continue
		}
		if child.Style.Display() == css.DisplayNone {
			continue
		}
		item := &Box{
			Type:    itemType,
			Context: contextOf(child.Style.Display()),
			Node:    child,
		}
		parent.addChild(item)
		buildChildren(item, child)
	}
}

// buildFlowChildren builds a block container's children, wrapping runs of
// inline-level boxes in an anonymous block when block-level siblings are
// present, so the container's children end up homogeneously block-level.
func buildFlowChildren(parent *Box, sn *css.StyledNode) {
	var boxes []*Box
	hasBlock := false
	hasInline := false

	for _, child := range sn.Children {
		box := buildFlowChild(child)
		if box == nil {
			continue
		}
		if box.IsInlineLevel() {
			hasInline = true
		} else {
			hasBlock = true
		}
		boxes = append(boxes, box)
	}

	if !hasBlock || !hasInline {
		for _, box := range boxes {
			parent.addChild(box)
		}
		return
	}

	// Mixed content: consecutive inline-level children are grouped into
	// one anonymous block wrapper. Anonymous boxes have no styled-node
	// back-reference and are regenerated on every rebuild.
	var run *Box
	flush := func() {
		if run != nil {
			parent.addChild(run)
			run = nil
		}
	}
	for _, box := range boxes {
		if box.IsInlineLevel() {
			if run == nil {
				run = &Box{Type: AnonymousBlockBox}
			}
			run.addChild(box)
			continue
		}
		flush()
		parent.addChild(box)
	}
	flush()
}

func buildFlowChild(child *css.StyledNode) *Box {
	if child.IsText() {
		if strings.TrimSpace(child.Node.Text) == "" {
			return nil
		}
		return &Box{Type: TextRunBox, Node: child, Text: child.Node.Text}
	}

	display := child.Style.Display()
	if display == css.DisplayNone {
		return nil
	}

	boxType := BlockBox
	switch display {
	case css.DisplayInline:
		boxType = InlineBox
		// An inline with block-level descendants is promoted to a
		// block container rather than fragmented around them.
		if hasBlockLevelChild(child) {
			boxType = BlockBox
		}
	case css.DisplayInlineBlock:
		boxType = InlineBox
	case css.DisplayFlex:
		boxType = FlexContainerBox
	case css.DisplayGrid:
		boxType = GridContainerBox
	}

	// Out-of-flow elements blockify: they never participate in inline
	// layout even when declared display:inline.
	switch child.Style.Position() {
	case css.PositionAbsolute, css.PositionFixed:
		if boxType == InlineBox {
			boxType = BlockBox
		}
	}

	box := &Box{
		Type:    boxType,
		Context: contextOf(display),
		Node:    child,
	}
	buildChildren(box, child)
	return box
}

func hasBlockLevelChild(sn *css.StyledNode) bool {
	for _, child := range sn.Children {
		if !child.IsText() && child.Style.IsBlockLevel() {
			return true
		}
	}
	return false
}

// isAtomicInline reports whether an inline-level box lays out as a single
// opaque unit on the line (inline-block).
func isAtomicInline(b *Box) bool {
	return b.Type == InlineBox && b.Node != nil &&
		b.Node.Style.Display() == css.DisplayInlineBlock
}
