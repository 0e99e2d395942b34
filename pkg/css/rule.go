package css

// Specificity is the (id, class, type) selector weight triple, compared
// lexicographically. Inline style and importance are handled as separate
// cascade tiers, not encoded here.
type Specificity [3]int

// Compare returns -1, 0 or 1 as a sorts before, equal to or after b.
func (a Specificity) Compare(b Specificity) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Add sums two specificities component-wise.
func (a Specificity) Add(b Specificity) Specificity {
	return Specificity{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Combinator relates two adjacent compounds in a complex selector.
type Combinator int

const (
	DescendantCombinator Combinator = iota
	ChildCombinator
	AdjacentSiblingCombinator
	GeneralSiblingCombinator
)

// AttributeSelector is one [name], [name=value] or [name<op>value] test.
type AttributeSelector struct {
	Name     string
	Operator string // "", "=", "^=", "$=", "*=", "~=", "|="
	Value    string
}

// SelectorPart is one compound selector: everything between combinators.
type SelectorPart struct {
	Tag           string // "" means any; "*" is kept as-is
	ID            string
	Classes       []string
	Attributes    []AttributeSelector
	PseudoClasses []string
}

func (p SelectorPart) specificity() Specificity {
	var s Specificity
	if p.ID != "" {
		s[0]++
	}
	s[1] += len(p.Classes) + len(p.Attributes) + len(p.PseudoClasses)
	if p.Tag != "" && p.Tag != "*" {
		s[2]++
	}
	return s
}

// Selector is a complex selector: compounds joined by combinators.
// len(Combinators) is always len(Parts)-1; Parts[len-1] is the subject.
type Selector struct {
	Parts       []SelectorPart
	Combinators []Combinator
}

// Specificity sums the weight of every compound in the selector.
func (s Selector) Specificity() Specificity {
	var total Specificity
	for _, p := range s.Parts {
		total = total.Add(p.specificity())
	}
	return total
}

// Declaration is one property: value pair, with its !important flag.
type Declaration struct {
	Property  string
	Value     Value
	Important bool
}

// StyleRule pairs one selector with its declarations. SourceOrder is the
// rule's position across all sheets, the cascade's final tiebreaker.
type StyleRule struct {
	Selector     Selector
	Declarations []Declaration
	SourceOrder  int
}
