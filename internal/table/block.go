package table

// BlockKind tags an independently-aligned scope.
type BlockKind uint8

const (
	// BlockBody is a test or keyword body, or a whole settings/variables section.
	BlockBody BlockKind = iota
	BlockFor
	BlockIfBranch
	BlockWhile
	BlockTryBranch
)

func (k BlockKind) String() string {
	switch k {
	case BlockBody:
		return "body"
	case BlockFor:
		return "for"
	case BlockIfBranch:
		return "if-branch"
	case BlockWhile:
		return "while"
	case BlockTryBranch:
		return "try-branch"
	}
	return "unknown"
}

// ItemKind discriminates Block items.
type ItemKind uint8

const (
	ItemStatement ItemKind = iota
	ItemBlock
)

// Item is one entry of a block body in source order: either a direct
// statement or a nested block. Exactly one of Stmt/Child is meaningful,
// selected by Kind.
type Item struct {
	Kind  ItemKind
	Stmt  Statement
	Child *Block
}

// Block is an independently-aligned scope. Statements of nested blocks never
// leak into the parent's alignment computation; the parent owns children by
// value through Items (the tree has no cycles and no back-references).
//
// Block headers (FOR, IF, ELSE, TRY, ...) and END rows are direct statements
// of the PARENT block: they sit at the parent's indentation and align with
// the parent's rows. A child block holds only the nested body.
type Block struct {
	Kind  BlockKind
	Level int
	Items []Item
}

// AddStatement appends a direct statement.
func (b *Block) AddStatement(s Statement) {
	b.Items = append(b.Items, Item{Kind: ItemStatement, Stmt: s})
}

// AddChild appends a nested block and returns it.
func (b *Block) AddChild(kind BlockKind) *Block {
	child := &Block{Kind: kind, Level: b.Level + 1}
	b.Items = append(b.Items, Item{Kind: ItemBlock, Child: child})
	return child
}

// Statements returns the direct statements of the block, in order.
// Child block contents are excluded: this is the alignment scope.
func (b *Block) Statements() []*Statement {
	out := make([]*Statement, 0, len(b.Items))
	for i := range b.Items {
		if b.Items[i].Kind == ItemStatement {
			out = append(out, &b.Items[i].Stmt)
		}
	}
	return out
}

// Walk calls fn for the block and every nested block, depth-first.
func (b *Block) Walk(fn func(*Block)) {
	fn(b)
	for i := range b.Items {
		if b.Items[i].Kind == ItemBlock {
			b.Items[i].Child.Walk(fn)
		}
	}
}

// IsEmpty reports whether the block has no items at all.
func (b *Block) IsEmpty() bool {
	return len(b.Items) == 0
}
