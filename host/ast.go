package host

// Node is a syntax node of a parsed source file.
type Node interface {
	Pos() int
	End() int
	Parent() Node
}

// TextRange is a half-open [Pos, End) character range.
type TextRange struct {
	Pos int
	End int
}

// NodeData carries the fields shared by every node type.
type NodeData struct {
	Loc        TextRange
	ParentNode Node
}

func (d *NodeData) Pos() int { return d.Loc.Pos }
func (d *NodeData) End() int { return d.Loc.End }
func (d *NodeData) Parent() Node { return d.ParentNode }

// StringLiteralLike is a literal whose text is a plain string.
type StringLiteralLike interface {
	Node
	LiteralText() string
}

// SourceFile is the root node of a parsed file.
type SourceFile struct {
	NodeData
	FileName   string
	Text       string
	Statements []Node
}

// Identifier is a bare name.
type Identifier struct {
	NodeData
	Text string
}

// StringLiteral is a quoted string literal.
type StringLiteral struct {
	NodeData
	Text string
}

func (l *StringLiteral) LiteralText() string { return l.Text }

// NoSubstitutionTemplateLiteral is a template literal without placeholders.
type NoSubstitutionTemplateLiteral struct {
	NodeData
	Text string
}

func (l *NoSubstitutionTemplateLiteral) LiteralText() string { return l.Text }

// ImportDeclaration is an import statement.
type ImportDeclaration struct {
	NodeData
	ModuleSpecifier Node
	Attributes      *ImportAttributes
}

// ImportAttributes is the attribute clause of an import statement.
type ImportAttributes struct {
	NodeData
	Elements []*ImportAttribute
}

// ImportAttribute is one `name: value` pair of an attribute clause.
type ImportAttribute struct {
	NodeData
	Name  *Identifier
	Value Node
}

// Toolkit exposes the host's syntax queries.
type Toolkit interface {
	// TokenAtPosition returns the innermost token covering pos.
	TokenAtPosition(file *SourceFile, pos int) Node
	// IsModuleSpecifierLike reports whether n names a module in an import,
	// export, require or dynamic import.
	IsModuleSpecifierLike(n Node) bool
}
