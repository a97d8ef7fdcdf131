package blocks

// Package blocks models the editor's content tree. Page content is stored
// as a JSON array of blocks; every block id is unique within a page.

// Block is implemented by the concrete block kinds. The concrete type
// carries the per-kind props, Decode picks it from the JSON type tag.
type Block interface {
	// Type returns the JSON type tag of the block.
	Type() string
	// InlineContent returns the block's inline runs, nil for blocks
	// without text content.
	InlineContent() []Inline
}

// Inline is a run of inline content inside a block.
type Inline interface {
	inline()
}

// Styles are the inline text styles. Zero value means plain text.
type Styles struct {
	Bold          bool `json:"bold,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
	Code          bool `json:"code,omitempty"`
}

// Text is a styled text run.
type Text struct {
	Text   string `json:"text"`
	Styles Styles `json:"styles,omitempty"`
}

func (Text) inline() {}

// Link wraps inline runs with a hyperlink.
type Link struct {
	Href    string   `json:"href"`
	Content []Inline `json:"content"`
}

func (Link) inline() {}

type Paragraph struct {
	ID      string
	Content []Inline
}

func (Paragraph) Type() string              { return TypeParagraph }
func (p Paragraph) InlineContent() []Inline { return p.Content }

// Heading levels follow the editor's range of 1 to 3.
type Heading struct {
	ID      string
	Level   int
	Content []Inline
}

func (Heading) Type() string              { return TypeHeading }
func (h Heading) InlineContent() []Inline { return h.Content }

type BulletListItem struct {
	ID      string
	Content []Inline
}

func (BulletListItem) Type() string              { return TypeBulletListItem }
func (b BulletListItem) InlineContent() []Inline { return b.Content }

type NumberedListItem struct {
	ID      string
	Content []Inline
}

func (NumberedListItem) Type() string              { return TypeNumberedListItem }
func (n NumberedListItem) InlineContent() []Inline { return n.Content }

type CheckListItem struct {
	ID      string
	Checked bool
	Content []Inline
}

func (CheckListItem) Type() string              { return TypeCheckListItem }
func (c CheckListItem) InlineContent() []Inline { return c.Content }

type Image struct {
	ID      string
	URL     string
	Caption string
}

func (Image) Type() string            { return TypeImage }
func (Image) InlineContent() []Inline { return nil }

// TableRow is one row of a table block. The first row renders as the
// header row.
type TableRow struct {
	Cells [][]Inline
}

type Table struct {
	ID   string
	Rows []TableRow
}

func (Table) Type() string            { return TypeTable }
func (Table) InlineContent() []Inline { return nil }

type CodeBlock struct {
	ID       string
	Language string
	Content  []Inline
}

func (CodeBlock) Type() string              { return TypeCodeBlock }
func (c CodeBlock) InlineContent() []Inline { return c.Content }

const (
	TypeParagraph        = "paragraph"
	TypeHeading          = "heading"
	TypeBulletListItem   = "bulletListItem"
	TypeNumberedListItem = "numberedListItem"
	TypeCheckListItem    = "checkListItem"
	TypeImage            = "image"
	TypeTable            = "table"
	TypeCodeBlock        = "codeBlock"
)
