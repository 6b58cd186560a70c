package lesson

// BlockType tags the closed set of content block variants a lesson page may
// contain. Anything else found in an authored file is dropped by the parser.
type BlockType string

const (
	BlockText     BlockType = "text"
	BlockKatex    BlockType = "katex"
	BlockImage    BlockType = "image"
	BlockQuestion BlockType = "question"
	BlockDesmos   BlockType = "desmos"
)

type (
	// Document is the validated, strongly-shaped representation of one
	// lesson's authored JSON file. It is immutable once built.
	Document struct {
		Title      string   `json:"title,omitempty"`
		Chapter    string   `json:"chapter,omitempty"`
		Objectives []string `json:"objectives"`
		Pages      []Page   `json:"pages"`
		// Sections is the legacy flat format, only rendered when Pages is empty.
		Sections []Section `json:"sections"`
	}

	Page struct {
		ID     string  `json:"id"`
		Title  string  `json:"title"`
		Blocks []Block `json:"blocks"`
	}

	// Block is one unit of lesson content. Only the fields of the variant
	// named by Type are meaningful; the rest stay at their zero values and
	// are elided from JSON.
	Block struct {
		Type BlockType `json:"type"`

		// text
		Text string `json:"text,omitempty"`

		// katex
		Expression  string `json:"expression,omitempty"`
		DisplayMode bool   `json:"displayMode,omitempty"`

		// image
		Src      string  `json:"src,omitempty"`
		Alt      string  `json:"alt,omitempty"`
		Caption  string  `json:"caption,omitempty"`
		MaxWidth float64 `json:"maxWidth,omitempty"`

		// question
		ID                          string   `json:"id,omitempty"`
		Prompt                      string   `json:"prompt,omitempty"`
		Explanation                 string   `json:"explanation,omitempty"`
		AcceptableAnswers           []string `json:"acceptableAnswers,omitempty"`
		RequireCorrectBeforeAdvance bool     `json:"requireCorrectBeforeAdvance,omitempty"`

		// desmos
		Title                            string       `json:"title,omitempty"`
		Expressions                      []Expression `json:"expressions,omitempty"`
		Viewport                         *Viewport    `json:"viewport,omitempty"`
		RequireStudentGraphBeforeAdvance bool         `json:"requireStudentGraphBeforeAdvance,omitempty"`
	}

	// Expression is one pre-seeded graph expression of a desmos block.
	Expression struct {
		Latex     string `json:"latex"`
		Label     string `json:"label,omitempty"`
		ShowLabel bool   `json:"showLabel,omitempty"`
	}

	Viewport struct {
		Left   float64 `json:"left"`
		Right  float64 `json:"right"`
		Bottom float64 `json:"bottom"`
		Top    float64 `json:"top"`
	}

	Section struct {
		Heading string `json:"heading,omitempty"`
		Content string `json:"content,omitempty"`
	}
)

// Questions returns the question blocks of the document, in display order.
func (d Document) Questions() []Block {
	var questions []Block
	for _, page := range d.Pages {
		for _, block := range page.Blocks {
			if block.Type == BlockQuestion {
				questions = append(questions, block)
			}
		}
	}
	return questions
}

// FindQuestion looks a question block up by id.
func (d Document) FindQuestion(id string) (Block, bool) {
	for _, page := range d.Pages {
		for _, block := range page.Blocks {
			if block.Type == BlockQuestion && block.ID == id {
				return block, true
			}
		}
	}
	return Block{}, false
}
