package lesson

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Lesson files are authored by hand by non-engineers; a half-written or
// malformed file must never take the whole lesson (or the viewer) down.
// Parsing therefore never fails: every page and block is normalized through
// a fallible per-variant constructor and invalid entries are dropped,
// preserving the relative order of their valid siblings.

// ParseDocument decodes raw JSON bytes into a best-effort Document.
func ParseDocument(raw []byte) Document {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return emptyDocument()
	}
	return NormalizeDocument(value)
}

// NormalizeDocument narrows an arbitrary decoded JSON value into a Document.
// A non-object root yields the empty document.
func NormalizeDocument(value interface{}) Document {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return emptyDocument()
	}

	doc := emptyDocument()
	doc.Title, _ = asString(obj["title"])
	doc.Chapter = asChapter(obj["chapter"])

	if items, ok := obj["objectives"].([]interface{}); ok {
		for _, item := range items {
			if s, ok := asString(item); ok {
				doc.Objectives = append(doc.Objectives, s)
			}
		}
	}

	if items, ok := obj["pages"].([]interface{}); ok {
		for i, item := range items {
			if page, ok := normalizePage(item, i); ok {
				doc.Pages = append(doc.Pages, page)
			}
		}
	}

	if items, ok := obj["sections"].([]interface{}); ok {
		for _, item := range items {
			if sec, ok := item.(map[string]interface{}); ok {
				section := Section{}
				section.Heading, _ = asString(sec["heading"])
				section.Content, _ = asString(sec["content"])
				doc.Sections = append(doc.Sections, section)
			}
		}
	}

	return doc
}

func emptyDocument() Document {
	return Document{
		Objectives: []string{},
		Pages:      []Page{},
		Sections:   []Section{},
	}
}

// normalizePage rejects non-object entries; missing/invalid id and title
// default to positional values ("page-<n+1>", "Page <n+1>").
func normalizePage(value interface{}, index int) (Page, bool) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return Page{}, false
	}

	page := Page{Blocks: []Block{}}
	if id, ok := asString(obj["id"]); ok {
		page.ID = id
	} else {
		page.ID = fmt.Sprintf("page-%d", index+1)
	}
	if title, ok := asString(obj["title"]); ok {
		page.Title = title
	} else {
		page.Title = fmt.Sprintf("Page %d", index+1)
	}

	if items, ok := obj["blocks"].([]interface{}); ok {
		for _, item := range items {
			if block, ok := normalizeBlock(item); ok {
				page.Blocks = append(page.Blocks, block)
			}
		}
	}
	return page, true
}

// normalizeBlock dispatches on the "type" tag; unknown tags and blocks with
// missing or wrong-typed required fields are rejected.
func normalizeBlock(value interface{}) (Block, bool) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return Block{}, false
	}
	tag, _ := asString(obj["type"])

	switch BlockType(tag) {
	case BlockText:
		text, ok := asString(obj["text"])
		if !ok {
			return Block{}, false
		}
		return Block{Type: BlockText, Text: text}, true

	case BlockKatex:
		expr, ok := asString(obj["expression"])
		if !ok {
			return Block{}, false
		}
		return Block{
			Type:        BlockKatex,
			Expression:  expr,
			DisplayMode: asBool(obj["displayMode"], true),
		}, true

	case BlockImage:
		src, ok := asString(obj["src"])
		if !ok {
			return Block{}, false
		}
		block := Block{Type: BlockImage, Src: src}
		block.Alt, _ = asString(obj["alt"])
		block.Caption, _ = asString(obj["caption"])
		if w, ok := asNumber(obj["maxWidth"]); ok {
			block.MaxWidth = w
		}
		return block, true

	case BlockQuestion:
		id, idOK := asString(obj["id"])
		prompt, promptOK := asString(obj["prompt"])
		if !idOK || !promptOK {
			return Block{}, false
		}
		block := Block{
			Type:                        BlockQuestion,
			ID:                          id,
			Prompt:                      prompt,
			AcceptableAnswers:           []string{},
			RequireCorrectBeforeAdvance: asBool(obj["requireCorrectBeforeAdvance"], false),
		}
		block.Explanation, _ = asString(obj["explanation"])
		if items, ok := obj["acceptableAnswers"].([]interface{}); ok {
			for _, item := range items {
				if s, ok := asString(item); ok && s != "" {
					block.AcceptableAnswers = append(block.AcceptableAnswers, s)
				}
			}
		}
		return block, true

	case BlockDesmos:
		block := Block{
			Type:                             BlockDesmos,
			Expressions:                      []Expression{},
			RequireStudentGraphBeforeAdvance: asBool(obj["requireStudentGraphBeforeAdvance"], false),
		}
		block.Title, _ = asString(obj["title"])
		if items, ok := obj["expressions"].([]interface{}); ok {
			for _, item := range items {
				if expr, ok := normalizeExpression(item); ok {
					block.Expressions = append(block.Expressions, expr)
				}
			}
		}
		block.Viewport = normalizeViewport(obj["viewport"])
		return block, true
	}

	return Block{}, false
}

// normalizeExpression accepts either a bare latex string or a
// {latex, label?, showLabel?} object.
func normalizeExpression(value interface{}) (Expression, bool) {
	if s, ok := asString(value); ok {
		return Expression{Latex: s}, true
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return Expression{}, false
	}
	latex, ok := asString(obj["latex"])
	if !ok {
		return Expression{}, false
	}
	expr := Expression{Latex: latex, ShowLabel: asBool(obj["showLabel"], false)}
	expr.Label, _ = asString(obj["label"])
	return expr, true
}

// normalizeViewport only accepts a viewport with all four numeric bounds.
func normalizeViewport(value interface{}) *Viewport {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	left, lok := asNumber(obj["left"])
	right, rok := asNumber(obj["right"])
	bottom, bok := asNumber(obj["bottom"])
	top, tok := asNumber(obj["top"])
	if !(lok && rok && bok && tok) {
		return nil
	}
	return &Viewport{Left: left, Right: right, Bottom: bottom, Top: top}
}

func asString(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// asBool coerces a JSON value to bool: only a literal true counts as true,
// mirroring the viewer's strict-equality checks; an absent value yields the
// variant default.
func asBool(value interface{}, def bool) bool {
	if value == nil {
		return def
	}
	b, ok := value.(bool)
	if !ok {
		return def
	}
	return b
}

func asNumber(value interface{}) (float64, bool) {
	f, ok := value.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asChapter keeps a string chapter as-is and renders a numeric chapter in
// its shortest decimal form; any other type is dropped.
func asChapter(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
