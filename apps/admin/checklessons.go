package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/radianlabs/precalc/core/lesson"
)

// checkLessons runs every lesson file through the document validator and
// reports what it silently drops. The API serves whatever survives, so
// this is the authoring-time way to notice a broken block.
func (cli *commandLine) checkLessons() error {
	var broken int

	err := fs.WalkDir(cli.lessonFS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") || path.Base(p) == "index.json" {
			return nil
		}

		raw, err := fs.ReadFile(cli.lessonFS, p)
		if err != nil {
			return err
		}

		rawPages, rawBlocks := countRaw(raw)
		doc := lesson.ParseDocument(raw)

		var blocks int
		for _, page := range doc.Pages {
			blocks += len(page.Blocks)
		}

		if len(doc.Pages) == rawPages && blocks == rawBlocks {
			fmt.Printf("%s: ok (%d pages, %d blocks)\n", p, len(doc.Pages), blocks)
			return nil
		}
		broken++
		fmt.Printf("%s: dropped %d of %d pages, %d of %d blocks\n",
			p, rawPages-len(doc.Pages), rawPages, rawBlocks-blocks, rawBlocks)
		return nil
	})
	if err != nil {
		return err
	}

	if broken > 0 {
		return fmt.Errorf("%d lesson file(s) have content the validator drops", broken)
	}
	return nil
}

// countRaw counts the pages and blocks present in the authored JSON before
// validation, with no judgement on their shape.
func countRaw(raw []byte) (pages, blocks int) {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, 0
	}
	doc, ok := value.(map[string]interface{})
	if !ok {
		return 0, 0
	}
	pageList, ok := doc["pages"].([]interface{})
	if !ok {
		return 0, 0
	}

	pages = len(pageList)
	for _, p := range pageList {
		page, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		if blockList, ok := page["blocks"].([]interface{}); ok {
			blocks += len(blockList)
		}
	}
	return pages, blocks
}
