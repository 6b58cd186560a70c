package progress

import "encoding/json"

// LessonProgress is the persisted viewer snapshot for one (user, lesson)
// pair: page position, per-question input and results, revealed hints and
// graphing-block state. It is written whole on every change, last write
// wins, and read back through Decode which treats the stored bytes as
// untrusted input.
type LessonProgress struct {
	PageIndex       int                        `json:"pageIndex"`
	QuestionAnswers map[string]Answer          `json:"questionAnswers"`
	VisibleHints    map[string]bool            `json:"visibleHints"`
	QuestionResults map[string]QuestionResult  `json:"questionResults"`
	GraphStatus     map[string]bool            `json:"desmosGraphStatus"`
	GraphStates     map[string]json.RawMessage `json:"desmosGraphStates"`
}

// Answer is the two-part coordinate-style input for one question. Single
// value questions leave Y empty.
type Answer struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// QuestionResult caches the outcome of the latest submission.
type QuestionResult struct {
	Submitted bool `json:"submitted"`
	IsCorrect bool `json:"isCorrect"`
}

// NewLessonProgress returns the page-zero empty state used when nothing
// valid has been persisted yet.
func NewLessonProgress() LessonProgress {
	return LessonProgress{
		QuestionAnswers: map[string]Answer{},
		VisibleHints:    map[string]bool{},
		QuestionResults: map[string]QuestionResult{},
		GraphStatus:     map[string]bool{},
		GraphStates:     map[string]json.RawMessage{},
	}
}

// Decode rebuilds a LessonProgress from persisted bytes. Invalid JSON,
// non-object values and wrong-typed fields all fall back to the empty
// state field by field; the page index is clamped to [0, maxPageIndex].
// There is no schema version on the stored value, so a future shape
// change degrades to defaults the same way malformed data does.
func Decode(raw []byte, maxPageIndex int) LessonProgress {
	p := NewLessonProgress()
	if len(raw) == 0 {
		return p
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return p
	}
	obj, ok := value.(map[string]interface{})
	if !ok {
		return p
	}

	if idx, ok := obj["pageIndex"].(float64); ok && idx == float64(int(idx)) && idx >= 0 {
		p.PageIndex = int(idx)
	}
	if maxPageIndex < 0 {
		maxPageIndex = 0
	}
	if p.PageIndex > maxPageIndex {
		p.PageIndex = maxPageIndex
	}

	if answers, ok := obj["questionAnswers"].(map[string]interface{}); ok {
		for id, v := range answers {
			entry, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			var answer Answer
			answer.X, _ = entry["x"].(string)
			answer.Y, _ = entry["y"].(string)
			p.QuestionAnswers[id] = answer
		}
	}

	if hints, ok := obj["visibleHints"].(map[string]interface{}); ok {
		for id, v := range hints {
			p.VisibleHints[id] = v == true
		}
	}

	if results, ok := obj["questionResults"].(map[string]interface{}); ok {
		for id, v := range results {
			entry, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			p.QuestionResults[id] = QuestionResult{
				Submitted: entry["submitted"] == true,
				IsCorrect: entry["isCorrect"] == true,
			}
		}
	}

	if status, ok := obj["desmosGraphStatus"].(map[string]interface{}); ok {
		for id, v := range status {
			p.GraphStatus[id] = v == true
		}
	}

	if states, ok := obj["desmosGraphStates"].(map[string]interface{}); ok {
		for id, v := range states {
			if _, ok := v.(map[string]interface{}); !ok {
				continue
			}
			// re-serialize the graph state; it is opaque to us
			b, err := json.Marshal(v)
			if err != nil {
				continue
			}
			p.GraphStates[id] = json.RawMessage(b)
		}
	}

	return p
}

// Encode serializes the snapshot for storage.
func (p LessonProgress) Encode() ([]byte, error) {
	return json.Marshal(p)
}
