package content

import (
	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// AddQuestion appends a new empty question to the given part of a reading or
// listening content and returns the updated copy. The new question gets the
// next sequence-local identifier within its part.
func AddQuestion(c model.SkillContent, partIndex int) (model.SkillContent, error) {
	out := c.Clone()

	switch {
	case out.Reading != nil:
		if partIndex < 0 || partIndex >= len(out.Reading.Parts) {
			return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: partIndex}
		}
		p := &out.Reading.Parts[partIndex]
		p.Questions = append(p.Questions, model.Question{Identifier: nextIdentifier(p.Questions)})

	case out.Listening != nil:
		if partIndex < 0 || partIndex >= len(out.Listening.Parts) {
			return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: partIndex}
		}
		p := &out.Listening.Parts[partIndex]
		p.Questions = append(p.Questions, model.Question{Identifier: nextIdentifier(p.Questions)})

	default:
		return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: partIndex}
	}

	return out, nil
}

// RemoveQuestion deletes a question from the given part and returns the
// updated copy. A part must keep at least one question while it is being
// authored, so removing the last one is refused.
func RemoveQuestion(c model.SkillContent, partIndex, questionIndex int) (model.SkillContent, error) {
	out := c.Clone()

	switch {
	case out.Reading != nil:
		if partIndex < 0 || partIndex >= len(out.Reading.Parts) {
			return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: partIndex}
		}
		qs, err := removeAt(out.Reading.Parts[partIndex].Questions, questionIndex)
		if err != nil {
			return model.SkillContent{}, err
		}
		out.Reading.Parts[partIndex].Questions = qs

	case out.Listening != nil:
		if partIndex < 0 || partIndex >= len(out.Listening.Parts) {
			return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: partIndex}
		}
		qs, err := removeAt(out.Listening.Parts[partIndex].Questions, questionIndex)
		if err != nil {
			return model.SkillContent{}, err
		}
		out.Listening.Parts[partIndex].Questions = qs

	default:
		return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: partIndex}
	}

	return out, nil
}

// AddPart appends a new empty part (with one empty question) to a reading or
// listening content.
func AddPart(c model.SkillContent) (model.SkillContent, error) {
	out := c.Clone()

	switch {
	case out.Reading != nil:
		out.Reading.Parts = append(out.Reading.Parts, model.ReadingPart{
			PartNumber: len(out.Reading.Parts) + 1,
			Questions:  []model.Question{{Identifier: 1}},
		})
	case out.Listening != nil:
		out.Listening.Parts = append(out.Listening.Parts, model.ListeningPart{
			PartNumber: len(out.Listening.Parts) + 1,
			Questions:  []model.Question{{Identifier: 1}},
		})
	default:
		return model.SkillContent{}, &examerr.IndexOutOfRange{Kind: "part", Index: 0}
	}

	return out, nil
}

func removeAt(qs []model.Question, i int) ([]model.Question, error) {
	if i < 0 || i >= len(qs) {
		return nil, &examerr.IndexOutOfRange{Kind: "question", Index: i}
	}
	if len(qs) == 1 {
		return nil, &examerr.ValidationFailed{Violations: []examerr.Violation{{
			Message: "a part must keep at least one question",
		}}}
	}
	out := make([]model.Question, 0, len(qs)-1)
	out = append(out, qs[:i]...)
	return append(out, qs[i+1:]...), nil
}

func nextIdentifier(qs []model.Question) int {
	max := 0
	for _, q := range qs {
		if q.Identifier > max {
			max = q.Identifier
		}
	}
	return max + 1
}
