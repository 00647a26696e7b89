package content

import (
	"fmt"
	"strings"

	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// Validate checks every content invariant and returns all violations.
// It is pure and is only invoked before a draft/rejected exam moves to
// pending; transiently invalid states are allowed while editing.
func Validate(c model.SkillContent, skill model.Skill) []examerr.Violation {
	if c.Skill() != skill {
		return []examerr.Violation{{
			Path:    "content",
			Message: fmt.Sprintf("content shape does not match skill %q", skill),
		}}
	}

	switch skill {
	case model.SkillReading:
		return validateReading(c.Reading)
	case model.SkillListening:
		return validateListening(c.Listening)
	case model.SkillWriting:
		return validateWriting(c.Writing)
	case model.SkillSpeaking:
		return validateSpeaking(c.Speaking)
	}

	return []examerr.Violation{{Path: "skill", Message: fmt.Sprintf("unknown skill %q", skill)}}
}

func validateReading(c *model.ReadingContent) []examerr.Violation {
	var vs []examerr.Violation
	if len(c.Parts) == 0 {
		return append(vs, examerr.Violation{Path: "parts", Message: "reading content must have at least one part"})
	}
	for i, p := range c.Parts {
		path := fmt.Sprintf("parts[%d]", i)
		if strings.TrimSpace(p.Passage) == "" {
			vs = append(vs, examerr.Violation{Path: path + ".passage", Message: "passage must not be empty"})
		}
		vs = append(vs, validateQuestions(path, p.Questions)...)
	}
	return vs
}

func validateListening(c *model.ListeningContent) []examerr.Violation {
	var vs []examerr.Violation
	if len(c.Parts) == 0 {
		return append(vs, examerr.Violation{Path: "parts", Message: "listening content must have at least one part"})
	}
	if strings.TrimSpace(c.AudioReference) == "" {
		vs = append(vs, examerr.Violation{Path: "audio_reference", Message: "listening content requires an uploaded audio reference"})
	}
	for i, p := range c.Parts {
		vs = append(vs, validateQuestions(fmt.Sprintf("parts[%d]", i), p.Questions)...)
	}
	return vs
}

func validateQuestions(path string, qs []model.Question) []examerr.Violation {
	var vs []examerr.Violation
	if len(qs) == 0 {
		return append(vs, examerr.Violation{Path: path + ".questions", Message: "part must have at least one question"})
	}
	for i, q := range qs {
		qPath := fmt.Sprintf("%s.questions[%d]", path, i)
		if strings.TrimSpace(q.Prompt) == "" {
			vs = append(vs, examerr.Violation{Path: qPath + ".prompt", Message: "question prompt must not be empty"})
		}
		for j, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				vs = append(vs, examerr.Violation{
					Path:    fmt.Sprintf("%s.options[%d]", qPath, j),
					Message: fmt.Sprintf("option %s must not be empty", model.AnswerLabels[j]),
				})
			}
		}
		opt, ok := q.OptionFor(q.CorrectAnswer)
		if !ok {
			vs = append(vs, examerr.Violation{
				Path:    qPath + ".correct_answer",
				Message: "correct answer must be one of A, B, C, D",
			})
		} else if strings.TrimSpace(opt) == "" {
			vs = append(vs, examerr.Violation{
				Path:    qPath + ".correct_answer",
				Message: fmt.Sprintf("correct answer %s references an empty option", q.CorrectAnswer),
			})
		}
	}
	return vs
}

func validateWriting(c *model.WritingContent) []examerr.Violation {
	var vs []examerr.Violation
	vs = append(vs, validateWritingTask("task1", c.Task1, model.Task1Types)...)
	vs = append(vs, validateWritingTask("task2", c.Task2, model.Task2Types)...)
	return vs
}

func validateWritingTask(path string, t model.WritingTask, allowed []model.WritingTaskType) []examerr.Violation {
	var vs []examerr.Violation
	if strings.TrimSpace(t.Prompt) == "" {
		vs = append(vs, examerr.Violation{Path: path + ".prompt", Message: "task prompt must not be empty"})
	}
	if t.MinWords <= 0 {
		vs = append(vs, examerr.Violation{Path: path + ".min_words", Message: "minimum word count must be positive"})
	}
	ok := false
	for _, a := range allowed {
		if t.TaskType == a {
			ok = true
			break
		}
	}
	if !ok {
		names := make([]string, len(allowed))
		for i, a := range allowed {
			names[i] = string(a)
		}
		vs = append(vs, examerr.Violation{
			Path:    path + ".task_type",
			Message: fmt.Sprintf("task type must be one of %s", strings.Join(names, ", ")),
		})
	}
	return vs
}

func validateSpeaking(c *model.SpeakingContent) []examerr.Violation {
	var vs []examerr.Violation

	if len(c.Part1.Sections) == 0 {
		vs = append(vs, examerr.Violation{Path: "part1.sections", Message: "part 1 must have at least one topic section"})
	}
	for i, s := range c.Part1.Sections {
		path := fmt.Sprintf("part1.sections[%d]", i)
		if strings.TrimSpace(s.TopicName) == "" {
			vs = append(vs, examerr.Violation{Path: path + ".topic_name", Message: "topic name must not be empty"})
		}
		if len(s.Questions) == 0 {
			vs = append(vs, examerr.Violation{Path: path + ".questions", Message: "topic section must have at least one question"})
		}
		for j, q := range s.Questions {
			if strings.TrimSpace(q) == "" {
				vs = append(vs, examerr.Violation{
					Path:    fmt.Sprintf("%s.questions[%d]", path, j),
					Message: "question must not be empty",
				})
			}
		}
	}

	if strings.TrimSpace(c.Part2.Situation) == "" {
		vs = append(vs, examerr.Violation{Path: "part2.situation", Message: "part 2 situation must not be empty"})
	}
	// The options array is fixed at three by construction; each entry still
	// has to be filled in.
	for i, opt := range c.Part2.Options {
		if strings.TrimSpace(opt) == "" {
			vs = append(vs, examerr.Violation{
				Path:    fmt.Sprintf("part2.options[%d]", i),
				Message: "part 2 must have exactly 3 non-empty options",
			})
		}
	}

	if strings.TrimSpace(c.Part3.Topic) == "" {
		vs = append(vs, examerr.Violation{Path: "part3.topic", Message: "part 3 topic must not be empty"})
	}
	if strings.TrimSpace(c.Part3.MindMap.Center) == "" {
		vs = append(vs, examerr.Violation{Path: "part3.mind_map.center", Message: "mind map center must not be empty"})
	}
	for i, b := range c.Part3.MindMap.Branches {
		if strings.TrimSpace(b) == "" {
			vs = append(vs, examerr.Violation{
				Path:    fmt.Sprintf("part3.mind_map.branches[%d]", i),
				Message: "mind map must have 4 non-empty branches",
			})
		}
	}
	if len(c.Part3.FollowUpQuestions) == 0 {
		vs = append(vs, examerr.Violation{Path: "part3.follow_up_questions", Message: "part 3 must have at least one follow-up question"})
	}
	for i, q := range c.Part3.FollowUpQuestions {
		if strings.TrimSpace(q) == "" {
			vs = append(vs, examerr.Violation{
				Path:    fmt.Sprintf("part3.follow_up_questions[%d]", i),
				Message: "follow-up question must not be empty",
			})
		}
	}

	return vs
}
