// Package content implements the pure operations over skill content:
// default skeleton construction, structural edits and invariant validation.
// Every function returns a new value and never mutates its input, which is
// what lets the services treat exams as immutable snapshots.
package content

import "github.com/vstepready/vstep-backend/internal/model"

// Default part counts for the skills that carry numbered parts.
const (
	defaultReadingParts   = 3
	defaultListeningParts = 3
)

// Default returns the minimally valid-by-shape skeleton an author starts
// from: a fresh draft never has a structurally broken content tree, only
// empty texts to fill in.
func Default(skill model.Skill) model.SkillContent {
	switch skill {
	case model.SkillReading:
		c := &model.ReadingContent{Parts: make([]model.ReadingPart, defaultReadingParts)}
		for i := range c.Parts {
			c.Parts[i] = model.ReadingPart{
				PartNumber: i + 1,
				Questions:  []model.Question{{Identifier: 1}},
			}
		}
		return model.SkillContent{Reading: c}

	case model.SkillListening:
		c := &model.ListeningContent{Parts: make([]model.ListeningPart, defaultListeningParts)}
		for i := range c.Parts {
			c.Parts[i] = model.ListeningPart{
				PartNumber: i + 1,
				Questions:  []model.Question{{Identifier: 1}},
			}
		}
		return model.SkillContent{Listening: c}

	case model.SkillWriting:
		return model.SkillContent{Writing: &model.WritingContent{
			Task1: model.WritingTask{TaskType: model.WritingTaskEmail, MinWords: model.Task1MinWords},
			Task2: model.WritingTask{TaskType: model.WritingTaskEssayOpinion, MinWords: model.Task2MinWords},
		}}

	case model.SkillSpeaking:
		return model.SkillContent{Speaking: &model.SpeakingContent{
			Part1: model.SocialInteraction{
				Sections: []model.TopicSection{{Questions: []string{""}}},
			},
			Part2: model.SolutionDiscussion{},
			Part3: model.TopicDevelopment{FollowUpQuestions: []string{""}},
		}}
	}

	return model.SkillContent{}
}
