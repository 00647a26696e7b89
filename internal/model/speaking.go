package model

// SpeakingOptionCount is the fixed number of solution options in speaking
// part 2. Three options is the exam format, not a UI accident.
const SpeakingOptionCount = 3

// MindMapBranchCount is the fixed number of branches in the part 3 mind map.
const MindMapBranchCount = 4

// TopicSection groups the part 1 social-interaction questions under a topic.
type TopicSection struct {
	TopicName string   `json:"topic_name"`
	Questions []string `json:"questions"`
}

// SocialInteraction is speaking part 1.
type SocialInteraction struct {
	Sections       []TopicSection `json:"sections"`
	AudioReference string         `json:"audio_reference,omitempty"`
}

// SolutionDiscussion is speaking part 2: a situation with exactly three
// candidate solutions.
type SolutionDiscussion struct {
	Situation      string    `json:"situation"`
	Options        [3]string `json:"options"`
	AudioReference string    `json:"audio_reference,omitempty"`
}

// MindMap is the part 3 development aid: one center idea with four branches.
type MindMap struct {
	Center   string    `json:"center"`
	Branches [4]string `json:"branches"`
}

// TopicDevelopment is speaking part 3.
type TopicDevelopment struct {
	Topic             string   `json:"topic"`
	MindMap           MindMap  `json:"mind_map"`
	FollowUpQuestions []string `json:"follow_up_questions"`
	AudioReference    string   `json:"audio_reference,omitempty"`
}

// SpeakingContent is the content variant for the Speaking skill, always
// composed of the same three fixed parts.
type SpeakingContent struct {
	Part1 SocialInteraction  `json:"part1"`
	Part2 SolutionDiscussion `json:"part2"`
	Part3 TopicDevelopment   `json:"part3"`
}

// Clone returns a deep copy so edits never alias the original.
func (c *SpeakingContent) Clone() *SpeakingContent {
	if c == nil {
		return nil
	}
	out := *c
	out.Part1.Sections = make([]TopicSection, len(c.Part1.Sections))
	for i, s := range c.Part1.Sections {
		cs := s
		cs.Questions = append([]string(nil), s.Questions...)
		out.Part1.Sections[i] = cs
	}
	out.Part3.FollowUpQuestions = append([]string(nil), c.Part3.FollowUpQuestions...)
	return &out
}
