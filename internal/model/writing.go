package model

// WritingTaskType enumerates the prompt formats of the two writing tasks.
// Task 1 is correspondence (email or letter); task 2 is an essay.
type WritingTaskType string

const (
	WritingTaskEmail           WritingTaskType = "email"
	WritingTaskLetter          WritingTaskType = "letter"
	WritingTaskEssayOpinion    WritingTaskType = "essay_opinion"
	WritingTaskEssayDiscussion WritingTaskType = "essay_discussion"
)

// Default minimum word counts for the two writing tasks.
const (
	Task1MinWords = 150
	Task2MinWords = 250
)

// Task1Types lists the task types allowed for writing task 1.
var Task1Types = []WritingTaskType{WritingTaskEmail, WritingTaskLetter}

// Task2Types lists the task types allowed for writing task 2.
var Task2Types = []WritingTaskType{WritingTaskEssayOpinion, WritingTaskEssayDiscussion}

// WritingTask is one of the two tasks a writing exam always contains.
type WritingTask struct {
	Prompt   string          `json:"prompt"`
	TaskType WritingTaskType `json:"task_type"`
	MinWords int             `json:"min_words"`
	Rubric   string          `json:"rubric,omitempty"`
}

// WritingContent is the content variant for the Writing skill. It owns
// exactly two tasks with different type domains and word minimums.
type WritingContent struct {
	Task1 WritingTask `json:"task1"`
	Task2 WritingTask `json:"task2"`
}

// Clone returns a deep copy. WritingContent has no slices but Clone keeps
// the variant API uniform across skills.
func (c *WritingContent) Clone() *WritingContent {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
