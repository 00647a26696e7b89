package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/vstepready/vstep-backend/internal/examerr"
	"github.com/vstepready/vstep-backend/internal/model"
)

// validReading returns a fully filled-in reading content that passes
// validation.
func validReading() model.SkillContent {
	c := Default(model.SkillReading)
	for i := range c.Reading.Parts {
		p := &c.Reading.Parts[i]
		p.Passage = "A passage about tidal energy."
		for j := range p.Questions {
			q := &p.Questions[j]
			q.Prompt = "What does the author claim?"
			q.Options = [4]string{"Tides are predictable", "Costs are flat", "Wind is cheaper", "Nothing changes"}
			q.CorrectAnswer = "A"
		}
	}
	return c
}

func validSpeaking() model.SkillContent {
	c := Default(model.SkillSpeaking)
	c.Speaking.Part1.Sections[0].TopicName = "Daily life"
	c.Speaking.Part1.Sections[0].Questions[0] = "What do you usually do on weekends?"
	c.Speaking.Part2.Situation = "Your friend wants to learn English quickly."
	c.Speaking.Part2.Options = [3]string{"Take an evening class", "Hire a tutor", "Use a language app"}
	c.Speaking.Part3.Topic = "Remote work"
	c.Speaking.Part3.MindMap.Center = "Benefits of remote work"
	c.Speaking.Part3.MindMap.Branches = [4]string{"Flexibility", "No commute", "Focus", "Cost savings"}
	c.Speaking.Part3.FollowUpQuestions[0] = "Would you like to work from home?"
	return c
}

func TestDefaultReadingSkeleton(t *testing.T) {
	c := Default(model.SkillReading)
	if c.Reading == nil {
		t.Fatal("Reading variant is nil")
	}
	if got, want := len(c.Reading.Parts), 3; got != want {
		t.Fatalf("parts = %d, want %d", got, want)
	}
	for i, p := range c.Reading.Parts {
		if got, want := p.PartNumber, i+1; got != want {
			t.Errorf("parts[%d].PartNumber = %d, want %d", i, got, want)
		}
		if got, want := len(p.Questions), 1; got != want {
			t.Errorf("parts[%d] questions = %d, want %d", i, got, want)
		}
	}
}

func TestDefaultWritingSkeleton(t *testing.T) {
	c := Default(model.SkillWriting)
	if c.Writing == nil {
		t.Fatal("Writing variant is nil")
	}
	if got, want := c.Writing.Task1.MinWords, model.Task1MinWords; got != want {
		t.Errorf("task1 min words = %d, want %d", got, want)
	}
	if got, want := c.Writing.Task2.MinWords, model.Task2MinWords; got != want {
		t.Errorf("task2 min words = %d, want %d", got, want)
	}
	if got, want := c.Writing.Task1.TaskType, model.WritingTaskEmail; got != want {
		t.Errorf("task1 type = %s, want %s", got, want)
	}
}

func TestDefaultSkeletonsValidateCleanlyOnceFilled(t *testing.T) {
	if vs := Validate(validReading(), model.SkillReading); len(vs) != 0 {
		t.Errorf("reading violations = %v, want none", vs)
	}
	if vs := Validate(validSpeaking(), model.SkillSpeaking); len(vs) != 0 {
		t.Errorf("speaking violations = %v, want none", vs)
	}
}

func TestAddQuestionAppendsWithNextIdentifier(t *testing.T) {
	before := validReading()
	after, err := AddQuestion(before, 1)
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	qs := after.Reading.Parts[1].Questions
	if got, want := len(qs), 2; got != want {
		t.Fatalf("questions = %d, want %d", got, want)
	}
	if got, want := qs[1].Identifier, 2; got != want {
		t.Errorf("new identifier = %d, want %d", got, want)
	}
	// Copy-on-write: the input must be untouched.
	if got, want := len(before.Reading.Parts[1].Questions), 1; got != want {
		t.Errorf("input mutated: questions = %d, want %d", got, want)
	}
}

func TestAddQuestionPartOutOfRange(t *testing.T) {
	_, err := AddQuestion(validReading(), 7)
	var oor *examerr.IndexOutOfRange
	if !errors.As(err, &oor) {
		t.Fatalf("err = %v, want IndexOutOfRange", err)
	}
	if oor.Kind != "part" || oor.Index != 7 {
		t.Errorf("got %s[%d], want part[7]", oor.Kind, oor.Index)
	}
}

func TestRemoveQuestionRefusesLast(t *testing.T) {
	_, err := RemoveQuestion(validReading(), 0, 0)
	var vf *examerr.ValidationFailed
	if !errors.As(err, &vf) {
		t.Fatalf("err = %v, want ValidationFailed", err)
	}
}

func TestRemoveQuestion(t *testing.T) {
	c, err := AddQuestion(validReading(), 0)
	if err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	after, err := RemoveQuestion(c, 0, 0)
	if err != nil {
		t.Fatalf("RemoveQuestion: %v", err)
	}
	qs := after.Reading.Parts[0].Questions
	if got, want := len(qs), 1; got != want {
		t.Fatalf("questions = %d, want %d", got, want)
	}
	if got, want := qs[0].Identifier, 2; got != want {
		t.Errorf("survivor identifier = %d, want %d", got, want)
	}

	_, err = RemoveQuestion(c, 0, 5)
	var oor *examerr.IndexOutOfRange
	if !errors.As(err, &oor) {
		t.Fatalf("err = %v, want IndexOutOfRange", err)
	}
}

func TestAddPart(t *testing.T) {
	after, err := AddPart(validReading())
	if err != nil {
		t.Fatalf("AddPart: %v", err)
	}
	if got, want := len(after.Reading.Parts), 4; got != want {
		t.Fatalf("parts = %d, want %d", got, want)
	}
	if got, want := after.Reading.Parts[3].PartNumber, 4; got != want {
		t.Errorf("new part number = %d, want %d", got, want)
	}
}

func TestValidateSkillMismatch(t *testing.T) {
	vs := Validate(validReading(), model.SkillListening)
	if len(vs) != 1 {
		t.Fatalf("violations = %v, want exactly one", vs)
	}
	if !strings.Contains(vs[0].Message, "does not match skill") {
		t.Errorf("message = %q", vs[0].Message)
	}
}

func TestValidateEmptyDefaultReading(t *testing.T) {
	vs := Validate(Default(model.SkillReading), model.SkillReading)
	if len(vs) == 0 {
		t.Fatal("empty skeleton validated cleanly, want violations")
	}

	paths := make(map[string]bool)
	for _, v := range vs {
		paths[v.Path] = true
	}
	if !paths["parts[0].passage"] {
		t.Errorf("missing passage violation, got %v", vs)
	}
	if !paths["parts[0].questions[0].prompt"] {
		t.Errorf("missing prompt violation, got %v", vs)
	}
}

func TestValidateCorrectAnswer(t *testing.T) {
	c := validReading()
	c.Reading.Parts[0].Questions[0].CorrectAnswer = "E"
	vs := Validate(c, model.SkillReading)
	if !hasViolation(vs, "correct answer must be one of A, B, C, D") {
		t.Errorf("violations = %v, want bad-label violation", vs)
	}

	c = validReading()
	c.Reading.Parts[0].Questions[0].Options[2] = ""
	c.Reading.Parts[0].Questions[0].CorrectAnswer = "C"
	vs = Validate(c, model.SkillReading)
	if !hasViolation(vs, "references an empty option") {
		t.Errorf("violations = %v, want empty-option violation", vs)
	}
}

func TestValidateSpeakingPart2Options(t *testing.T) {
	c := validSpeaking()
	c.Speaking.Part2.Options[1] = "  "
	vs := Validate(c, model.SkillSpeaking)
	if !hasViolation(vs, "part 2 must have exactly 3 non-empty options") {
		t.Errorf("violations = %v, want part 2 option violation", vs)
	}
}

func TestValidateWritingTaskTypeDomains(t *testing.T) {
	c := Default(model.SkillWriting)
	c.Writing.Task1.Prompt = "Write an email to your landlord."
	c.Writing.Task2.Prompt = "Some people believe remote work is here to stay. Discuss."
	// Essay type on task 1 is outside its domain.
	c.Writing.Task1.TaskType = model.WritingTaskEssayOpinion

	vs := Validate(c, model.SkillWriting)
	if !hasViolation(vs, "task type must be one of email, letter") {
		t.Errorf("violations = %v, want task1 type violation", vs)
	}
}

func hasViolation(vs []examerr.Violation, substr string) bool {
	for _, v := range vs {
		if strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}
