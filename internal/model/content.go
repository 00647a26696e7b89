package model

import (
	"encoding/json"
	"fmt"
)

// Skill selects which content variant an exam carries.
type Skill string

const (
	SkillReading   Skill = "reading"
	SkillListening Skill = "listening"
	SkillWriting   Skill = "writing"
	SkillSpeaking  Skill = "speaking"
)

// Valid reports whether s is a known skill.
func (s Skill) Valid() bool {
	switch s {
	case SkillReading, SkillListening, SkillWriting, SkillSpeaking:
		return true
	}
	return false
}

// SkillContent is a tagged union over the four skill variants. Exactly one
// field is non-nil; the tag lives on the owning exam's Skill field, so the
// union serializes as the bare variant object and is decoded via
// UnmarshalFor with the skill supplied by the caller.
type SkillContent struct {
	Reading   *ReadingContent   `json:"-"`
	Listening *ListeningContent `json:"-"`
	Writing   *WritingContent   `json:"-"`
	Speaking  *SpeakingContent  `json:"-"`
}

// Skill returns the variant tag, or "" when the union is empty.
func (c SkillContent) Skill() Skill {
	switch {
	case c.Reading != nil:
		return SkillReading
	case c.Listening != nil:
		return SkillListening
	case c.Writing != nil:
		return SkillWriting
	case c.Speaking != nil:
		return SkillSpeaking
	}
	return ""
}

// Clone returns a deep copy of whichever variant is populated.
func (c SkillContent) Clone() SkillContent {
	return SkillContent{
		Reading:   c.Reading.Clone(),
		Listening: c.Listening.Clone(),
		Writing:   c.Writing.Clone(),
		Speaking:  c.Speaking.Clone(),
	}
}

// MarshalJSON emits the populated variant as a bare object.
func (c SkillContent) MarshalJSON() ([]byte, error) {
	switch {
	case c.Reading != nil:
		return json.Marshal(c.Reading)
	case c.Listening != nil:
		return json.Marshal(c.Listening)
	case c.Writing != nil:
		return json.Marshal(c.Writing)
	case c.Speaking != nil:
		return json.Marshal(c.Speaking)
	}
	return []byte("null"), nil
}

// UnmarshalFor decodes raw content into the variant selected by skill.
func UnmarshalFor(skill Skill, raw json.RawMessage) (SkillContent, error) {
	var c SkillContent
	if len(raw) == 0 || string(raw) == "null" {
		return c, fmt.Errorf("content is required for skill %s", skill)
	}

	var err error
	switch skill {
	case SkillReading:
		c.Reading = &ReadingContent{}
		err = json.Unmarshal(raw, c.Reading)
	case SkillListening:
		c.Listening = &ListeningContent{}
		err = json.Unmarshal(raw, c.Listening)
	case SkillWriting:
		c.Writing = &WritingContent{}
		err = json.Unmarshal(raw, c.Writing)
	case SkillSpeaking:
		c.Speaking = &SpeakingContent{}
		err = json.Unmarshal(raw, c.Speaking)
	default:
		return c, fmt.Errorf("unknown skill %q", skill)
	}
	if err != nil {
		return SkillContent{}, fmt.Errorf("decode %s content: %w", skill, err)
	}
	return c, nil
}
