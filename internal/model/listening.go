package model

// ListeningPart mirrors ReadingPart but has no passage; the audio asset is
// referenced once at the content level.
type ListeningPart struct {
	PartNumber int        `json:"part_number"`
	Questions  []Question `json:"questions"`
}

// ListeningContent is the content variant for the Listening skill.
// AudioReference is an opaque pointer returned by the upload service.
type ListeningContent struct {
	AudioReference string          `json:"audio_reference,omitempty"`
	Parts          []ListeningPart `json:"parts"`
}

// Clone returns a deep copy so edits never alias the original.
func (c *ListeningContent) Clone() *ListeningContent {
	if c == nil {
		return nil
	}
	out := &ListeningContent{
		AudioReference: c.AudioReference,
		Parts:          make([]ListeningPart, len(c.Parts)),
	}
	for i, p := range c.Parts {
		cp := p
		cp.Questions = append([]Question(nil), p.Questions...)
		out.Parts[i] = cp
	}
	return out
}
