package lessonfetch

import "context"

// ShareStatusPrivate is the share status new lessons are created with.
const ShareStatusPrivate = "private"

// Lesson represents one lesson to be imported into LingQ. The json tags
// mirror the v3 lessons payload; Language selects the API endpoint and is
// not part of the body.
type Lesson struct {
	Title        string `json:"title"`
	Text         string `json:"text"`
	ShareStatus  string `json:"share_status"`
	CollectionID int64  `json:"collection,omitempty"`
	Language     string `json:"-"`
}

// Validate returns an error if the lesson contains invalid fields.
func (l *Lesson) Validate() error {
	if l.Title == "" {
		return Errorf(EINVALID, "lesson title required")
	}
	if l.Text == "" {
		return Errorf(EINVALID, "lesson text required")
	}
	if l.Language == "" {
		return Errorf(EINVALID, "lesson language required")
	}
	return nil
}

// LessonService imports lessons into the lesson API.
type LessonService interface {
	// ImportLesson creates a new lesson and returns its API id.
	// Returns EUNAUTHORIZED if the token is rejected.
	ImportLesson(ctx context.Context, token string, lesson *Lesson) (int64, error)

	// ImportAudioLesson creates a new lesson with an attached audio
	// file (multipart upload). Returns the API id of the new lesson.
	ImportAudioLesson(ctx context.Context, token string, lesson *Lesson, audioPath string) (int64, error)
}
