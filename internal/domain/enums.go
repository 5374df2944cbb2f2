package domain

// WordStatus is the learner's relationship to a vocabulary word.
type WordStatus string

const (
	// WordStatusPassive means the tutor showed the word to the learner.
	WordStatusPassive WordStatus = "passive"
	// WordStatusActive means the learner produced the word at least once.
	WordStatusActive WordStatus = "active"
)

func (s WordStatus) String() string { return string(s) }

func (s WordStatus) IsValid() bool {
	switch s {
	case WordStatusPassive, WordStatusActive:
		return true
	}
	return false
}

// Role identifies the author of a conversation message.
type Role string

const (
	RoleTutor   Role = "tutor"
	RoleLearner Role = "learner"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleTutor, RoleLearner:
		return true
	}
	return false
}

// LessonType is the interaction mode of a lesson.
type LessonType string

const (
	LessonTypeText       LessonType = "text"
	LessonTypeVoice      LessonType = "voice"
	LessonTypeCheckpoint LessonType = "checkpoint"
)

func (t LessonType) String() string { return string(t) }

func (t LessonType) IsValid() bool {
	switch t {
	case LessonTypeText, LessonTypeVoice, LessonTypeCheckpoint:
		return true
	}
	return false
}

// ProgressStatus is the state of a lesson in a learner's course.
type ProgressStatus string

const (
	ProgressStatusLocked    ProgressStatus = "locked"
	ProgressStatusCurrent   ProgressStatus = "current"
	ProgressStatusCompleted ProgressStatus = "completed"
)

func (s ProgressStatus) String() string { return string(s) }

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressStatusLocked, ProgressStatusCurrent, ProgressStatusCompleted:
		return true
	}
	return false
}

// LevelBeginner is the only course level the catalog ships with.
const LevelBeginner = "beginner"
