package domain

// Language is a course language offered by the catalog.
type Language struct {
	ID          string
	Name        string
	NativeName  string
	Locale      string
	Flag        string
	CountryCode string
	// Romanized is set for languages written in a non-Latin script; the
	// tutor then supplies a romanization next to each word.
	Romanized bool
}

// LocalePrefix returns the language part of the locale ("es" for "es-ES").
func (l Language) LocalePrefix() string {
	for i := 0; i < len(l.Locale); i++ {
		if l.Locale[i] == '-' || l.Locale[i] == '_' {
			return l.Locale[:i]
		}
	}
	return l.Locale
}

// Lesson is one roleplay scenario in a course.
type Lesson struct {
	ID       int
	Type     LessonType
	Title    string
	Topic    string
	Scenario string
	Goal     string
}

// Prompt returns the scenario, falling back to the title when it is empty.
func (l Lesson) Prompt() string {
	if l.Scenario != "" {
		return l.Scenario
	}
	return l.Title
}
