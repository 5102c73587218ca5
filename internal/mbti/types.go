package mbti

type TypeInfo struct {
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var types = map[string]TypeInfo{
	"ISTJ": {"ISTJ", "The Inspector", "Practical and fact-minded, reliable, detail-oriented and methodical."},
	"ISFJ": {"ISFJ", "The Protector", "Dedicated and warm, quietly committed to caring for the people around them."},
	"INFJ": {"INFJ", "The Counselor", "Idealistic and principled, driven by insight into people and a sense of purpose."},
	"INTJ": {"INTJ", "The Architect", "Strategic and independent, with a plan for everything."},
	"ISTP": {"ISTP", "The Craftsman", "Hands-on and analytical, good at understanding how things work."},
	"ISFP": {"ISFP", "The Composer", "Gentle and adaptable, attentive to aesthetics and personal values."},
	"INFP": {"INFP", "The Mediator", "Reflective and empathetic, guided by strong inner values."},
	"INTP": {"INTP", "The Thinker", "Curious and logical, drawn to theories and abstract problems."},
	"ESTP": {"ESTP", "The Entrepreneur", "Energetic and pragmatic, comfortable acting in the moment."},
	"ESFP": {"ESFP", "The Performer", "Spontaneous and sociable, bringing energy to any group."},
	"ENFP": {"ENFP", "The Champion", "Enthusiastic and creative, inspired by possibilities and people."},
	"ENTP": {"ENTP", "The Debater", "Quick-witted and inventive, enjoys challenging ideas."},
	"ESTJ": {"ESTJ", "The Supervisor", "Organized and decisive, values order and clear procedures."},
	"ESFJ": {"ESFJ", "The Provider", "Caring and cooperative, attentive to the needs of others."},
	"ENFJ": {"ENFJ", "The Teacher", "Charismatic and supportive, motivates others toward shared goals."},
	"ENTJ": {"ENTJ", "The Commander", "Bold and strategic, a natural organizer of people and resources."},
}

// Describe returns the catalog entry for a type code.
func Describe(code string) (TypeInfo, bool) {
	t, ok := types[Normalize(code)]
	return t, ok
}
