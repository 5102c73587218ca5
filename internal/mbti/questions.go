package mbti

type Question struct {
	ID        int    `json:"id"`
	Text      string `json:"text"`
	Dichotomy string `json:"category"`
}

type Section struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

var questions = [QuestionCount]string{
	// EI
	"I feel energized after spending time with a large group of people.",
	"I prefer to think out loud and discuss ideas with others.",
	"I tend to take initiative in social situations.",
	"I often act first and think later.",
	"I have a wide circle of friends and acquaintances.",
	"I feel drained after extended periods of solitude.",
	"I enjoy being the center of attention.",
	"I prefer working in team environments rather than independently.",
	"I find it easy to approach and talk to strangers.",
	"I tend to express my thoughts and feelings openly.",
	// SN
	"I focus more on present realities than future possibilities.",
	"I trust information that comes directly from my five senses.",
	"I prefer detailed, step-by-step instructions.",
	"I value practical applications over theoretical concepts.",
	"I notice specific details in my environment rather than overall patterns.",
	"I prefer working with concrete facts and figures rather than exploring ideas and theories.",
	"I tend to describe things in literal, straightforward terms.",
	"I focus on what is actual and real rather than what could be or might happen.",
	"I prefer routine and consistency over variety and change.",
	"I am more interested in learning practical skills than conceptual theories.",
	// TF
	"I make decisions based primarily on logic and objective analysis.",
	"I value truth over tact when giving feedback.",
	"I remain detached and analytical when making important decisions.",
	"I believe it's more important to be right than to be liked.",
	"I prefer to focus on tasks and results rather than people's feelings.",
	"I find it easy to critique others' work without worrying about their reactions.",
	"I seek logical consistency in arguments and am quick to point out flaws.",
	"I consider myself reasonable and level-headed more than compassionate and warm.",
	"I believe efficiency is more important than harmonious relationships.",
	"I tend to analyze situations before considering how others might feel.",
	// JP
	"I prefer having a detailed plan before starting a project.",
	"I feel stressed when things are disorganized or unstructured.",
	"I like to finish one project completely before starting another.",
	"I prefer clear deadlines and tend to complete work ahead of schedule.",
	"I find it satisfying to check items off my to-do list.",
	"I prefer to have things settled and decided rather than open-ended.",
	"I keep my living and working spaces neat and organized.",
	"I like to have a structured schedule and routine.",
	"I prefer to plan social activities in advance rather than be spontaneous.",
	"I find it important to follow established rules and procedures.",
}

// Sections returns the survey split into its four ten-question sections.
func Sections() []Section {
	out := make([]Section, 0, len(Dichotomies))
	for g, d := range Dichotomies {
		s := Section{Title: d.Title, Questions: make([]Question, 0, GroupSize)}
		for i := g * GroupSize; i < (g+1)*GroupSize; i++ {
			s.Questions = append(s.Questions, Question{ID: i + 1, Text: questions[i], Dichotomy: d.Key})
		}
		out = append(out, s)
	}
	return out
}
