package sandbox

import "time"

// Demo credentials accepted by the sandbox.
const (
	DemoEmail    = "demo@espectro.app"
	DemoPassword = "espectro-demo"
)

type account struct {
	id       string
	name     string
	email    string
	password string
	role     string
}

type article struct {
	id         string
	authorID   string
	authorName string
	title      string
	summary    string
	content    string
	category   string
	tags       []string
	likes      int
	favorites  int
	comments   int
	createdAt  time.Time
}

type activity struct {
	id              string
	authorID        string
	authorName      string
	title           string
	description     string
	category        string
	difficulty      string
	durationMinutes int
	materials       []string
	likes           int
	favorites       int
	comments        int
	createdAt       time.Time
}

func seedAccounts() []account {
	return []account{
		{id: "u-demo", name: "Demo Caregiver", email: DemoEmail, password: DemoPassword, role: "caregiver"},
		{id: "u-pro", name: "Dr. Lucía Romero", email: "lucia@espectro.app", password: "espectro-pro", role: "professional"},
	}
}

func seedArticles(now time.Time) []*article {
	return []*article{
		{
			id: "art-1", authorID: "u-pro", authorName: "Dr. Lucía Romero",
			title:    "Visual schedules at home",
			summary:  "How picture-based routines reduce transition stress.",
			content:  "Visual schedules break the day into predictable steps. Start with three pictures for the morning routine and add more once the sequence is familiar.",
			category: "routines", tags: []string{"visual-supports", "routines"},
			likes: 5, favorites: 2, comments: 1,
			createdAt: now.Add(-72 * time.Hour),
		},
		{
			id: "art-2", authorID: "u-pro", authorName: "Dr. Lucía Romero",
			title:    "Understanding sensory overload",
			summary:  "Signs to watch for and how to build a calm corner.",
			content:  "Sensory overload shows up as covering ears, running off or shutting down. A calm corner with low light and a weighted blanket gives a predictable place to recover.",
			category: "sensory", tags: []string{"sensory", "regulation"},
			likes: 12, favorites: 7,
			createdAt: now.Add(-30 * time.Hour),
		},
		{
			id: "art-3", authorID: "u-pro", authorName: "Dr. Lucía Romero",
			title:    "Getting started with AAC",
			summary:  "Augmentative and alternative communication for nonverbal children.",
			content:  "AAC ranges from picture exchange to speech-generating devices. Model the device yourself during everyday activities instead of quizzing.",
			category: "communication", tags: []string{"aac", "communication"},
			likes: 3,
			createdAt: now.Add(-5 * time.Hour),
		},
	}
}

func seedActivities(now time.Time) []*activity {
	return []*activity{
		{
			id: "act-1", authorID: "u-pro", authorName: "Dr. Lucía Romero",
			title:       "Sensory bin exploration",
			description: "Fill a tub with rice and hide small toys to find.",
			category:    "sensory", difficulty: "easy", durationMinutes: 20,
			materials: []string{"plastic tub", "dry rice", "small toys"},
			likes:     4, favorites: 1,
			createdAt: now.Add(-48 * time.Hour),
		},
		{
			id: "act-2", authorID: "u-pro", authorName: "Dr. Lucía Romero",
			title:       "Turn-taking board game",
			description: "Practice waiting and turn-taking with a simple dice game.",
			category:    "social", difficulty: "medium", durationMinutes: 30,
			materials: []string{"board game", "large dice", "turn card"},
			likes:     2, comments: 2,
			createdAt: now.Add(-20 * time.Hour),
		},
		{
			id: "act-3", authorID: "u-pro", authorName: "Dr. Lucía Romero",
			title:       "Emotion charades",
			description: "Act out and name feelings using picture cards.",
			category:    "social", difficulty: "hard", durationMinutes: 25,
			materials: []string{"emotion picture cards"},
			createdAt: now.Add(-2 * time.Hour),
		},
	}
}
