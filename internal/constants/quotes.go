package constants

// Quotes rotates once per day on the dashboard.
var Quotes = []string{
	"The secret of getting ahead is getting started.",
	"It does not matter how slowly you go as long as you do not stop.",
	"Success is the sum of small efforts repeated day in and day out.",
	"The expert in anything was once a beginner.",
	"Education is the most powerful weapon you can use to change the world.",
	"The beautiful thing about learning is that nobody can take it away from you.",
	"Push yourself, because no one else is going to do it for you.",
	"Dream big. Start small. Act now.",
	"Your limitation is only your imagination.",
	"Great things never come from comfort zones.",
	"Discipline is the bridge between goals and accomplishment.",
	"The only way to do great work is to love what you do.",
}
