package cli

// ExampleMessages are sample messages offered by the examples command and the
// interactive screen.
var ExampleMessages = []string{
	"You have been selected to earn $5000 per week working from home. No investment required. Call now!",
	"Congratulations! You have won a brand new iPhone 15. Click the link to claim your prize.",
	"Your account will be suspended. Verify your bank details immediately.",
	"Hey, are we still meeting for coffee tomorrow?",
	"Mom asked if you could bring some milk on your way back home.",
}

// Example returns the 1-based example n.
func Example(n int) (string, bool) {
	if n < 1 || n > len(ExampleMessages) {
		return "", false
	}
	return ExampleMessages[n-1], true
}
