package assistant

import (
	"fmt"
	"regexp"
	"strings"
)

// Keyword rules matched in order; the first hit answers.
var localRules = []struct {
	pattern *regexp.Regexp
	reply   string
}{
	{
		regexp.MustCompile(`(?i)\b(hi|hello|hey|hola|namaste|good morning|good afternoon)\b`),
		"Hello! 👋 I'm BuddyBot, the HireBuddy assistant. I can help you with booking local buddies, understanding credits, and finding the right service.",
	},
	{
		regexp.MustCompile(`(?i)(find|search|look for|get).*budd(y|ies)`),
		"Finding a buddy is easy: browse buddies by location and expertise, check their availability, and send a booking request for your date. You can chat inside the booking once it's placed.",
	},
	{
		regexp.MustCompile(`(?i)\b(book|booking|reserve|schedule|hire)\b`),
		"How to book: 1) search buddies by service and location, 2) pick a date, 3) send the request, 4) wait for the buddy to confirm. You'll see the status under your bookings.",
	},
	{
		regexp.MustCompile(`(?i)\b(price|cost|credit|credits|money|pay)\b`),
		"You get 3 free credits when you join, and every verified payment tops up 10 more. No hidden fees.",
	},
	{
		regexp.MustCompile(`(?i)(service|what can|help with)`),
		"HireBuddy offers travel companions, apartment hunting help, airport and station pickups, shopping buddies, local guides, and more.",
	},
}

func localReply(message string) string {
	text := strings.TrimSpace(message)
	for _, rule := range localRules {
		if rule.pattern.MatchString(text) {
			return rule.reply
		}
	}
	return fmt.Sprintf("I'd love to help you with %q! You can ask me about booking, pricing, services, or becoming a buddy — or contact support for anything else.", text)
}
