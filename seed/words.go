package seed

// Word lists feeding username, group-name and message-body sampling.
// Pure data; the sampling logic lives in scale.go.

var firstNames = []string{
	"alex", "sam", "jordan", "taylor", "casey", "morgan", "riley", "avery",
	"jamie", "drew", "blake", "sage", "quinn", "rowan", "phoenix", "river",
	"skylar", "dakota", "cameron", "emery", "hayden", "kendall", "logan",
	"parker", "reese", "charlie", "finley", "harper", "indigo", "justice",
	"kai", "lane", "marley", "nova", "ocean", "peyton", "raven", "scout",
	"storm", "tate", "val", "wren", "zion", "aria", "brook", "cleo", "dani",
	"echo", "fern", "gray", "iris", "jade", "knox", "luna", "max", "noel",
	"onyx", "rain", "true", "vega", "west", "yale", "zen",
}

var nameSuffixes = []string{
	"dev", "code", "tech", "pro", "user", "chat", "msg", "talk", "comm",
	"link", "net", "web", "app", "sys", "hub", "lab", "box", "bit", "byte",
	"data", "info", "core", "sync", "flow", "stream", "pulse", "wave",
	"spark", "bolt", "dash", "zoom", "ping", "echo", "beam", "glow", "nova",
	"star", "moon", "sun", "sky", "cloud", "storm", "wind",
}

var teamTypes = []string{"Team", "Squad", "Crew", "Group", "Circle", "Club", "Gang"}

var projects = []string{
	"Alpha", "Beta", "Gamma", "Phoenix", "Storm", "Thunder", "Lightning", "Rocket",
}

var departments = []string{
	"Engineering", "Design", "Marketing", "Sales", "Support", "DevOps", "QA", "Product",
}

var casualGroups = []string{
	"Coffee Chat", "Random", "General", "Watercooler", "Lunch Crew",
	"Gaming", "Music", "Books",
}

var messageTemplates = []string{
	"Hey everyone! How's it going?",
	"Just finished the meeting, here are the key points:",
	"Can someone help me with this issue?",
	"Great work on the latest update!",
	"I'll be out of office tomorrow",
	"Let's schedule a quick sync",
	"Thanks for the quick response",
	"Looking forward to the presentation",
	"The deployment went smoothly",
	"Anyone free for a coffee break?",
	"I've updated the documentation",
	"The test results look good",
	"We should discuss this further",
	"I'll send the details via email",
	"Perfect timing on that fix",
	"The client feedback was positive",
	"Let me know if you need anything",
	"I'm working on the new feature",
	"The performance improvements are noticeable",
	"Good catch on that bug!",
	"I'll review the code changes",
	"The integration is working well",
	"We're ahead of schedule",
	"I'll handle the deployment",
	"Thanks for the collaboration",
	"The design looks fantastic",
	"I've tested the new functionality",
	"Let's wrap up this sprint",
	"The metrics are looking positive",
	"I'll coordinate with the team",
}
