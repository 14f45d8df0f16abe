package catalog

// templates is the fixed app archetype gallery. Each template pre-fills the
// idea text and every clarifying answer so a user can skip straight to
// generation.
var templates = []Template{
	{
		ID:          "task_tracker",
		Name:        "Task Tracker",
		Category:    "Productivity",
		Description: "A personal to-do and project tracker with lists, due dates, and progress views.",
		Icon:        "checklist",
		IdeaText: "A task management app where users create projects, add tasks with " +
			"due dates and priorities, organize them into lists, and track completion " +
			"progress over time with simple charts.",
		PrefilledAnswers: map[string]PrefilledAnswer{
			"target_audience": {Value: "professionals", Explanation: "Work-focused users who value efficiency, integrations, and team features over visual flair."},
			"platform":        {Value: "web", Explanation: "Reachable from any device without installation, the fastest path to a first usable version."},
			"core_feature":    {Value: "create_content", Explanation: "Users produce and manage their own items: notes, posts, tasks, listings, or media."},
			"accounts":        {Value: "email_password", Explanation: "Classic account creation that works everywhere and keeps the stack simple."},
			"data_storage":    {Value: "user_records", Explanation: "Profiles, items, and relationships that fit naturally in a relational database."},
			"design_style":    {Value: "clean_minimal", Explanation: "Generous whitespace, restrained color, and typography-led layouts that stay out of the way."},
		},
		Features: []string{"Projects and lists", "Due dates and reminders", "Progress charts", "Drag-and-drop ordering"},
	},
	{
		ID:          "habit_coach",
		Name:        "Habit Coach",
		Category:    "Health & Wellness",
		Description: "A daily habit tracker with streaks, reminders, and gentle coaching nudges.",
		Icon:        "spark",
		IdeaText: "A habit tracking app where users define daily or weekly habits, check " +
			"them off each day, maintain streaks, and get encouraging reminders and a " +
			"weekly review of their consistency.",
		PrefilledAnswers: map[string]PrefilledAnswer{
			"target_audience": {Value: "general_consumers", Explanation: "A broad public audience with varied technical comfort, favoring simple onboarding and familiar patterns."},
			"platform":        {Value: "mobile", Explanation: "An installed iOS/Android experience with offline access and push notifications."},
			"core_feature":    {Value: "track_progress", Explanation: "Users log entries and review trends, streaks, or dashboards built from their history."},
			"accounts":        {Value: "magic_link", Explanation: "Email a one-time sign-in link so users never manage a password."},
			"data_storage":    {Value: "user_records", Explanation: "Profiles, items, and relationships that fit naturally in a relational database."},
			"design_style":    {Value: "warm_friendly", Explanation: "Soft shapes, friendly copy, and gentle colors suited to consumer and wellness products."},
		},
		Features: []string{"Daily check-ins", "Streak tracking", "Reminder notifications", "Weekly reviews"},
	},
	{
		ID:          "local_marketplace",
		Name:        "Local Marketplace",
		Category:    "Commerce",
		Description: "A neighborhood buy-and-sell marketplace with listings, chat, and offers.",
		Icon:        "storefront",
		IdeaText: "A local marketplace app where users post items for sale with photos " +
			"and prices, browse listings near them, message sellers, and agree on a " +
			"pickup or delivery.",
		PrefilledAnswers: map[string]PrefilledAnswer{
			"target_audience": {Value: "general_consumers", Explanation: "A broad public audience with varied technical comfort, favoring simple onboarding and familiar patterns."},
			"platform":        {Value: "both", Explanation: "A responsive web app first, packaged for mobile later, sharing one codebase where possible."},
			"core_feature":    {Value: "buy_sell", Explanation: "Users complete transactions: payments, orders, reservations, or subscriptions."},
			"accounts":        {Value: "social_login", Explanation: "Sign in with Google, Apple, or a workplace identity to remove signup friction."},
			"data_storage":    {Value: "files_media", Explanation: "Images, documents, audio, or video that need object storage and upload handling."},
			"design_style":    {Value: "bold_playful", Explanation: "Saturated colors, illustration, and motion that give the product personality."},
		},
		Features: []string{"Photo listings", "Location-based browsing", "In-app messaging", "Offer negotiation"},
	},
	{
		ID:          "study_buddy",
		Name:        "Study Buddy",
		Category:    "Education",
		Description: "A flashcard and study-session app with spaced repetition and shared decks.",
		Icon:        "book",
		IdeaText: "A study app where students create flashcard decks, review them with " +
			"spaced repetition, track what they have mastered, and share decks with " +
			"classmates.",
		PrefilledAnswers: map[string]PrefilledAnswer{
			"target_audience": {Value: "students", Explanation: "Learning-oriented users who benefit from structure, progress tracking, and low-cost access."},
			"platform":        {Value: "both", Explanation: "A responsive web app first, packaged for mobile later, sharing one codebase where possible."},
			"core_feature":    {Value: "track_progress", Explanation: "Users log entries and review trends, streaks, or dashboards built from their history."},
			"accounts":        {Value: "social_login", Explanation: "Sign in with Google, Apple, or a workplace identity to remove signup friction."},
			"data_storage":    {Value: "user_records", Explanation: "Profiles, items, and relationships that fit naturally in a relational database."},
			"design_style":    {Value: "warm_friendly", Explanation: "Soft shapes, friendly copy, and gentle colors suited to consumer and wellness products."},
		},
		Features: []string{"Flashcard decks", "Spaced repetition", "Mastery tracking", "Deck sharing"},
	},
	{
		ID:          "team_wiki",
		Name:        "Team Wiki",
		Category:    "Collaboration",
		Description: "An internal knowledge base with pages, search, and lightweight permissions.",
		Icon:        "library",
		IdeaText: "An internal wiki where team members write and organize documentation " +
			"pages, link them together, search across everything, and control who can " +
			"edit each space.",
		PrefilledAnswers: map[string]PrefilledAnswer{
			"target_audience": {Value: "internal_team", Explanation: "A known group of users behind a login, where consistency matters more than acquisition."},
			"platform":        {Value: "web", Explanation: "Reachable from any device without installation, the fastest path to a first usable version."},
			"core_feature":    {Value: "create_content", Explanation: "Users produce and manage their own items: notes, posts, tasks, listings, or media."},
			"accounts":        {Value: "social_login", Explanation: "Sign in with Google, Apple, or a workplace identity to remove signup friction."},
			"data_storage":    {Value: "user_records", Explanation: "Profiles, items, and relationships that fit naturally in a relational database."},
			"design_style":    {Value: "professional", Explanation: "Information-rich dashboards and tables tuned for daily work rather than first impressions."},
		},
		Features: []string{"Rich-text pages", "Full-text search", "Space permissions", "Page history"},
	},
	{
		ID:          "event_meetup",
		Name:        "Event Meetup",
		Category:    "Social",
		Description: "A community event app with RSVPs, group chat, and event discovery.",
		Icon:        "calendar",
		IdeaText: "A community events app where organizers create events with dates and " +
			"locations, members RSVP and chat in an event thread, and everyone discovers " +
			"upcoming events near them.",
		PrefilledAnswers: map[string]PrefilledAnswer{
			"target_audience": {Value: "general_consumers", Explanation: "A broad public audience with varied technical comfort, favoring simple onboarding and familiar patterns."},
			"platform":        {Value: "mobile", Explanation: "An installed iOS/Android experience with offline access and push notifications."},
			"core_feature":    {Value: "connect_people", Explanation: "Users find, message, or collaborate with others; the network is the product."},
			"accounts":        {Value: "email_password", Explanation: "Classic account creation that works everywhere and keeps the stack simple."},
			"data_storage":    {Value: "realtime", Explanation: "Chat, presence, or collaborative state that must sync between users in real time."},
			"design_style":    {Value: "bold_playful", Explanation: "Saturated colors, illustration, and motion that give the product personality."},
		},
		Features: []string{"Event creation", "RSVP management", "Event chat", "Nearby discovery"},
	},
}

// Templates returns the full template gallery in display order.
func Templates() []Template {
	return templates
}

// FindTemplate returns the template with the given id.
func FindTemplate(id string) (*Template, error) {
	for i := range templates {
		if templates[i].ID == id {
			return &templates[i], nil
		}
	}
	return nil, ErrTemplateNotFound
}

// Categories returns the distinct template categories in display order.
func Categories() []string {
	seen := make(map[string]struct{}, len(templates))
	categories := make([]string, 0, len(templates))
	for _, t := range templates {
		if _, ok := seen[t.Category]; ok {
			continue
		}
		seen[t.Category] = struct{}{}
		categories = append(categories, t.Category)
	}
	return categories
}
