package catalog

// questions is the fixed ordered clarifying question set used when
// AI-generated questions are unavailable or disabled.
var questions = []QuestionDefinition{
	{
		ID:       "target_audience",
		Question: "Who is the primary audience for your app?",
		Kind:     KindBoth,
		Options: []QuestionOption{
			{
				Value:       "general_consumers",
				Label:       "General consumers",
				Explanation: "A broad public audience with varied technical comfort, favoring simple onboarding and familiar patterns.",
			},
			{
				Value:       "professionals",
				Label:       "Business professionals",
				Explanation: "Work-focused users who value efficiency, integrations, and team features over visual flair.",
			},
			{
				Value:       "students",
				Label:       "Students and educators",
				Explanation: "Learning-oriented users who benefit from structure, progress tracking, and low-cost access.",
			},
			{
				Value:       "internal_team",
				Label:       "An internal team or organization",
				Explanation: "A known group of users behind a login, where consistency matters more than acquisition.",
			},
		},
		Placeholder: "Describe who will use your app...",
		AllowCustom: true,
	},
	{
		ID:       "platform",
		Question: "Where should your app run first?",
		Kind:     KindBoth,
		Options: []QuestionOption{
			{
				Value:       "web",
				Label:       "Web browser",
				Explanation: "Reachable from any device without installation, the fastest path to a first usable version.",
			},
			{
				Value:       "mobile",
				Label:       "Mobile app",
				Explanation: "An installed iOS/Android experience with offline access and push notifications.",
			},
			{
				Value:       "both",
				Label:       "Web and mobile",
				Explanation: "A responsive web app first, packaged for mobile later, sharing one codebase where possible.",
			},
			{
				Value:       "desktop",
				Label:       "Desktop application",
				Explanation: "An installed desktop tool for heavier workflows, file access, or long-running sessions.",
			},
		},
		Placeholder: "Describe your target platform...",
		AllowCustom: true,
	},
	{
		ID:       "core_feature",
		Question: "What is the single most important thing a user does in your app?",
		Kind:     KindBoth,
		Options: []QuestionOption{
			{
				Value:       "create_content",
				Label:       "Create and organize content",
				Explanation: "Users produce and manage their own items: notes, posts, tasks, listings, or media.",
			},
			{
				Value:       "track_progress",
				Label:       "Track progress or data over time",
				Explanation: "Users log entries and review trends, streaks, or dashboards built from their history.",
			},
			{
				Value:       "connect_people",
				Label:       "Connect with other people",
				Explanation: "Users find, message, or collaborate with others; the network is the product.",
			},
			{
				Value:       "buy_sell",
				Label:       "Buy, sell, or book something",
				Explanation: "Users complete transactions: payments, orders, reservations, or subscriptions.",
			},
		},
		Placeholder: "Describe the core action in your app...",
		AllowCustom: true,
	},
	{
		ID:       "accounts",
		Question: "How should users sign in?",
		Kind:     KindBoth,
		Options: []QuestionOption{
			{
				Value:       "email_password",
				Label:       "Email and password",
				Explanation: "Classic account creation that works everywhere and keeps the stack simple.",
			},
			{
				Value:       "social_login",
				Label:       "Social or single sign-on",
				Explanation: "Sign in with Google, Apple, or a workplace identity to remove signup friction.",
			},
			{
				Value:       "magic_link",
				Label:       "Passwordless magic links",
				Explanation: "Email a one-time sign-in link so users never manage a password.",
			},
			{
				Value:       "no_accounts",
				Label:       "No accounts needed",
				Explanation: "Anonymous usage with optional accounts later; lowest barrier to first value.",
			},
		},
		Placeholder: "Describe how users should authenticate...",
		AllowCustom: true,
	},
	{
		ID:       "data_storage",
		Question: "What kind of data does your app need to keep?",
		Kind:     KindBoth,
		Options: []QuestionOption{
			{
				Value:       "user_records",
				Label:       "Structured user records",
				Explanation: "Profiles, items, and relationships that fit naturally in a relational database.",
			},
			{
				Value:       "files_media",
				Label:       "Files and media",
				Explanation: "Images, documents, audio, or video that need object storage and upload handling.",
			},
			{
				Value:       "realtime",
				Label:       "Live, frequently changing data",
				Explanation: "Chat, presence, or collaborative state that must sync between users in real time.",
			},
			{
				Value:       "minimal",
				Label:       "Very little",
				Explanation: "Mostly stateless: a few settings or a small amount of local data per user.",
			},
		},
		Placeholder: "Describe the data your app manages...",
		AllowCustom: true,
	},
	{
		ID:       "design_style",
		Question: "What look and feel fits your app best?",
		Kind:     KindBoth,
		Options: []QuestionOption{
			{
				Value:       "clean_minimal",
				Label:       "Clean and minimal",
				Explanation: "Generous whitespace, restrained color, and typography-led layouts that stay out of the way.",
			},
			{
				Value:       "bold_playful",
				Label:       "Bold and playful",
				Explanation: "Saturated colors, illustration, and motion that give the product personality.",
			},
			{
				Value:       "professional",
				Label:       "Professional and dense",
				Explanation: "Information-rich dashboards and tables tuned for daily work rather than first impressions.",
			},
			{
				Value:       "warm_friendly",
				Label:       "Warm and approachable",
				Explanation: "Soft shapes, friendly copy, and gentle colors suited to consumer and wellness products.",
			},
		},
		Placeholder: "Describe the visual style you want...",
		AllowCustom: true,
	},
}

// Questions returns the fixed clarifying question set in order.
func Questions() []QuestionDefinition {
	return questions
}
