package main

var builtinCatalogue = []SeedResource{
	{Title: "MDN Web Docs: JavaScript Guide", URL: "https://developer.mozilla.org/en-US/docs/Web/JavaScript/Guide", Category: "frontend", Description: "Core language reference for front-end interviews."},
	{Title: "React documentation", URL: "https://react.dev/learn", Category: "frontend", Description: "Components, state and hooks from the official docs."},
	{Title: "web.dev Learn CSS", URL: "https://web.dev/learn/css", Category: "frontend", Description: "Layout, the cascade and responsive design."},
	{Title: "The Twelve-Factor App", URL: "https://12factor.net", Category: "backend", Description: "Principles for building deployable services."},
	{Title: "Use The Index, Luke", URL: "https://use-the-index-luke.com", Category: "backend", Description: "SQL indexing and query performance."},
	{Title: "Full Stack Open", URL: "https://fullstackopen.com/en/", Category: "fullstack", Description: "End-to-end web development course."},
	{Title: "The STAR method explained", URL: "https://www.themuse.com/advice/star-interview-method", Category: "behavioral", Description: "Structuring answers to behavioural questions."},
	{Title: "NeetCode roadmap", URL: "https://neetcode.io/roadmap", Category: "dsa", Description: "Problem patterns ordered by topic."},
	{Title: "VisuAlgo", URL: "https://visualgo.net/en", Category: "dsa", Description: "Animated data structures and algorithms."},
	{Title: "System Design Primer", URL: "https://github.com/donnemartin/system-design-primer", Category: "system", Description: "Scalability concepts and worked designs."},
	{Title: "High Scalability", URL: "http://highscalability.com", Category: "system", Description: "Architecture write-ups from production systems."},
	{Title: "Common HR interview questions", URL: "https://www.indeed.com/career-advice/interviewing/top-interview-questions-and-answers", Category: "hr", Description: "Typical screening questions and sample answers."},
	{Title: "Tech Interview Handbook", URL: "https://www.techinterviewhandbook.org", Category: "technical", Description: "Preparation guide covering the whole interview loop."},
}
