package catalog

import "github.com/ppiankov/crosscheck/internal/model"

// defaultSources is the built-in outlet list
var defaultSources = []model.Source{
	// Left-leaning
	{Name: "NPR", Domain: "npr.org", Category: model.CategoryLeft, CredibilityScore: 92,
		SearchURL: "https://www.npr.org/search?query=", FeedURL: "https://feeds.npr.org/1001/rss.xml"},
	{Name: "The Guardian", Domain: "theguardian.com", Category: model.CategoryLeft, CredibilityScore: 89,
		SearchURL: "https://www.theguardian.com/us/search?q=", FeedURL: "https://www.theguardian.com/us/rss"},
	{Name: "Vox", Domain: "vox.com", Category: model.CategoryLeft, CredibilityScore: 85,
		SearchURL: "https://www.vox.com/search?q=", FeedURL: "https://www.vox.com/rss/index.xml"},
	{Name: "CNN", Domain: "cnn.com", Category: model.CategoryLeft, CredibilityScore: 83,
		SearchURL: "https://www.cnn.com/search?q="},
	{Name: "MSNBC", Domain: "msnbc.com", Category: model.CategoryLeft, CredibilityScore: 80,
		SearchURL: "https://www.msnbc.com/search/?q="},

	// Center
	{Name: "Reuters", Domain: "reuters.com", Category: model.CategoryCenter, CredibilityScore: 96,
		SearchURL: "https://www.reuters.com/site-search/?query="},
	{Name: "Associated Press", Domain: "apnews.com", Category: model.CategoryCenter, CredibilityScore: 95,
		SearchURL: "https://apnews.com/search?q="},
	{Name: "BBC News", Domain: "bbc.com", Category: model.CategoryCenter, CredibilityScore: 94,
		SearchURL: "https://www.bbc.com/search?q=", FeedURL: "https://feeds.bbci.co.uk/news/rss.xml"},
	{Name: "PBS NewsHour", Domain: "pbs.org", Category: model.CategoryCenter, CredibilityScore: 90,
		SearchURL: "https://www.pbs.org/search/?q=", FeedURL: "https://www.pbs.org/newshour/feeds/rss/headlines"},
	{Name: "Axios", Domain: "axios.com", Category: model.CategoryCenter, CredibilityScore: 88,
		SearchURL: "https://www.axios.com/search?q="},
	{Name: "Politico", Domain: "politico.com", Category: model.CategoryCenter, CredibilityScore: 86,
		SearchURL: "https://www.politico.com/search?q=", FeedURL: "https://rss.politico.com/politics-news.xml"},
	{Name: "The Hill", Domain: "thehill.com", Category: model.CategoryCenter, CredibilityScore: 84,
		SearchURL: "https://thehill.com/search/?q=", FeedURL: "https://thehill.com/feed/"},

	// Right-leaning
	{Name: "Wall Street Journal", Domain: "wsj.com", Category: model.CategoryRight, CredibilityScore: 87,
		SearchURL: "https://www.wsj.com/search?query="},
	{Name: "Fox News", Domain: "foxnews.com", Category: model.CategoryRight, CredibilityScore: 78,
		SearchURL: "https://www.foxnews.com/search-results/search?q=", FeedURL: "https://moxie.foxnews.com/google-publisher/latest.xml"},
	{Name: "New York Post", Domain: "nypost.com", Category: model.CategoryRight, CredibilityScore: 75,
		SearchURL: "https://nypost.com/search/", FeedURL: "https://nypost.com/feed/"},
	{Name: "Washington Examiner", Domain: "washingtonexaminer.com", Category: model.CategoryRight, CredibilityScore: 73,
		SearchURL: "https://www.washingtonexaminer.com/search?q="},
	{Name: "The American Conservative", Domain: "theamericanconservative.com", Category: model.CategoryRight, CredibilityScore: 76,
		SearchURL: "https://www.theamericanconservative.com/search/?q="},
	{Name: "Daily Wire", Domain: "dailywire.com", Category: model.CategoryRight, CredibilityScore: 70,
		SearchURL: "https://www.dailywire.com/search?q="},

	// International
	{Name: "Al Jazeera", Domain: "aljazeera.com", Category: model.CategoryInternational, CredibilityScore: 83,
		SearchURL: "https://www.aljazeera.com/search/", FeedURL: "https://www.aljazeera.com/xml/rss/all.xml"},
	{Name: "Deutsche Welle", Domain: "dw.com", Category: model.CategoryInternational, CredibilityScore: 88,
		SearchURL: "https://www.dw.com/search/?q=", FeedURL: "https://rss.dw.com/rdf/rss-en-all"},
	{Name: "France24", Domain: "france24.com", Category: model.CategoryInternational, CredibilityScore: 85,
		SearchURL: "https://www.france24.com/en/search/?q=", FeedURL: "https://www.france24.com/en/rss"},

	// Fact-checkers
	{Name: "FactCheck.org", Domain: "factcheck.org", Category: model.CategoryFactCheck, CredibilityScore: 94,
		SearchURL: "https://www.factcheck.org/search/?q=", FeedURL: "https://www.factcheck.org/feed/"},
	{Name: "Snopes", Domain: "snopes.com", Category: model.CategoryFactCheck, CredibilityScore: 92,
		SearchURL: "https://www.snopes.com/search/?q=", FeedURL: "https://www.snopes.com/feed/"},
	{Name: "PolitiFact", Domain: "politifact.com", Category: model.CategoryFactCheck, CredibilityScore: 90,
		SearchURL: "https://www.politifact.com/search/?q=", FeedURL: "https://www.politifact.com/rss/all/"},

	// Fringe: selected only on request, annotated in results
	{Name: "The Onion", Domain: "theonion.com", Category: model.CategoryFringe, CredibilityScore: 30,
		SearchURL: "https://www.theonion.com/search?q=", WarningLabel: "Satire publication"},
	{Name: "The Babylon Bee", Domain: "babylonbee.com", Category: model.CategoryFringe, CredibilityScore: 30,
		SearchURL: "https://babylonbee.com/search?q=", WarningLabel: "Satire publication"},
	{Name: "InfoWars", Domain: "infowars.com", Category: model.CategoryFringe, CredibilityScore: 15,
		SearchURL: "https://www.infowars.com/search?q=", WarningLabel: "Frequently publishes conspiracy theories"},
}
