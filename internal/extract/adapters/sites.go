package adapters

var builtinSites = []Adapter{
	NewSiteAdapter("npr", []string{"npr.org"}, ".storytext", "#storytext"),
	NewSiteAdapter("reuters", []string{"reuters.com"}, `[data-testid="ArticleBody"]`, ".article-body__content", ".Article"),
	NewSiteAdapter("bbc", []string{"bbc.com", "bbc.co.uk"}, `[data-component="text-block"]`, ".story-body__inner"),
	NewSiteAdapter("apnews", []string{"apnews.com"}, ".RichTextStoryBody", ".Article"),
	NewSiteAdapter("guardian", []string{"theguardian.com"}, `[data-gu-name="body"]`, ".article-body-commercial-selector"),
	NewSiteAdapter("cnn", []string{"cnn.com"}, ".article__content", ".zn-body__paragraph"),
	NewSiteAdapter("nytimes", []string{"nytimes.com"}, `section[name="articleBody"]`),
	NewSiteAdapter("foxnews", []string{"foxnews.com"}, ".article-body"),
	NewSiteAdapter("aljazeera", []string{"aljazeera.com"}, ".wysiwyg", ".article-p-wrapper"),
}
