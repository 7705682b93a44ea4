// Package icons maps bookmark URLs to Font Awesome icon classes.
package icons

import "strings"

// DefaultIcon is used when no rule matches.
const DefaultIcon = "fas fa-link"

// Rule maps a URL substring to an icon class.
type Rule struct {
	Keyword string `yaml:"keyword" json:"keyword"`
	Icon    string `yaml:"icon" json:"icon"`
}

// DefaultRules is the built-in table. Order matters: the first rule whose
// keyword appears in the URL wins, so "google.com" shadows
// "drive.google.com" and "javascript" shadows "java".
var DefaultRules = []Rule{
	{"github.com", "fab fa-github"},
	{"stackoverflow.com", "fab fa-stack-overflow"},
	{"youtube.com", "fab fa-youtube"},
	{"twitter.com", "fab fa-twitter"},
	{"facebook.com", "fab fa-facebook"},
	{"instagram.com", "fab fa-instagram"},
	{"linkedin.com", "fab fa-linkedin"},
	{"reddit.com", "fab fa-reddit"},
	{"amazon.com", "fab fa-amazon"},
	{"google.com", "fab fa-google"},
	{"gmail.com", "fas fa-envelope"},
	{"drive.google.com", "fab fa-google-drive"},
	{"docs.google.com", "fas fa-file-alt"},
	{"medium.com", "fab fa-medium"},
	{"dev.to", "fab fa-dev"},
	{"gitlab.com", "fab fa-gitlab"},
	{"bitbucket.org", "fab fa-bitbucket"},
	{"wikipedia.org", "fab fa-wikipedia-w"},
	{"discord.com", "fab fa-discord"},
	{"slack.com", "fab fa-slack"},
	{"apple.com", "fab fa-apple"},
	{"microsoft.com", "fab fa-microsoft"},
	{"android.com", "fab fa-android"},
	{"twitch.tv", "fab fa-twitch"},
	{"spotify.com", "fab fa-spotify"},
	{"pinterest.com", "fab fa-pinterest"},
	{"telegram.org", "fab fa-telegram"},
	{"whatsapp.com", "fab fa-whatsapp"},
	{"netflix.com", "fas fa-film"},
	{"trello.com", "fab fa-trello"},
	{"wordpress.com", "fab fa-wordpress"},
	{"jira", "fab fa-jira"},
	{"atlassian.com", "fab fa-atlassian"},
	{"dropbox.com", "fab fa-dropbox"},
	{"npm", "fab fa-npm"},
	{"docker.com", "fab fa-docker"},
	{"python.org", "fab fa-python"},
	{"javascript", "fab fa-js"},
	{"php.net", "fab fa-php"},
	{"java", "fab fa-java"},
	{"codepen.io", "fab fa-codepen"},
	{"behance.net", "fab fa-behance"},
	{"dribbble.com", "fab fa-dribbble"},
	{"tumblr.com", "fab fa-tumblr"},
	{"vimeo.com", "fab fa-vimeo"},
	{"flickr.com", "fab fa-flickr"},
	{"github.io", "fab fa-github"},
	{"airbnb.com", "fab fa-airbnb"},
	{"bitcoin", "fab fa-bitcoin"},
	{"paypal.com", "fab fa-paypal"},
	{"ethereum", "fab fa-ethereum"},
	{"steam", "fab fa-steam"},
}

// Resolver looks up icons in an ordered rule table.
type Resolver struct {
	rules    []Rule
	fallback string
}

// New returns a resolver over rules. An empty fallback means DefaultIcon.
func New(rules []Rule, fallback string) *Resolver {
	if fallback == "" {
		fallback = DefaultIcon
	}
	return &Resolver{
		rules:    append([]Rule(nil), rules...),
		fallback: fallback,
	}
}

// Default returns a resolver over DefaultRules.
func Default() *Resolver {
	return New(DefaultRules, DefaultIcon)
}

// Resolve returns the icon of the first rule whose keyword occurs in url.
func (r *Resolver) Resolve(url string) string {
	for _, rule := range r.rules {
		if rule.Keyword != "" && strings.Contains(url, rule.Keyword) {
			return rule.Icon
		}
	}
	return r.fallback
}
