package fetch

import (
	"net/url"
	"strings"
)

// Platform is a job board family with known page markup.
type Platform string

// Known platforms.
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformLinkedIn   Platform = "linkedin"
	PlatformUnknown    Platform = "unknown"
)

var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"linkedin.com", PlatformLinkedIn},
}

// DetectPlatform identifies the job board from a URL's host.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// genericContainers are tried on every page after any platform-specific selectors.
var genericContainers = []string{
	`[data-testid="job-details"]`,
	".job-description",
	"#job-description",
	`[class*="JobDescription"]`,
	`[class*="jobDescription"]`,
	".description",
	"#content",
}

// ContainerSelectors returns the job description container selectors for a platform,
// most specific first.
func ContainerSelectors(platform Platform) []string {
	var specific []string
	switch platform {
	case PlatformGreenhouse:
		specific = []string{".job__description", ".job-post-content", "#content"}
	case PlatformLever:
		specific = []string{".posting-page .section-wrapper", ".posting-description"}
	case PlatformWorkday:
		specific = []string{`[data-automation-id="jobPostingDescription"]`, `[data-automation-id="jobDescription"]`}
	case PlatformLinkedIn:
		specific = []string{".show-more-less-html__markup", ".description__text"}
	}
	return append(specific, genericContainers...)
}

// noiseSelectors are removed before any text is extracted.
var noiseSelectors = []string{
	"script", "style", "noscript", "iframe", "svg", "button", "input", "form",
	"nav", "header", "footer", `[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`,
	".cookie-banner", "#cookie-banner", ".modal", ".popup", ".sidebar", ".ad", ".ads",
	".related-jobs", ".suggestions", ".share-buttons", ".social-media",
	".eeo-statement", ".voluntary-self-id", ".application-form",
}
