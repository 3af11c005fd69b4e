package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

type jobBoard struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

var jobBoards = []jobBoard{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// commonNoise is removed from every job posting: forms, EEO blurbs, share bars.
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", ".legal-disclosure",
	".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
}

func boardFor(platform Platform) (jobBoard, bool) {
	for _, b := range jobBoards {
		if b.platform == platform {
			return b, true
		}
	}
	return jobBoard{}, false
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, b := range jobBoards {
		for _, h := range b.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b.platform
			}
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors for platform, followed by
// the generic job posting selectors.
func PlatformContentSelectors(platform Platform) []string {
	b, ok := boardFor(platform)
	if !ok {
		return JobPostingSelectors()
	}
	return append(append([]string{}, b.content...), JobPostingSelectors()...)
}

// PlatformNoiseSelectors returns noise selectors for platform, including the common set.
func PlatformNoiseSelectors(platform Platform) []string {
	out := append([]string{}, commonNoise...)
	if b, ok := boardFor(platform); ok {
		out = append(out, b.noise...)
	}
	return out
}
