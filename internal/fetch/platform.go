package fetch

import (
	"net/url"
	"strings"
)

// Platform is a publishing site with known page markup.
type Platform string

const (
	// PlatformWeChat is a WeChat official account article (mp.weixin.qq.com).
	PlatformWeChat Platform = "wechat"
	// PlatformGeneric is any other page.
	PlatformGeneric Platform = "generic"
)

// DetectPlatform identifies the publishing platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformGeneric
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "mp.weixin.qq.com" || strings.HasSuffix(host, ".mp.weixin.qq.com") {
		return PlatformWeChat
	}
	return PlatformGeneric
}

// Selectors locates the parts of an article page.
type Selectors struct {
	Content []string
	Title   []string
	Account []string
	Noise   []string
}

var commonNoise = []string{"script", "style", "noscript", "iframe", "svg"}

// PlatformSelectors returns the selectors for a platform, most specific first.
func PlatformSelectors(p Platform) Selectors {
	switch p {
	case PlatformWeChat:
		return Selectors{
			Content: []string{"#js_content", ".rich_media_content"},
			Title:   []string{".rich_media_title", "#activity-name"},
			Account: []string{"#js_name", ".profile_nickname", ".wx_follow_nickname"},
			Noise: append(commonNoise,
				"#js_pc_qr_code",
				".qr_code_pc",
				"#js_tags",
				".reward_area",
				".rich_media_tool",
			),
		}
	default:
		return Selectors{
			Content: []string{"article", "main", ".content", "#content", ".post-content"},
			Title:   []string{"h1"},
			Noise:   append(commonNoise, "nav", "footer", "aside", "form", ".sidebar", ".advertisement"),
		}
	}
}
