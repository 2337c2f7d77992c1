package domain

import "strings"

// ServiceIcon names the glyph drawn beside a service.
type ServiceIcon string

// Service icons.
const (
	IconGamepad    ServiceIcon = "Gamepad2"
	IconGlasses    ServiceIcon = "Glasses"
	IconLightbulb  ServiceIcon = "Lightbulb"
	IconSparkles   ServiceIcon = "Sparkles"
	IconMonitor    ServiceIcon = "Monitor"
	IconSmartphone ServiceIcon = "Smartphone"
	IconGlobe      ServiceIcon = "Globe"
	IconCPU        ServiceIcon = "Cpu"
	IconCode       ServiceIcon = "Code"
	IconPalette    ServiceIcon = "Palette"
	IconVideo      ServiceIcon = "Video"
	IconHeadphones ServiceIcon = "Headphones"
	IconZap        ServiceIcon = "Zap"
	IconRocket     ServiceIcon = "Rocket"
	IconTarget     ServiceIcon = "Target"
)

// DefaultServiceIcon is used for unknown or missing icon names.
const DefaultServiceIcon = IconSparkles

// ServiceIcons lists every icon in picker order.
var ServiceIcons = []ServiceIcon{
	IconGamepad, IconGlasses, IconLightbulb, IconSparkles, IconMonitor,
	IconSmartphone, IconGlobe, IconCPU, IconCode, IconPalette,
	IconVideo, IconHeadphones, IconZap, IconRocket, IconTarget,
}

// ParseServiceIcon returns the icon named by s, or DefaultServiceIcon.
func ParseServiceIcon(s string) ServiceIcon {
	for _, ic := range ServiceIcons {
		if string(ic) == s {
			return ic
		}
	}
	return DefaultServiceIcon
}

// Glyph returns a text glyph for the icon.
func (i ServiceIcon) Glyph() string {
	switch i {
	case IconGamepad:
		return "🎮"
	case IconGlasses:
		return "🥽"
	case IconLightbulb:
		return "💡"
	case IconMonitor:
		return "🖥"
	case IconSmartphone:
		return "📱"
	case IconGlobe:
		return "🌐"
	case IconCPU:
		return "🧠"
	case IconCode:
		return "⌨"
	case IconPalette:
		return "🎨"
	case IconVideo:
		return "🎬"
	case IconHeadphones:
		return "🎧"
	case IconZap:
		return "⚡"
	case IconRocket:
		return "🚀"
	case IconTarget:
		return "🎯"
	}
	return "✨"
}

// SocialPlatform is the closed set of link kinds on a team profile.
type SocialPlatform string

// Social platforms.
const (
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformGitHub    SocialPlatform = "github"
	PlatformDribbble  SocialPlatform = "dribbble"
	PlatformBehance   SocialPlatform = "behance"
	PlatformTelegram  SocialPlatform = "telegram"
	PlatformWhatsApp  SocialPlatform = "whatsapp"
	PlatformTikTok    SocialPlatform = "tiktok"
	PlatformWebsite   SocialPlatform = "website"
	PlatformEmail     SocialPlatform = "email"
)

// SocialPlatforms lists every platform in picker order.
var SocialPlatforms = []SocialPlatform{
	PlatformLinkedIn, PlatformTwitter, PlatformFacebook, PlatformInstagram,
	PlatformYouTube, PlatformGitHub, PlatformDribbble, PlatformBehance,
	PlatformTelegram, PlatformWhatsApp, PlatformTikTok, PlatformWebsite, PlatformEmail,
}

// ParseSocialPlatform returns the platform named by s (case-insensitive), or
// PlatformWebsite.
func ParseSocialPlatform(s string) SocialPlatform {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range SocialPlatforms {
		if string(p) == s {
			return p
		}
	}
	return PlatformWebsite
}

// Label returns the display name for the platform.
func (p SocialPlatform) Label() string {
	switch p {
	case PlatformLinkedIn:
		return "LinkedIn"
	case PlatformTwitter:
		return "Twitter / X"
	case PlatformYouTube:
		return "YouTube"
	case PlatformGitHub:
		return "GitHub"
	case PlatformWhatsApp:
		return "WhatsApp"
	case PlatformTikTok:
		return "TikTok"
	}
	s := string(p)
	return strings.ToUpper(s[:1]) + s[1:]
}

// SocialLink is one entry in a team member's link list.
type SocialLink struct {
	Platform SocialPlatform `json:"platform"`
	URL      string         `json:"url"`
}

// Href returns the link target, adding mailto: for email links.
func (l SocialLink) Href() string {
	if l.Platform == PlatformEmail && !strings.HasPrefix(l.URL, "mailto:") {
		return "mailto:" + l.URL
	}
	return l.URL
}
