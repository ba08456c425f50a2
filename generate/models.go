package generate

import (
	"math"
	"strings"
)

// Model catalog, keyed by short name.
var Models = map[string]string{
	// High quality general purpose.
	"flux-pro":     "fal-ai/flux-pro",
	"flux-dev":     "fal-ai/flux/dev",
	"flux-schnell": "fal-ai/flux/schnell",

	// Specialized models.
	"stable-diffusion-xl": "fal-ai/stable-diffusion-xl",
	"stable-diffusion-3":  "fal-ai/stable-diffusion-v3-medium",

	// Style-specific models.
	"realistic-vision": "fal-ai/realistic-vision",
	"anime":            "fal-ai/anime-diffusion",
	"photorealism":     "fal-ai/photorealism",

	// Fast generation.
	"lightning": "fal-ai/lightning",
	"turbo":     "fal-ai/stable-diffusion-xl-turbo",
}

// ModeConfig is the model and sampling parameters tied to a creative mode.
type ModeConfig struct {
	Model             string
	Width             int
	Height            int
	GuidanceScale     float64
	NumInferenceSteps int
}

// ModeConfigs maps each creative mode to its generation parameters.
var ModeConfigs = map[string]ModeConfig{
	"social": {
		Model:             Models["flux-schnell"],
		Width:             1024,
		Height:            1024,
		GuidanceScale:     7.5,
		NumInferenceSteps: 4,
	},
	"marketing": {
		Model:             Models["flux-pro"],
		Width:             1024,
		Height:            768,
		GuidanceScale:     8.0,
		NumInferenceSteps: 20,
	},
	"branding": {
		Model:             Models["stable-diffusion-xl"],
		Width:             1024,
		Height:            1024,
		GuidanceScale:     9.0,
		NumInferenceSteps: 25,
	},
	"web": {
		Model:             Models["flux-dev"],
		Width:             1920,
		Height:            1080,
		GuidanceScale:     7.0,
		NumInferenceSteps: 15,
	},
	"print": {
		Model:             Models["photorealism"],
		Width:             2048,
		Height:            2048,
		GuidanceScale:     8.5,
		NumInferenceSteps: 30,
	},
	"ecommerce": {
		Model:             Models["realistic-vision"],
		Width:             1024,
		Height:            1024,
		GuidanceScale:     8.0,
		NumInferenceSteps: 20,
	},
}

// ContextPrompts maps a design context to the prompt fragment appended for
// it.
var ContextPrompts = map[string]string{
	"Instagram Post": "social media post, square format, engaging, trendy, high quality",
	"Story":          "vertical story format, mobile-friendly, eye-catching, modern",
	"LinkedIn":       "professional, business-oriented, clean, corporate",
	"Twitter":        "concise, impactful, social media optimized",
	"TikTok":         "dynamic, youthful, vibrant, engaging",

	"Banner Ad":    "advertising banner, promotional, attention-grabbing, commercial",
	"Email Header": "email marketing, header design, professional, branded",
	"Landing Page": "web landing page, conversion-focused, modern UI",
	"Flyer":        "promotional flyer, print-ready, informative, attractive",
	"Brochure":     "tri-fold brochure, professional, detailed, corporate",

	"Logo":          "logo design, brand identity, simple, memorable, scalable",
	"Business Card": "business card design, professional, contact information",
	"Letterhead":    "company letterhead, official, branded, professional",
	"Brand Guide":   "brand guidelines, style guide, consistent, professional",
	"Icon Set":      "icon collection, consistent style, minimal, functional",

	"Hero Section": "website hero section, modern web design, UI/UX",
	"Dashboard":    "admin dashboard, data visualization, clean interface",
	"Mobile App":   "mobile app interface, user-friendly, modern design",
	"Website":      "website design, responsive, modern, user experience",
	"UI Component": "user interface component, functional, modern design",

	"Poster":     "poster design, large format, impactful, print-ready",
	"Magazine":   "magazine layout, editorial design, professional",
	"Book Cover": "book cover design, attractive, genre-appropriate",
	"Packaging":  "product packaging, retail-ready, branded",
	"Invitation": "event invitation, elegant, informative",

	"Product Photo": "product photography, e-commerce, clean background",
	"Category Page": "e-commerce category, product grid, shopping",
	"Checkout":      "checkout interface, user-friendly, conversion-optimized",
	"Email":         "e-commerce email, promotional, product-focused",
}

const qualityEnhancers = "high quality, detailed, professional, 4k resolution"

const baseNegativePrompt = "low quality, blurry, pixelated, distorted, ugly, " +
	"bad anatomy, watermark, signature, text overlay"

var modeNegativePrompts = map[string]string{
	"social":    "unprofessional, cluttered, hard to read",
	"marketing": "boring, generic, low engagement",
	"branding":  "complex, hard to reproduce, inconsistent",
	"web":       "outdated, non-responsive, poor UX",
	"print":     "low resolution, poor color reproduction",
	"ecommerce": "unappealing, poor lighting, distracting background",
}

// BuildEnhancedPrompt composes the final prompt: the user's text, the
// context fragment, any selected suggestions, and the quality enhancers.
func BuildEnhancedPrompt(userPrompt, context string, suggestions []string) string {
	var b strings.Builder
	b.WriteString(userPrompt)

	if cp := ContextPrompts[context]; cp != "" {
		b.WriteString(", ")
		b.WriteString(cp)
	}
	if len(suggestions) > 0 {
		b.WriteString(", ")
		b.WriteString(strings.Join(suggestions, ", "))
	}
	b.WriteString(", ")
	b.WriteString(qualityEnhancers)
	return b.String()
}

// NegativePrompt returns the negative prompt for a creative mode: the base
// list plus the mode-specific additions.
func NegativePrompt(mode string) string {
	return baseNegativePrompt + ", " + modeNegativePrompts[mode]
}

// AdjustDimensions reshapes a mode's base dimensions for an aspect ratio.
// "square" (or anything unknown) keeps the base dimensions.
func AdjustDimensions(aspectRatio string, width, height int) (int, int) {
	switch aspectRatio {
	case "portrait":
		width = int(math.Round(float64(width) * 0.75))
	case "landscape":
		height = int(math.Round(float64(height) * 0.75))
	case "wide":
		height = int(math.Round(float64(width) * 9 / 16))
	}
	return width, height
}
