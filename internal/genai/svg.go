package genai

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Deep SaaS-style palettes for the local logo renderer.
var svgPalettes = [][3]string{
	{"#4F46E5", "#EC4899", "#8B5CF6"}, // Indigo/Pink/Purple
	{"#0EA5E9", "#3B82F6", "#2563EB"}, // Ocean Blues
	{"#10B981", "#3B82F6", "#06B6D4"}, // Emerald/Blue/Cyan
	{"#F59E0B", "#EF4444", "#DC2626"}, // Sunset Amber/Red
	{"#8B5CF6", "#C026D3", "#D946EF"}, // Violet/Fuchsia
	{"#0F172A", "#334155", "#64748B"}, // Slate Modern
	{"#000000", "#434343", "#111111"}, // Apple Dark
	{"#FF416C", "#FF4B2B", "#FF416C"}, // Vibrant Red
}

const ringShape = `
        <circle cx="200" cy="256" r="80" fill="none" stroke="url(#glass)" stroke-width="40" />
        <circle cx="312" cy="256" r="80" fill="none" stroke="url(#glass)" stroke-width="40" opacity="0.8" />
        <circle cx="256" cy="256" r="40" fill="#ffffff" opacity="0.9" />
        `

const pyramidShape = `
        <path d="M160 320 L256 140 L352 320 Z" fill="url(#glass)" />
        <path d="M200 350 L256 220 L312 350 Z" fill="#ffffff" opacity="0.95" />
        <path d="M256 140 L256 350 L352 320 Z" fill="#000000" opacity="0.15" />
        `

const hexagonShape = `
        <polygon points="256,120 376,190 376,322 256,392 136,322 136,190" fill="url(#glass)" />
        <polygon points="256,160 336,206 336,306 256,352 176,306 176,206" fill="#ffffff" opacity="0.9" filter="url(#glow)"/>
        `

// RenderLogoSVG renders a deterministic abstract logo for a prompt and
// returns it as a base64 SVG data URI. The same prompt always yields the
// same bytes, so the terminal fallback step can never fail.
func RenderLogoSVG(prompt string) string {
	seed := normalizeSeed(prompt)
	sum := md5.Sum([]byte(seed))
	h := hex.EncodeToString(sum[:])

	paletteIdx, _ := strconv.ParseInt(h[:4], 16, 64)
	palette := svgPalettes[int(paletteIdx)%len(svgPalettes)]
	c1, c2, c3 := palette[0], palette[1], palette[2]

	shapeByte, _ := strconv.ParseInt(h[4:6], 16, 64)
	var centerShape string
	switch shapeByte % 3 {
	case 0:
		centerShape = ringShape
	case 1:
		centerShape = pyramidShape
	default:
		centerShape = hexagonShape
	}

	svg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 512 512" width="100%%" height="100%%">
  <defs>
    <linearGradient id="bg-grad" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" stop-color="%s" />
      <stop offset="100%%" stop-color="%s" />
    </linearGradient>
    <linearGradient id="glass" x1="0%%" y1="0%%" x2="100%%" y2="100%%">
      <stop offset="0%%" stop-color="#ffffff" stop-opacity="0.6" />
      <stop offset="100%%" stop-color="#ffffff" stop-opacity="0.1" />
    </linearGradient>
    <filter id="shadow" x="-50%%" y="-50%%" width="200%%" height="200%%">
      <feDropShadow dx="0" dy="25" stdDeviation="30" flood-color="%s" flood-opacity="0.6"/>
    </filter>
    <filter id="glow" x="-50%%" y="-50%%" width="200%%" height="200%%">
      <feGaussianBlur stdDeviation="10" result="coloredBlur"/>
      <feMerge>
        <feMergeNode in="coloredBlur"/>
        <feMergeNode in="SourceGraphic"/>
      </feMerge>
    </filter>
  </defs>

  <rect width="512" height="512" fill="transparent" />

  <g filter="url(#shadow)">
    <rect x="60" y="60" width="392" height="392" rx="100" fill="url(#bg-grad)" />
  </g>
%s</svg>`, c1, c2, c3, centerShape)

	encoded := base64.StdEncoding.EncodeToString([]byte(svg))
	return "data:image/svg+xml;base64," + encoded
}

func normalizeSeed(prompt string) string {
	var b strings.Builder
	for _, r := range prompt {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 {
		return "startup"
	}
	return b.String()
}
