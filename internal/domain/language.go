package domain

import (
	"fmt"
	"sort"
	"strings"
)

// LanguageCode is a short ISO-639-1 style identifier for a natural language.
type LanguageCode string

// Auto signals that the source language should be detected by the model.
const Auto LanguageCode = "auto"

// languageNames maps every supported code to its display name.
var languageNames = map[LanguageCode]string{
	"en": "English",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"ru": "Russian",
	"zh": "Chinese (Simplified)",
	"ja": "Japanese",
	"ko": "Korean",
	"ar": "Arabic",
	"pt": "Portuguese",
	"nl": "Dutch",
	"sv": "Swedish",
	"pl": "Polish",
	"fi": "Finnish",
	"tr": "Turkish",
	"cs": "Czech",
	"hu": "Hungarian",
	"ro": "Romanian",
	"tl": "Tagalog",
	"th": "Thai",
	"id": "Indonesian",
	"hi": "Hindi",
}

// IsSupported reports whether code is in the supported set.
func IsSupported(code LanguageCode) bool {
	_, ok := languageNames[code]
	return ok
}

// ParseCode normalizes raw user input into a supported LanguageCode.
func ParseCode(raw string) (LanguageCode, error) {
	code := LanguageCode(strings.ToLower(strings.TrimSpace(raw)))
	if !IsSupported(code) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	return code, nil
}

// Name returns the display name for a code, or the code itself if unknown.
func (c LanguageCode) Name() string {
	if name, ok := languageNames[c]; ok {
		return name
	}
	return string(c)
}

// SupportedCodes returns all supported codes in alphabetical order.
func SupportedCodes() []LanguageCode {
	codes := make([]LanguageCode, 0, len(languageNames))
	for code := range languageNames {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
