package i18n

import (
	"embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language represents a supported language.
type Language string

const (
	// English is the English language.
	English Language = "en"
	// Portuguese is Brazilian Portuguese.
	Portuguese Language = "pt"
)

// DefaultLanguage is the fallback language.
const DefaultLanguage = English

//go:embed locales/*.yaml
var locales embed.FS

// translations maps language codes to translation keys and their values.
//
//nolint:gochecknoglobals // loaded once from the embedded catalogs.
var translations = mustLoad()

// mustLoad reads every locales/<language>.yaml catalog. Nested YAML maps are flattened into dotted keys.
func mustLoad() map[Language]map[string]string {
	entries, err := locales.ReadDir("locales")
	if err != nil {
		panic(fmt.Sprintf("read locales: %v", err))
	}
	loaded := make(map[Language]map[string]string, len(entries))
	for _, entry := range entries {
		var data []byte
		if data, err = locales.ReadFile(path.Join("locales", entry.Name())); err != nil {
			panic(fmt.Sprintf("read locale %s: %v", entry.Name(), err))
		}
		var tree map[string]any
		if err = yaml.Unmarshal(data, &tree); err != nil {
			panic(fmt.Sprintf("parse locale %s: %v", entry.Name(), err))
		}
		catalog := make(map[string]string)
		flatten("", tree, catalog)
		loaded[Language(strings.TrimSuffix(entry.Name(), ".yaml"))] = catalog
	}
	return loaded
}

func flatten(prefix string, tree map[string]any, out map[string]string) {
	for k, v := range tree {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// SupportedLanguages returns a list of all supported languages.
func SupportedLanguages() []Language {
	return []Language{English, Portuguese}
}

// IsSupported checks if a language is supported.
func IsSupported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

// Translate returns the translation for the given key in the specified language.
// If the key is not found, it falls back to the default language.
// If still not found, it returns the key itself.
func Translate(lang Language, key string) string {
	// Try the requested language.
	if langTranslations, ok := translations[lang]; ok {
		if translation, ok := langTranslations[key]; ok {
			return translation
		}
	}

	// Fallback to default language.
	if lang != DefaultLanguage {
		if translation, ok := translations[DefaultLanguage][key]; ok {
			return translation
		}
	}

	// Return the key itself if no translation found.
	return key
}

// Translatef translates key and formats the result with args.
func Translatef(lang Language, key string, args ...any) string {
	return fmt.Sprintf(Translate(lang, key), args...)
}

// Keys returns every key of the language's catalog. Useful for checking catalog completeness.
func Keys(lang Language) []string {
	keys := make([]string, 0, len(translations[lang]))
	for k := range translations[lang] {
		keys = append(keys, k)
	}
	return keys
}
