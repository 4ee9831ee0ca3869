package language

import (
	"sort"
	"strings"
)

// Script groups languages by the writing system used for UI notices.
type Script int

const (
	ScriptOther Script = iota
	ScriptCJK
)

// Language is a translation target offered in settings.
type Language struct {
	Code   string
	Name   string
	Script Script
}

// Languages maps language code -> Language.
var Languages = map[string]Language{
	"af":       {Code: "af", Name: "Afrikaans", Script: ScriptOther},
	"sq":       {Code: "sq", Name: "Albanian", Script: ScriptOther},
	"am":       {Code: "am", Name: "Amharic", Script: ScriptOther},
	"ar":       {Code: "ar", Name: "Arabic", Script: ScriptOther},
	"hy":       {Code: "hy", Name: "Armenian", Script: ScriptOther},
	"as":       {Code: "as", Name: "Assamese", Script: ScriptOther},
	"az":       {Code: "az", Name: "Azerbaijani", Script: ScriptOther},
	"eu":       {Code: "eu", Name: "Basque", Script: ScriptOther},
	"be":       {Code: "be", Name: "Belarusian", Script: ScriptOther},
	"bn":       {Code: "bn", Name: "Bengali", Script: ScriptOther},
	"bs":       {Code: "bs", Name: "Bosnian", Script: ScriptOther},
	"bg":       {Code: "bg", Name: "Bulgarian", Script: ScriptOther},
	"ca":       {Code: "ca", Name: "Catalan", Script: ScriptOther},
	"ceb":      {Code: "ceb", Name: "Cebuano", Script: ScriptOther},
	"zh-Hans":  {Code: "zh-Hans", Name: "Chinese (Simplified)", Script: ScriptCJK},
	"zh-Hant":  {Code: "zh-Hant", Name: "Chinese (Traditional)", Script: ScriptCJK},
	"co":       {Code: "co", Name: "Corsican", Script: ScriptOther},
	"hr":       {Code: "hr", Name: "Croatian", Script: ScriptOther},
	"cs":       {Code: "cs", Name: "Czech", Script: ScriptOther},
	"da":       {Code: "da", Name: "Danish", Script: ScriptOther},
	"dv":       {Code: "dv", Name: "Dhivehi", Script: ScriptOther},
	"nl":       {Code: "nl", Name: "Dutch", Script: ScriptOther},
	"en":       {Code: "en", Name: "English", Script: ScriptOther},
	"eo":       {Code: "eo", Name: "Esperanto", Script: ScriptOther},
	"et":       {Code: "et", Name: "Estonian", Script: ScriptOther},
	"fil":      {Code: "fil", Name: "Filipino", Script: ScriptOther},
	"fi":       {Code: "fi", Name: "Finnish", Script: ScriptOther},
	"fr":       {Code: "fr", Name: "French", Script: ScriptOther},
	"fy":       {Code: "fy", Name: "Frisian", Script: ScriptOther},
	"gl":       {Code: "gl", Name: "Galician", Script: ScriptOther},
	"ka":       {Code: "ka", Name: "Georgian", Script: ScriptOther},
	"de":       {Code: "de", Name: "German", Script: ScriptOther},
	"el":       {Code: "el", Name: "Greek", Script: ScriptOther},
	"gu":       {Code: "gu", Name: "Gujarati", Script: ScriptOther},
	"ht":       {Code: "ht", Name: "Haitian Creole", Script: ScriptOther},
	"ha":       {Code: "ha", Name: "Hausa", Script: ScriptOther},
	"haw":      {Code: "haw", Name: "Hawaiian", Script: ScriptOther},
	"iw":       {Code: "iw", Name: "Hebrew", Script: ScriptOther},
	"hi":       {Code: "hi", Name: "Hindi", Script: ScriptOther},
	"hmn":      {Code: "hmn", Name: "Hmong", Script: ScriptOther},
	"hu":       {Code: "hu", Name: "Hungarian", Script: ScriptOther},
	"is":       {Code: "is", Name: "Icelandic", Script: ScriptOther},
	"ig":       {Code: "ig", Name: "Igbo", Script: ScriptOther},
	"id":       {Code: "id", Name: "Indonesian", Script: ScriptOther},
	"ga":       {Code: "ga", Name: "Irish", Script: ScriptOther},
	"it":       {Code: "it", Name: "Italian", Script: ScriptOther},
	"ja":       {Code: "ja", Name: "Japanese", Script: ScriptCJK},
	"jv":       {Code: "jv", Name: "Javanese", Script: ScriptOther},
	"kn":       {Code: "kn", Name: "Kannada", Script: ScriptOther},
	"kk":       {Code: "kk", Name: "Kazakh", Script: ScriptOther},
	"km":       {Code: "km", Name: "Khmer", Script: ScriptOther},
	"ko":       {Code: "ko", Name: "Korean", Script: ScriptCJK},
	"kri":      {Code: "kri", Name: "Krio", Script: ScriptOther},
	"ku":       {Code: "ku", Name: "Kurdish", Script: ScriptOther},
	"ky":       {Code: "ky", Name: "Kyrgyz", Script: ScriptOther},
	"lo":       {Code: "lo", Name: "Lao", Script: ScriptOther},
	"la":       {Code: "la", Name: "Latin", Script: ScriptOther},
	"lv":       {Code: "lv", Name: "Latvian", Script: ScriptOther},
	"lt":       {Code: "lt", Name: "Lithuanian", Script: ScriptOther},
	"lb":       {Code: "lb", Name: "Luxembourgish", Script: ScriptOther},
	"mk":       {Code: "mk", Name: "Macedonian", Script: ScriptOther},
	"mg":       {Code: "mg", Name: "Malagasy", Script: ScriptOther},
	"ms":       {Code: "ms", Name: "Malay", Script: ScriptOther},
	"ml":       {Code: "ml", Name: "Malayalam", Script: ScriptOther},
	"mt":       {Code: "mt", Name: "Maltese", Script: ScriptOther},
	"mi":       {Code: "mi", Name: "Maori", Script: ScriptOther},
	"mr":       {Code: "mr", Name: "Marathi", Script: ScriptOther},
	"mni-Mtei": {Code: "mni-Mtei", Name: "Meiteilon (Manipuri)", Script: ScriptOther},
	"mn":       {Code: "mn", Name: "Mongolian", Script: ScriptOther},
	"my":       {Code: "my", Name: "Myanmar (Burmese)", Script: ScriptOther},
	"ne":       {Code: "ne", Name: "Nepali", Script: ScriptOther},
	"no":       {Code: "no", Name: "Norwegian", Script: ScriptOther},
	"ny":       {Code: "ny", Name: "Nyanja (Chichewa)", Script: ScriptOther},
	"or":       {Code: "or", Name: "Odia (Oriya)", Script: ScriptOther},
	"ps":       {Code: "ps", Name: "Pashto", Script: ScriptOther},
	"fa":       {Code: "fa", Name: "Persian", Script: ScriptOther},
	"pl":       {Code: "pl", Name: "Polish", Script: ScriptOther},
	"pt":       {Code: "pt", Name: "Portuguese", Script: ScriptOther},
	"pa":       {Code: "pa", Name: "Punjabi", Script: ScriptOther},
	"ro":       {Code: "ro", Name: "Romanian", Script: ScriptOther},
	"ru":       {Code: "ru", Name: "Russian", Script: ScriptOther},
	"sm":       {Code: "sm", Name: "Samoan", Script: ScriptOther},
	"gd":       {Code: "gd", Name: "Scots Gaelic", Script: ScriptOther},
	"sr":       {Code: "sr", Name: "Serbian", Script: ScriptOther},
	"st":       {Code: "st", Name: "Sesotho", Script: ScriptOther},
	"sn":       {Code: "sn", Name: "Shona", Script: ScriptOther},
	"sd":       {Code: "sd", Name: "Sindhi", Script: ScriptOther},
	"si":       {Code: "si", Name: "Sinhala (Sinhalese)", Script: ScriptOther},
	"sk":       {Code: "sk", Name: "Slovak", Script: ScriptOther},
	"sl":       {Code: "sl", Name: "Slovenian", Script: ScriptOther},
	"so":       {Code: "so", Name: "Somali", Script: ScriptOther},
	"es":       {Code: "es", Name: "Spanish", Script: ScriptOther},
	"su":       {Code: "su", Name: "Sundanese", Script: ScriptOther},
	"sw":       {Code: "sw", Name: "Swahili", Script: ScriptOther},
	"sv":       {Code: "sv", Name: "Swedish", Script: ScriptOther},
	"tg":       {Code: "tg", Name: "Tajik", Script: ScriptOther},
	"ta":       {Code: "ta", Name: "Tamil", Script: ScriptOther},
	"te":       {Code: "te", Name: "Telugu", Script: ScriptOther},
	"th":       {Code: "th", Name: "Thai", Script: ScriptOther},
	"tr":       {Code: "tr", Name: "Turkish", Script: ScriptOther},
	"uk":       {Code: "uk", Name: "Ukrainian", Script: ScriptOther},
	"ur":       {Code: "ur", Name: "Urdu", Script: ScriptOther},
	"ug":       {Code: "ug", Name: "Uyghur", Script: ScriptOther},
	"uz":       {Code: "uz", Name: "Uzbek", Script: ScriptOther},
	"vi":       {Code: "vi", Name: "Vietnamese", Script: ScriptOther},
	"cy":       {Code: "cy", Name: "Welsh", Script: ScriptOther},
	"xh":       {Code: "xh", Name: "Xhosa", Script: ScriptOther},
	"yi":       {Code: "yi", Name: "Yiddish", Script: ScriptOther},
	"yo":       {Code: "yo", Name: "Yoruba", Script: ScriptOther},
	"zu":       {Code: "zu", Name: "Zulu", Script: ScriptOther},
}

// Aliases accepted on the command line in addition to codes and names.
var aliases = map[string]string{
	"zh":      "zh-Hans",
	"chinese": "zh-Hans",
	"he":      "iw",
}

// Lookup resolves a code, alias or display name (case-insensitive).
func Lookup(input string) (Language, bool) {
	needle := strings.TrimSpace(input)
	if needle == "" {
		return Language{}, false
	}
	if lang, ok := Languages[needle]; ok {
		return lang, true
	}
	if code, ok := aliases[strings.ToLower(needle)]; ok {
		return Languages[code], true
	}
	for _, lang := range Languages {
		if strings.EqualFold(lang.Name, needle) || strings.EqualFold(lang.Code, needle) {
			return lang, true
		}
	}
	return Language{}, false
}

// Names returns display names sorted alphabetically.
func Names() []string {
	names := make([]string, 0, len(Languages))
	for _, lang := range Languages {
		names = append(names, lang.Name)
	}
	sort.Strings(names)
	return names
}

// Supported returns all languages sorted by Name.
func Supported() []Language {
	entries := make([]Language, 0, len(Languages))
	for _, v := range Languages {
		entries = append(entries, v)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Search returns the supported languages whose name or code contains query,
// ignoring case. An empty query matches everything.
func Search(query string) []Language {
	all := Supported()
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return all
	}
	out := all[:0]
	for _, l := range all {
		if strings.Contains(strings.ToLower(l.Name), query) || strings.Contains(strings.ToLower(l.Code), query) {
			out = append(out, l)
		}
	}
	return out
}

// IsCJK reports whether the named target is Chinese, Japanese or Korean.
// Unknown names fall back to a substring check so free-form targets still work.
func IsCJK(name string) bool {
	if lang, ok := Lookup(name); ok {
		return lang.Script == ScriptCJK
	}
	return strings.Contains(name, "Chinese") || strings.Contains(name, "Japanese")
}

// UsesHan reports whether the named target is Chinese or Japanese, the
// languages whose readers get Han-script interface messages.
func UsesHan(name string) bool {
	if lang, ok := Lookup(name); ok {
		return strings.HasPrefix(lang.Code, "zh") || lang.Code == "ja"
	}
	return strings.Contains(name, "Chinese") || strings.Contains(name, "Japanese")
}
