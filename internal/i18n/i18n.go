// Package i18n provides key-based string lookup for the languages the site
// ships with. Unknown languages fall back to English.
package i18n

// Key identifies a translatable string.
type Key string

const (
	KeyHome          Key = "home"
	KeyAbout         Key = "about"
	KeyArchive       Key = "archive"
	KeyPosts         Key = "posts"
	KeySearch        Key = "search"
	KeyTags          Key = "tags"
	KeyCategories    Key = "categories"
	KeyUncategorized Key = "uncategorized"
	KeyRecentPosts   Key = "recentPosts"
	KeyNextPost      Key = "nextPost"
	KeyPrevPost      Key = "prevPost"
)

const defaultLang = "en"

var translations = map[string]map[Key]string{
	"en": {
		KeyHome:          "Home",
		KeyAbout:         "About",
		KeyArchive:       "Archive",
		KeyPosts:         "Posts",
		KeySearch:        "Search",
		KeyTags:          "Tags",
		KeyCategories:    "Categories",
		KeyUncategorized: "Uncategorized",
		KeyRecentPosts:   "Recent Posts",
		KeyNextPost:      "Next Post",
		KeyPrevPost:      "Previous Post",
	},
	"es": {
		KeyHome:          "Inicio",
		KeyAbout:         "Sobre mí",
		KeyArchive:       "Archivo",
		KeyPosts:         "Publicaciones",
		KeySearch:        "Buscar",
		KeyTags:          "Etiquetas",
		KeyCategories:    "Categorías",
		KeyUncategorized: "Sin categoría",
		KeyRecentPosts:   "Publicaciones recientes",
		KeyNextPost:      "Siguiente publicación",
		KeyPrevPost:      "Publicación anterior",
	},
	"ja": {
		KeyHome:          "ホーム",
		KeyAbout:         "私について",
		KeyArchive:       "アーカイブ",
		KeyPosts:         "投稿",
		KeySearch:        "検索",
		KeyTags:          "タグ",
		KeyCategories:    "カテゴリ",
		KeyUncategorized: "未分類",
		KeyRecentPosts:   "最近の投稿",
		KeyNextPost:      "次の投稿",
		KeyPrevPost:      "前の投稿",
	},
}

// TranslateFunc resolves a key to a localized string.
type TranslateFunc func(Key) string

// Translator returns a TranslateFunc bound to the given language. Unknown
// languages and missing keys fall back to English; an unknown key yields
// its own name so the gap is visible rather than silent.
func Translator(lang string) TranslateFunc {
	table, ok := translations[lang]
	if !ok {
		table = translations[defaultLang]
	}
	fallback := translations[defaultLang]
	return func(k Key) string {
		if s, ok := table[k]; ok {
			return s
		}
		if s, ok := fallback[k]; ok {
			return s
		}
		return string(k)
	}
}

// Languages returns the language codes with a translation table.
func Languages() []string {
	out := make([]string, 0, len(translations))
	for l := range translations {
		out = append(out, l)
	}
	return out
}
