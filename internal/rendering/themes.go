package rendering

import "html/template"

// themeStyles maps a theme id to the stylesheet injected into every
// document. Layout is shared; themes differ in typography and accents.
var themeStyles = map[string]template.CSS{
	ThemeModern: `
		body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1f2933; margin: 2.5rem; line-height: 1.5; }
		h1 { font-size: 1.6rem; margin-bottom: 0.1rem; color: #102a43; }
		h2 { font-size: 1.05rem; text-transform: uppercase; letter-spacing: 0.08em; border-bottom: 2px solid #2680c2; padding-bottom: 0.2rem; margin-top: 1.4rem; }
		.headline { color: #2680c2; font-weight: 600; }
		.contact { color: #486581; font-size: 0.9rem; }
		.entry-title { font-weight: 600; }
		.entry-meta { color: #627d98; font-size: 0.9rem; }
		ul { margin: 0.3rem 0 0.6rem 1.2rem; }
	`,
	ThemeClassic: `
		body { font-family: Georgia, 'Times New Roman', serif; color: #222; margin: 3rem; line-height: 1.55; }
		h1 { font-size: 1.7rem; margin-bottom: 0.1rem; text-align: center; }
		h2 { font-size: 1.1rem; font-variant: small-caps; border-bottom: 1px solid #444; padding-bottom: 0.15rem; margin-top: 1.5rem; }
		.headline { font-style: italic; text-align: center; }
		.contact { text-align: center; font-size: 0.9rem; color: #555; }
		.entry-title { font-weight: bold; }
		.entry-meta { font-style: italic; font-size: 0.9rem; }
		ul { margin: 0.3rem 0 0.7rem 1.4rem; }
	`,
	ThemeCompact: `
		body { font-family: 'Segoe UI', Tahoma, sans-serif; color: #2d2d2d; margin: 1.8rem; line-height: 1.35; font-size: 0.92rem; }
		h1 { font-size: 1.35rem; margin-bottom: 0; }
		h2 { font-size: 0.95rem; text-transform: uppercase; color: #4a4a4a; margin: 1rem 0 0.2rem; }
		.headline { color: #00695c; font-weight: 600; font-size: 0.95rem; }
		.contact { font-size: 0.85rem; color: #666; }
		.entry-title { font-weight: 600; }
		.entry-meta { color: #777; font-size: 0.85rem; }
		ul { margin: 0.2rem 0 0.4rem 1.1rem; }
	`,
}
