package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconClear  = "[x]"
	IconImage  = "\uf03e" // nf-fa-image
	IconSearch = "\uf002" // nf-fa-search
	IconMore   = "\u2026"
)
