// Package assets provides the HTML templates used to build paper pages and
// listing entries.
//
// Templates are embedded in the binary. A site can override any of them by
// pointing assets.basePath at a directory laid out as:
//
//	{basePath}/
//	└── templates/
//	    ├── paper.html   # full page around the converted content
//	    └── entry.html   # listing entry inserted into the index
//
// AssetResolver tries the override directory first and falls back to the
// embedded copy when a template is missing there. Other errors (unknown
// names, unreadable files, symlinks escaping basePath) are not masked by the
// fallback.
package assets
