// Package assets provides the stylesheets embedded in converted manual pages.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in styles compiled into the binary
//	    ├── FilesystemLoader  - {basePath}/styles/{name}.css on disk
//	    └── AssetResolver     - filesystem first, embedded as fallback
//
// Style names are bare identifiers ("default", "dark"); names with path
// separators or dots are rejected so a name can never reach outside its
// styles directory. FilesystemLoader additionally resolves symlinks and
// checks the final path stays under basePath.
package assets
