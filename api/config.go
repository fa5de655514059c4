package api

// Workspace is the root of the modmv.hcl configuration file.
// It declares the source roots under which module names resolve.
type Workspace struct {
	// Roots, in declaration order. Order only matters for prefix matching
	// when roots are nested; resolution always picks the deepest match.
	Roots []Root `hcl:"root,block"`
}

// Root declares a directory treated as a source root.
// Paths are resolved relative to the directory holding the config file.
type Root struct {
	Path string `hcl:"path,label"`
}
