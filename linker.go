package anew

// Linker places a symbolic link at target that resolves to source.
type Linker interface {
	Link(source, target string) error
}

// DefaultLinker returns the link strategy for the running platform.
func DefaultLinker() Linker {
	return platformLinker{}
}
