package model

import "sort"

// Directory maps file name to raw document text.
type Directory map[string]string

// Corpus maps directory name to its files, fully read into memory.
type Corpus map[string]Directory

// Names returns the directory names in ascending order.
func (c Corpus) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Files returns the number of files across all directories.
func (c Corpus) Files() int {
	n := 0
	for _, dir := range c {
		n += len(dir)
	}
	return n
}
